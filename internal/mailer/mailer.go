// Package mailer gửi email giao dịch (mã đặt lại mật khẩu, thông báo tài khoản) qua SMTP.
// Khi cấu hình SMTP thiếu, mọi thao tác gửi trả về lỗi ngay thay vì gửi nửa vời.
package mailer

import (
	"fmt"

	"agri_connect/config"
	"agri_connect/internal/common"
	"agri_connect/internal/logger"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer gửi email qua SMTP với cấu hình từ server config
type Mailer struct {
	cfg *config.Configuration
}

// NewMailer tạo mới Mailer. Không validate cấu hình ở đây:
// server vẫn khởi động được khi thiếu SMTP, chỉ các thao tác gửi bị từ chối.
func NewMailer(cfg *config.Configuration) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send gửi một email HTML tới recipient.
// Trả về common.ErrEmailConfigMissing nếu cấu hình SMTP chưa đầy đủ.
func (m *Mailer) Send(recipient string, subject string, htmlContent string) error {
	if !m.cfg.SMTPConfigured() {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"recipient": recipient,
			"subject":   subject,
		}).Warn("📧 [MAILER] Từ chối gửi email vì thiếu cấu hình SMTP")
		return common.ErrEmailConfigMissing
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlContent)

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUsername, m.cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"recipient": recipient,
			"error":     err.Error(),
		}).Error("📧 [MAILER] Gửi email thất bại")
		return common.NewError(common.ErrCodeUpstreamEmail, "Không thể gửi email", common.StatusServiceUnavailable, err)
	}

	return nil
}

// SendPasswordResetCode gửi email chứa mã đặt lại mật khẩu
func (m *Mailer) SendPasswordResetCode(recipient string, name string, code string, ttlMinutes int) error {
	subject := "AgriConnect - Mã đặt lại mật khẩu"
	htmlContent := fmt.Sprintf(`
		<p>Xin chào %s,</p>
		<p>Mã đặt lại mật khẩu của bạn là: <b style="font-size:18px;letter-spacing:2px;">%s</b></p>
		<p>Mã có hiệu lực trong %d phút. Nếu bạn không yêu cầu đặt lại mật khẩu, vui lòng bỏ qua email này.</p>
	`, name, code, ttlMinutes)
	return m.Send(recipient, subject, htmlContent)
}
