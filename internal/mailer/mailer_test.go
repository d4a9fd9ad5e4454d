package mailer

import (
	"errors"
	"testing"

	"agri_connect/config"
	"agri_connect/internal/common"
)

func TestSend_RejectsWithoutSMTPConfig(t *testing.T) {
	m := NewMailer(&config.Configuration{})

	err := m.Send("nongdan@example.com", "Test", "<p>nội dung</p>")
	if !errors.Is(err, common.ErrEmailConfigMissing) {
		t.Errorf("thiếu cấu hình SMTP phải trả về ErrEmailConfigMissing, nhận: %v", err)
	}
}

func TestSend_RejectsWithPartialSMTPConfig(t *testing.T) {
	// Có host nhưng thiếu credentials: vẫn phải từ chối
	m := NewMailer(&config.Configuration{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
	})

	err := m.SendPasswordResetCode("nongdan@example.com", "Anh Ba", "123456", 15)
	if !errors.Is(err, common.ErrEmailConfigMissing) {
		t.Errorf("cấu hình SMTP thiếu credentials phải bị từ chối, nhận: %v", err)
	}
}

func TestSMTPConfigured(t *testing.T) {
	full := &config.Configuration{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "user",
		SMTPPassword: "pass",
		SMTPFrom:     "no-reply@agriconnect.vn",
	}
	if !full.SMTPConfigured() {
		t.Error("cấu hình đầy đủ phải được coi là configured")
	}

	missingFrom := &config.Configuration{
		SMTPHost:     "smtp.example.com",
		SMTPUsername: "user",
		SMTPPassword: "pass",
	}
	if missingFrom.SMTPConfigured() {
		t.Error("thiếu SMTP_FROM không được coi là configured")
	}
}
