package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Các khóa required sẽ làm server dừng ngay khi khởi động nếu thiếu
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật ký JWT
	JwtTTLHours           int    `env:"JWT_TTL_HOURS" envDefault:"72"`             // Thời gian sống của token (giờ)
	MongoDB_ConnectionURI string `env:"MONGODB_URI,required"`                      // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"agri_connect"`  // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`         // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW_SEC" envDefault:"60"`     // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Weather Provider Configuration (optional - thiếu key sẽ dùng mock provider)
	WeatherAPIURL string `env:"WEATHER_API_URL"` // URL dịch vụ thời tiết bên ngoài
	WeatherAPIKey string `env:"WEATHER_API_KEY"` // API key dịch vụ thời tiết

	// Market Feed Configuration (optional - thiếu key sẽ dùng mock provider)
	MarketAPIURL string `env:"MARKET_API_URL"` // URL nguồn giá nông sản bên ngoài
	MarketAPIKey string `env:"MARKET_API_KEY"` // API key nguồn giá nông sản

	// SMTP Configuration (optional - thiếu sẽ từ chối các thao tác gửi email)
	SMTPHost     string `env:"SMTP_HOST"`     // Máy chủ SMTP
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"` // Tài khoản SMTP
	SMTPPassword string `env:"SMTP_PASSWORD"` // Mật khẩu SMTP
	SMTPFrom     string `env:"SMTP_FROM"`     // Địa chỉ người gửi

	// Admin Seed Configuration (optional - thiếu sẽ bỏ qua bước seed admin)
	AdminEmail    string `env:"ADMIN_EMAIL"`                        // Email tài khoản admin mặc định
	AdminPassword string `env:"ADMIN_PASSWORD"`                     // Mật khẩu tài khoản admin mặc định
	AdminName     string `env:"ADMIN_NAME" envDefault:"Quản trị viên"` // Tên hiển thị admin

	// Logging Configuration
	LogDir   string `env:"LOG_DIR" envDefault:"logs"`  // Thư mục chứa log files
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"` // Mức log (debug/info/warn/error)
}

// SMTPConfigured kiểm tra cấu hình SMTP đã đầy đủ để gửi email hay chưa
func (c *Configuration) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != "" && c.SMTPFrom != ""
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
// Nếu không tìm thấy file env thì vẫn parse từ biến môi trường hệ thống
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
			fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
