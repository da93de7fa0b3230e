package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Các giá trị được đọc từ file env theo GO_ENV, sau đó từ biến môi trường.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
	// Extraction Service Configuration (dịch vụ trích xuất thư từ, optional)
	ExtractAPIURL         string `env:"EXTRACT_API_URL"`                    // Endpoint của dịch vụ trích xuất (trống = tắt reconcile)
	ExtractAPIKey         string `env:"EXTRACT_API_KEY"`                    // API key cho dịch vụ trích xuất (optional)
	ExtractTimeoutSeconds int    `env:"EXTRACT_TIMEOUT_SECONDS" envDefault:"30"` // Timeout gọi dịch vụ trích xuất (giây)
	// SMTP Configuration (digest nhắc việc qua email, optional)
	SMTPHost             string `env:"SMTP_HOST"`                                // SMTP host (trống = tắt digest)
	SMTPPort             int    `env:"SMTP_PORT" envDefault:"587"`               // SMTP port
	SMTPUsername         string `env:"SMTP_USERNAME"`                            // SMTP username
	SMTPPassword         string `env:"SMTP_PASSWORD"`                            // SMTP password
	SMTPFromName         string `env:"SMTP_FROM_NAME" envDefault:"webcrm"`       // Tên người gửi
	SMTPFromEmail        string `env:"SMTP_FROM_EMAIL"`                          // Email người gửi
	DigestRecipient      string `env:"DIGEST_RECIPIENT"`                         // Email nhận digest nhắc việc (trống = tắt digest)
	DigestIntervalMinute int    `env:"DIGEST_INTERVAL_MINUTES" envDefault:"1440"` // Khoảng thời gian giữa các lần gửi digest (phút)
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

	// Tìm thư mục config/env bằng cách đi lên dần từ thư mục hiện tại
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
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
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Không fatal: cho phép chạy chỉ với biến môi trường (container)
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
