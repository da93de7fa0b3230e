package global

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/juliantrillken/webcrm/internal/utility"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("calendar_date", validateCalendarDate)
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validateCalendarDate kiểm tra chuỗi ngày hợp lệ theo các layout được hỗ trợ
// (ISO "2006-01-02", định dạng Đức "2.1.2006", RFC3339).
// Chuỗi rỗng được chấp nhận - kết hợp với omitempty cho các field tùy chọn.
func validateCalendarDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := utility.ParseDate(value)
	return err == nil
}

// validateNoXSS kiểm tra XSS trong các field văn bản tự do
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
