// Package channels chứa các kênh gửi thông báo ra ngoài ứng dụng.
package channels

import (
	"context"
	"fmt"
	"html"

	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	"github.com/juliantrillken/webcrm/internal/utility"

	"gopkg.in/gomail.v2"
)

// SMTPSender gom thông tin kết nối SMTP lấy từ cấu hình.
type SMTPSender struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SendDoingDigest gửi email tổng hợp các việc đến hạn tới recipient.
func SendDoingDigest(ctx context.Context, sender *SMTPSender, recipient string, subject string, items []crmdto.CrmDoingItem) error {
	rows := ""
	for _, item := range items {
		marker := ""
		if item.Overdue {
			marker = ` <span style="color:#dc3545;font-weight:bold;">quá hạn</span>`
		}
		rows += fmt.Sprintf(
			`<tr><td style="padding:6px 12px;border-bottom:1px solid #eee;">%s</td><td style="padding:6px 12px;border-bottom:1px solid #eee;">%s</td><td style="padding:6px 12px;border-bottom:1px solid #eee;">%s</td><td style="padding:6px 12px;border-bottom:1px solid #eee;">%s%s</td></tr>`,
			html.EscapeString(item.CompanyName),
			html.EscapeString(item.ContactPerson),
			html.EscapeString(item.NextSteps),
			utility.FormatDate(item.ReminderDate),
			marker)
	}

	htmlContent := `<h3>` + html.EscapeString(subject) + `</h3>` +
		`<table style="border-collapse:collapse;font-family:sans-serif;font-size:14px;">` +
		`<tr><th style="padding:6px 12px;text-align:left;">Khách hàng</th><th style="padding:6px 12px;text-align:left;">Liên hệ</th><th style="padding:6px 12px;text-align:left;">Việc</th><th style="padding:6px 12px;text-align:left;">Hạn</th></tr>` +
		rows +
		`</table>`

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", sender.FromName, sender.FromEmail))
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlContent)

	dialer := gomail.NewDialer(sender.Host, sender.Port, sender.Username, sender.Password)
	return dialer.DialAndSend(msg)
}
