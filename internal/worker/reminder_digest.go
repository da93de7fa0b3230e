// Package worker chứa các vòng chạy nền của ứng dụng.
package worker

import (
	"context"
	"time"

	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/delivery/channels"
	"github.com/juliantrillken/webcrm/internal/global"
	"github.com/juliantrillken/webcrm/internal/logger"
	"github.com/juliantrillken/webcrm/internal/utility"
)

// ReminderDigestWorker gửi email tổng hợp các việc đến hạn theo chu kỳ.
// Worker chỉ hoạt động khi cấu hình có SMTP host và địa chỉ nhận digest.
type ReminderDigestWorker struct {
	customerService *crmvc.CrmCustomerService
	sender          *channels.SMTPSender
	recipient       string
	interval        time.Duration
}

// NewReminderDigestWorker tạo mới ReminderDigestWorker từ cấu hình toàn cục.
func NewReminderDigestWorker() (*ReminderDigestWorker, error) {
	customerService, err := crmvc.NewCrmCustomerService()
	if err != nil {
		return nil, err
	}

	cfg := global.MongoDB_ServerConfig
	sender := &channels.SMTPSender{}
	recipient := ""
	interval := 24 * time.Hour
	if cfg != nil {
		sender = &channels.SMTPSender{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromName:  cfg.SMTPFromName,
			FromEmail: cfg.SMTPFromEmail,
		}
		recipient = cfg.DigestRecipient
		if cfg.DigestIntervalMinute > 0 {
			interval = time.Duration(cfg.DigestIntervalMinute) * time.Minute
		}
	}
	if interval < time.Minute {
		interval = 24 * time.Hour
	}

	return &ReminderDigestWorker{
		customerService: customerService,
		sender:          sender,
		recipient:       recipient,
		interval:        interval,
	}, nil
}

// Enabled cho biết worker có đủ cấu hình để gửi email hay không.
func (w *ReminderDigestWorker) Enabled() bool {
	return w.sender.Host != "" && w.recipient != ""
}

// Start chạy worker trong vòng lặp: mỗi interval lấy danh sách việc đang mở,
// lọc ra việc đã đến hạn hoặc quá hạn rồi gửi email tổng hợp.
func (w *ReminderDigestWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	if !w.Enabled() {
		log.Info("📧 [DIGEST] Thiếu cấu hình SMTP hoặc người nhận, digest nhắc việc tắt")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"recipient": w.recipient,
	}).Info("📧 [DIGEST] Starting Reminder Digest Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📧 [DIGEST] Reminder Digest Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("📧 [DIGEST] Panic khi gửi digest, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				doings, err := w.customerService.ListDoings(ctx)
				if err != nil {
					log.WithError(err).Error("📧 [DIGEST] Lỗi lấy danh sách việc đang mở")
					return
				}

				due := dueItems(doings)
				if len(due) == 0 {
					return
				}

				subject := "Việc cần làm " + utility.FormatDate(utility.Today())
				if err := channels.SendDoingDigest(ctx, w.sender, w.recipient, subject, due); err != nil {
					log.WithError(err).Error("📧 [DIGEST] Gửi email digest thất bại")
					return
				}

				log.WithFields(map[string]interface{}{
					"items":     len(due),
					"recipient": w.recipient,
				}).Info("📧 [DIGEST] Đã gửi digest nhắc việc")
			}()
		}
	}
}

// dueItems giữ lại các việc có hạn hôm nay hoặc đã quá hạn.
func dueItems(items []crmdto.CrmDoingItem) []crmdto.CrmDoingItem {
	due := make([]crmdto.CrmDoingItem, 0, len(items))
	for _, item := range items {
		if utility.IsFuture(item.ReminderDate) {
			continue
		}
		due = append(due, item)
	}
	return due
}
