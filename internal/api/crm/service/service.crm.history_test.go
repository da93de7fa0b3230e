// Package crmvc - Test lịch sử kết hợp: note đã lưu trộn entry việc sắp tới.
package crmvc

import (
	"context"
	"errors"
	"testing"
	"time"

	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func noteAt(year int, month time.Month, day int, content string) crmmodels.CrmNote {
	return crmmodels.CrmNote{
		ID:      primitive.NewObjectID(),
		Date:    time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Content: content,
	}
}

func TestCombinedHistory_MergesSyntheticFutureEntry(t *testing.T) {
	customer := &crmmodels.CrmCustomer{
		ID:           primitive.NewObjectID(),
		NextSteps:    "Angebot nachfassen",
		ReminderDate: reminderAt(2025, time.June, 20),
		Notes: []crmmodels.CrmNote{
			noteAt(2025, time.June, 1, "Erstkontakt"),
			noteAt(2025, time.June, 10, "Angebot gesendet"),
		},
	}

	entries := CombinedHistory(customer)
	if len(entries) != 3 {
		t.Fatalf("2 note + 1 entry tổng hợp = 3, got %d", len(entries))
	}

	// Sắp giảm dần: entry tổng hợp (20.06) trước, rồi 10.06, rồi 01.06
	if !entries[0].IsFuture {
		t.Error("entry đầu tiên phải là entry việc sắp tới")
	}
	if entries[0].Content != "next task: Angebot nachfassen" {
		t.Errorf("nội dung entry tổng hợp = %q", entries[0].Content)
	}
	if entries[0].ID != "" {
		t.Errorf("entry tổng hợp không được có id, got %q", entries[0].ID)
	}
	if entries[0].Date != *customer.ReminderDate {
		t.Errorf("entry tổng hợp phải đặt tại reminderDate, got %d", entries[0].Date)
	}

	if entries[1].Content != "Angebot gesendet" || entries[2].Content != "Erstkontakt" {
		t.Errorf("note phải sắp giảm dần theo ngày: %q, %q", entries[1].Content, entries[2].Content)
	}
	if entries[1].IsFuture || entries[2].IsFuture {
		t.Error("note đã lưu không được mang cờ isFuture")
	}
	if entries[1].ID == "" || entries[2].ID == "" {
		t.Error("note đã lưu phải có id")
	}
}

func TestCombinedHistory_NoSyntheticWithoutReminder(t *testing.T) {
	customer := &crmmodels.CrmCustomer{
		NextSteps:    "Anrufen",
		ReminderDate: nil,
		Notes:        []crmmodels.CrmNote{noteAt(2025, time.June, 1, "Erstkontakt")},
	}

	entries := CombinedHistory(customer)
	if len(entries) != 1 {
		t.Fatalf("thiếu reminderDate thì không có entry tổng hợp, got %d entries", len(entries))
	}
	if entries[0].IsFuture {
		t.Error("không được có entry isFuture khi thiếu reminderDate")
	}
}

func TestCombinedHistory_NoSyntheticWithoutNextSteps(t *testing.T) {
	customer := &crmmodels.CrmCustomer{
		NextSteps:    "",
		ReminderDate: reminderAt(2025, time.June, 20),
		Notes:        []crmmodels.CrmNote{noteAt(2025, time.June, 1, "Erstkontakt")},
	}

	entries := CombinedHistory(customer)
	if len(entries) != 1 {
		t.Fatalf("thiếu nextSteps thì không có entry tổng hợp, got %d entries", len(entries))
	}
}

func TestCombinedHistory_TieKeepsStoredNoteFirst(t *testing.T) {
	// Note cùng ngày với reminderDate: sort ổn định giữ note đã lưu trước entry tổng hợp
	customer := &crmmodels.CrmCustomer{
		NextSteps:    "Vertrag senden",
		ReminderDate: reminderAt(2025, time.June, 20),
		Notes:        []crmmodels.CrmNote{noteAt(2025, time.June, 20, "Termin bestätigt")},
	}

	entries := CombinedHistory(customer)
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Content != "Termin bestätigt" {
		t.Errorf("ngày bằng nhau phải giữ note đã lưu trước: %q", entries[0].Content)
	}
	if !entries[1].IsFuture {
		t.Error("entry thứ hai phải là entry tổng hợp")
	}
}

func TestCombinedHistory_EmptyCustomer(t *testing.T) {
	entries := CombinedHistory(&crmmodels.CrmCustomer{})
	if entries == nil || len(entries) != 0 {
		t.Errorf("khách không note không việc phải trả về slice rỗng khác nil, got %#v", entries)
	}
}

func TestCorrectNoteDate_RejectsBadDateBeforeStore(t *testing.T) {
	// Guard parse chạy trước truy vấn, service rỗng không bị chạm tới
	svc := &CrmCustomerService{}

	_, err := svc.CorrectNoteDate(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), &crmdto.CrmNoteDateInput{Date: "kein-datum"})
	if !errors.Is(err, common.ErrInvalidFormat) {
		t.Errorf("ngày không parse được phải trả về ErrInvalidFormat, got %v", err)
	}
}
