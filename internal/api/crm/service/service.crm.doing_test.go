// Package crmvc - Test dựng hàng đợi việc cần làm.
package crmvc

import (
	"context"
	"errors"
	"testing"
	"time"

	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reminderAt(year int, month time.Month, day int) *int64 {
	ts := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
	return &ts
}

func TestBuildDoingList_OrdersByDueDateAndFlagsOverdue(t *testing.T) {
	// now cố định: 10:00 UTC ngày 10.03.2025
	now := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC).UnixMilli()

	customers := []crmmodels.CrmCustomer{
		{ID: primitive.NewObjectID(), CompanyName: "Spät GmbH", NextSteps: "Nachfassen", ReminderDate: reminderAt(2025, time.March, 14)},
		{ID: primitive.NewObjectID(), CompanyName: "Früh AG", NextSteps: "Anrufen", ReminderDate: reminderAt(2025, time.March, 7)},
		{ID: primitive.NewObjectID(), CompanyName: "Ohne Termin", ReminderDate: nil},
		{ID: primitive.NewObjectID(), CompanyName: "Inaktiv KG", Inactive: true, ReminderDate: reminderAt(2025, time.March, 1)},
	}

	items := BuildDoingList(customers, now)
	if len(items) != 2 {
		t.Fatalf("khách inactive và khách không có reminder phải bị loại, got %d items", len(items))
	}

	if items[0].CompanyName != "Früh AG" || items[1].CompanyName != "Spät GmbH" {
		t.Errorf("hàng đợi phải sắp theo hạn tăng dần: %q, %q", items[0].CompanyName, items[1].CompanyName)
	}
	if !items[0].Overdue {
		t.Error("việc hạn 07.03 phải overdue tại now 10.03")
	}
	if items[1].Overdue {
		t.Error("việc hạn 14.03 chưa được overdue tại now 10.03")
	}
	if items[0].CustomerID != customers[1].ID.Hex() {
		t.Errorf("customerId map sai: %q", items[0].CustomerID)
	}
	if items[0].NextSteps != "Anrufen" {
		t.Errorf("nextSteps map sai: %q", items[0].NextSteps)
	}
}

func TestBuildDoingList_DueTodayCountsOverdue(t *testing.T) {
	// Hạn là nửa đêm hôm nay; now đã qua nửa đêm nên việc đến hạn hôm nay tính overdue
	due := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC).UnixMilli()
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC).UnixMilli()

	customers := []crmmodels.CrmCustomer{
		{ID: primitive.NewObjectID(), CompanyName: "Heute GmbH", ReminderDate: &due},
	}

	items := BuildDoingList(customers, now)
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if !items[0].Overdue {
		t.Error("việc đến hạn hôm nay phải được tính overdue")
	}
}

func TestBuildDoingList_StableOnEqualDueDates(t *testing.T) {
	now := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC).UnixMilli()
	same := reminderAt(2025, time.March, 12)

	customers := []crmmodels.CrmCustomer{
		{ID: primitive.NewObjectID(), CompanyName: "Alpha", ReminderDate: same},
		{ID: primitive.NewObjectID(), CompanyName: "Beta", ReminderDate: same},
	}

	items := BuildDoingList(customers, now)
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].CompanyName != "Alpha" || items[1].CompanyName != "Beta" {
		t.Errorf("hạn bằng nhau phải giữ thứ tự đầu vào: %q, %q", items[0].CompanyName, items[1].CompanyName)
	}
}

func TestBuildDoingList_EmptyInput(t *testing.T) {
	items := BuildDoingList(nil, time.Now().UnixMilli())
	if items == nil || len(items) != 0 {
		t.Errorf("input rỗng phải trả về slice rỗng khác nil, got %#v", items)
	}
}

func TestBuildCompleteUpdate(t *testing.T) {
	customer := &crmmodels.CrmCustomer{
		ID:           primitive.NewObjectID(),
		NextSteps:    "Angebot nachfassen",
		ReminderDate: reminderAt(2025, time.March, 12),
	}

	update := buildCompleteUpdate(customer)

	if _, ok := update.Unset["reminderDate"]; !ok {
		t.Error("hoàn thành việc phải unset reminderDate")
	}

	note, ok := update.Push["notes"].(crmmodels.CrmNote)
	if !ok {
		t.Fatalf("update phải push đúng một note, got %#v", update.Push["notes"])
	}
	if note.Content != "task completed: Angebot nachfassen" {
		t.Errorf("nội dung note = %q", note.Content)
	}
	if note.ID.IsZero() || note.Date <= 0 {
		t.Error("note hoàn thành phải có id và timestamp")
	}

	if update.Max["lastContact"] != utility.Today() {
		t.Errorf("lastContact phải được đẩy lên hôm nay qua $max, got %v", update.Max["lastContact"])
	}
	if len(update.Set) != 0 {
		t.Errorf("hoàn thành việc không được ghi field nào khác (nextSteps giữ nguyên), got %+v", update.Set)
	}

	// Hai lần hoàn thành là hai note riêng, không đè nhau
	second := buildCompleteUpdate(customer)
	if note.ID == second.Push["notes"].(crmmodels.CrmNote).ID {
		t.Error("mỗi lần hoàn thành phải sinh note id mới")
	}
}

// Các guard validation chạy trước mọi truy vấn, test được với service rỗng.

func TestSetReminder_RejectsWithoutDateOrOffset(t *testing.T) {
	svc := &CrmCustomerService{}

	_, err := svc.SetReminder(context.Background(), primitive.NewObjectID(), &crmdto.CrmReminderInput{})
	var appErr *common.Error
	if !errors.As(err, &appErr) || appErr.StatusCode != common.StatusBadRequest {
		t.Errorf("thiếu cả date lẫn offsetDays phải bị chặn với 400, got %v", err)
	}
}

func TestSetReminder_RejectsBadDate(t *testing.T) {
	svc := &CrmCustomerService{}

	_, err := svc.SetReminder(context.Background(), primitive.NewObjectID(), &crmdto.CrmReminderInput{Date: "32.13.2024"})
	if !errors.Is(err, common.ErrInvalidFormat) {
		t.Errorf("date không parse được phải trả về ErrInvalidFormat, got %v", err)
	}
}
