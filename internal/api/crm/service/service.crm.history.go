// Package crmvc - Lịch sử liên hệ: note nhúng và entry "việc sắp tới" tổng hợp.
package crmvc

import (
	"context"
	"sort"

	basesvc "github.com/juliantrillken/webcrm/internal/api/base/service"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CombinedHistory trả về lịch sử hiển thị của một khách (hàm thuần, không ghi gì).
// Gồm mọi note đã lưu, cộng đúng 1 entry tổng hợp "next task: {nextSteps}" đặt tại
// reminderDate khi và chỉ khi nextSteps khác rỗng VÀ reminderDate khác nil.
// Entry tổng hợp không có id, không lưu và không sửa/xóa được.
// Sắp giảm dần theo ngày, ngày bằng nhau giữ nguyên thứ tự ban đầu.
func CombinedHistory(customer *crmmodels.CrmCustomer) []crmdto.CrmNoteEntry {
	entries := make([]crmdto.CrmNoteEntry, 0, len(customer.Notes)+1)
	for _, n := range customer.Notes {
		entries = append(entries, crmdto.CrmNoteEntry{
			ID:      n.ID.Hex(),
			Date:    n.Date,
			Content: n.Content,
		})
	}

	if customer.NextSteps != "" && customer.ReminderDate != nil {
		entries = append(entries, crmdto.CrmNoteEntry{
			Date:     *customer.ReminderDate,
			Content:  "next task: " + customer.NextSteps,
			IsFuture: true,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}

// HistoryForCustomer đọc khách theo id rồi dựng lịch sử kết hợp.
func (s *CrmCustomerService) HistoryForCustomer(ctx context.Context, id primitive.ObjectID) ([]crmdto.CrmNoteEntry, error) {
	customer, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return CombinedHistory(&customer), nil
}

// AddNote thêm note mới (ngày = bây giờ) và đẩy lastContact lên hôm nay,
// cả hai trong một UpdateOne.
func (s *CrmCustomerService) AddNote(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmNoteCreateInput) (crmmodels.CrmCustomer, error) {
	note := crmmodels.CrmNote{
		ID:      primitive.NewObjectID(),
		Date:    utility.CurrentTimeInMilli(),
		Content: input.Content,
	}

	update := basesvc.UpdateData{
		Push: map[string]interface{}{"notes": note},
		Max:  map[string]interface{}{"lastContact": utility.Today()},
	}
	return s.UpdateOne(ctx, bson.M{"_id": id}, &update, nil)
}

// CorrectNoteDate chỉnh lại ngày một note đã có (positional update).
// Nội dung, id, các note khác và lastContact giữ nguyên.
func (s *CrmCustomerService) CorrectNoteDate(ctx context.Context, id, noteID primitive.ObjectID, input *crmdto.CrmNoteDateInput) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	ts, err := utility.ParseDate(input.Date)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	filter := bson.M{"_id": id, "notes.id": noteID}
	update := bson.M{"$set": bson.M{"notes.$.date": ts}}
	return s.UpdateOne(ctx, filter, update, nil)
}

// ReplaceNoteContent thay toàn bộ nội dung một note (note không sửa từng phần).
func (s *CrmCustomerService) ReplaceNoteContent(ctx context.Context, id, noteID primitive.ObjectID, input *crmdto.CrmNoteContentInput) (crmmodels.CrmCustomer, error) {
	filter := bson.M{"_id": id, "notes.id": noteID}
	update := bson.M{"$set": bson.M{"notes.$.content": input.Content}}
	return s.UpdateOne(ctx, filter, update, nil)
}

// DeleteNote xóa hẳn một note khỏi lịch sử ($pull theo id nhúng).
func (s *CrmCustomerService) DeleteNote(ctx context.Context, id, noteID primitive.ObjectID) (crmmodels.CrmCustomer, error) {
	filter := bson.M{"_id": id, "notes.id": noteID}
	update := basesvc.UpdateData{
		Pull: map[string]interface{}{"notes": bson.M{"id": noteID}},
	}
	return s.UpdateOne(ctx, filter, &update, nil)
}
