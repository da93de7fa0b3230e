// Package crmvc - Scheduler nhắc việc (doings).
// Một việc đang mở = reminderDate khác nil; hàng đợi việc và cờ overdue
// được derive từ trạng thái khách, không lưu riêng.
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
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// SetReminder đặt nhắc việc cho khách: date cụ thể hoặc hôm nay + offsetDays.
// Date có ưu tiên khi truyền cả hai.
func (s *CrmCustomerService) SetReminder(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmReminderInput) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	var reminderDate int64
	switch {
	case input.Date != "":
		ts, err := utility.ParseDate(input.Date)
		if err != nil {
			return zero, common.ErrInvalidFormat
		}
		reminderDate = ts
	case input.OffsetDays != nil:
		reminderDate = utility.AddDays(utility.Today(), *input.OffsetDays)
	default:
		return zero, common.NewError(common.ErrCodeValidationInput, "Cần truyền offsetDays hoặc date để đặt nhắc việc", common.StatusBadRequest, nil)
	}

	return s.UpdateById(ctx, id, bson.M{"$set": bson.M{"reminderDate": reminderDate}})
}

// ClearReminder xóa nhắc việc, khách không còn trong hàng đợi việc.
func (s *CrmCustomerService) ClearReminder(ctx context.Context, id primitive.ObjectID) (crmmodels.CrmCustomer, error) {
	return s.UpdateById(ctx, id, basesvc.UpdateData{
		Unset: map[string]interface{}{"reminderDate": ""},
	})
}

// buildCompleteUpdate dựng update document cho một lần hoàn thành việc (hàm thuần).
// Xóa reminderDate, thêm note "task completed: {nextSteps}" và đẩy lastContact
// lên hôm nay. Không đụng nextSteps, nó ở lại làm vết của việc vừa xong.
func buildCompleteUpdate(customer *crmmodels.CrmCustomer) *basesvc.UpdateData {
	return &basesvc.UpdateData{
		Unset: map[string]interface{}{"reminderDate": ""},
		Push: map[string]interface{}{
			"notes": crmmodels.CrmNote{
				ID:      primitive.NewObjectID(),
				Date:    utility.CurrentTimeInMilli(),
				Content: "task completed: " + customer.NextSteps,
			},
		},
		Max: map[string]interface{}{"lastContact": utility.Today()},
	}
}

// CompleteDoing hoàn thành việc đang mở, tất cả trong một UpdateOne.
func (s *CrmCustomerService) CompleteDoing(ctx context.Context, id primitive.ObjectID) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	customer, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if customer.ReminderDate == nil {
		return zero, common.NewError(common.ErrCodeBusinessState, "Khách hàng không có việc đang mở để hoàn thành", common.StatusBadRequest, nil)
	}

	return s.UpdateOne(ctx, bson.M{"_id": id}, buildCompleteUpdate(&customer), nil)
}

// RescheduleDoing dời hạn việc đang mở về hôm nay + offsetDays (mặc định 7).
// Không thêm note, không đụng nextSteps.
func (s *CrmCustomerService) RescheduleDoing(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmRescheduleInput) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	customer, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if customer.ReminderDate == nil {
		return zero, common.NewError(common.ErrCodeBusinessState, "Khách hàng không có việc đang mở để dời hạn", common.StatusBadRequest, nil)
	}

	offset := 7
	if input != nil && input.OffsetDays != nil {
		offset = *input.OffsetDays
	}

	reminderDate := utility.AddDays(utility.Today(), offset)
	return s.UpdateById(ctx, id, bson.M{"$set": bson.M{"reminderDate": reminderDate}})
}

// ListDoings trả về hàng đợi việc: mọi khách active có reminderDate,
// sắp theo hạn tăng dần, cờ overdue tính tại thời điểm query.
func (s *CrmCustomerService) ListDoings(ctx context.Context) ([]crmdto.CrmDoingItem, error) {
	filter := bson.M{
		"inactive":     false,
		"reminderDate": bson.M{"$exists": true},
	}
	opts := mongoopts.Find().SetSort(bson.D{
		{Key: "reminderDate", Value: 1},
		{Key: "companyName", Value: 1},
	})

	customers, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return BuildDoingList(customers, utility.CurrentTimeInMilli()), nil
}

// BuildDoingList dựng hàng đợi việc từ danh sách khách (hàm thuần).
// Khách inactive hoặc không có reminderDate bị loại; overdue là hạn
// đã qua so với now truyền vào, tính lại mỗi lần gọi vì now luôn tiến.
func BuildDoingList(customers []crmmodels.CrmCustomer, now int64) []crmdto.CrmDoingItem {
	items := []crmdto.CrmDoingItem{}
	for _, c := range customers {
		if c.Inactive || c.ReminderDate == nil {
			continue
		}
		items = append(items, crmdto.CrmDoingItem{
			CustomerID:    c.ID.Hex(),
			CompanyName:   c.CompanyName,
			ContactPerson: c.ContactPerson,
			NextSteps:     c.NextSteps,
			ReminderDate:  *c.ReminderDate,
			Overdue:       *c.ReminderDate < now,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ReminderDate < items[j].ReminderDate
	})
	return items
}
