// Package crmvc - Service khách hàng CRM (crm_customers).
// CRUD hồ sơ, danh sách phân trang và roster cho dịch vụ trích xuất.
package crmvc

import (
	"context"
	"fmt"
	"strings"

	aidto "github.com/juliantrillken/webcrm/internal/api/ai/dto"
	basemodels "github.com/juliantrillken/webcrm/internal/api/base/models"
	basesvc "github.com/juliantrillken/webcrm/internal/api/base/service"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/global"
	"github.com/juliantrillken/webcrm/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// CrmCustomerService xử lý logic hồ sơ khách hàng.
type CrmCustomerService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CrmCustomer]
}

// NewCrmCustomerService tạo CrmCustomerService mới.
func NewCrmCustomerService() (*CrmCustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmCustomers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmCustomers, common.ErrNotFound)
	}
	return &CrmCustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmCustomer](coll),
	}, nil
}

// ValidateCompanyName kiểm tra ràng buộc duy nhất của model:
// companyName sau khi trim không được rỗng. Các field khác không validate gì thêm.
func ValidateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return common.ErrRequiredField
	}
	return nil
}

// CreateCustomer tạo hồ sơ khách mới từ form.
// firstContact để trống lấy hôm nay; lastContact khởi tạo bằng firstContact.
func (s *CrmCustomerService) CreateCustomer(ctx context.Context, input *crmdto.CrmCustomerCreateInput) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	if err := ValidateCompanyName(input.CompanyName); err != nil {
		return zero, err
	}

	firstContact := utility.Today()
	if input.FirstContact != "" {
		ts, err := utility.ParseDate(input.FirstContact)
		if err != nil {
			return zero, common.ErrInvalidFormat
		}
		firstContact = ts
	}

	doc := crmmodels.CrmCustomer{
		CompanyName:   strings.TrimSpace(input.CompanyName),
		ContactPerson: input.ContactPerson,
		Address:       input.Address,
		Email:         input.Email,
		Phone:         input.Phone,
		Industry:      input.Industry,
		Info:          input.Info,
		NextSteps:     input.NextSteps,
		Source:        crmmodels.NormalizeSource(input.Source),
		FirstContact:  firstContact,
		LastContact:   firstContact,
		ReminderDate:  nil,
		SjSeen:        input.SjSeen,
		Inactive:      false,
		Notes:         []crmmodels.CrmNote{},
	}

	return s.InsertOne(ctx, doc)
}

// UpdateCustomer ghi đè các field sửa được của hồ sơ (full form).
// Không đụng vào notes, reminderDate và lastContact.
func (s *CrmCustomerService) UpdateCustomer(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmCustomerUpdateInput) (crmmodels.CrmCustomer, error) {
	var zero crmmodels.CrmCustomer

	if err := ValidateCompanyName(input.CompanyName); err != nil {
		return zero, err
	}

	set := bson.M{
		"companyName":   strings.TrimSpace(input.CompanyName),
		"contactPerson": input.ContactPerson,
		"address":       input.Address,
		"email":         input.Email,
		"phone":         input.Phone,
		"industry":      input.Industry,
		"info":          input.Info,
		"nextSteps":     input.NextSteps,
		"source":        crmmodels.NormalizeSource(input.Source),
		"sjSeen":        input.SjSeen,
		"inactive":      input.Inactive,
	}
	// firstContact chỉ ghi đè khi form gửi giá trị, để trống là giữ nguyên
	if input.FirstContact != "" {
		ts, err := utility.ParseDate(input.FirstContact)
		if err != nil {
			return zero, common.ErrInvalidFormat
		}
		set["firstContact"] = ts
	}

	return s.UpdateById(ctx, id, bson.M{"$set": set})
}

// ListCustomers trả về danh sách khách phân trang, sort theo companyName.
// includeInactive true mới trả về cả khách đã ẩn.
func (s *CrmCustomerService) ListCustomers(ctx context.Context, includeInactive bool, page, limit int64) (*basemodels.PaginateResult[crmmodels.CrmCustomer], error) {
	filter := bson.M{}
	if !includeInactive {
		filter["inactive"] = false
	}

	opts := mongoopts.Find().SetSort(bson.D{{Key: "companyName", Value: 1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Roster trả về danh sách rút gọn mọi khách active, dùng làm đầu vào
// cho dịch vụ trích xuất khi đối soát thư.
func (s *CrmCustomerService) Roster(ctx context.Context) ([]aidto.AIExtractCustomerRef, error) {
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "companyName", Value: 1}}).
		SetProjection(bson.D{
			{Key: "companyName", Value: 1},
			{Key: "contactPerson", Value: 1},
			{Key: "email", Value: 1},
		})

	customers, err := s.Find(ctx, bson.M{"inactive": false}, opts)
	if err != nil {
		return nil, err
	}

	refs := make([]aidto.AIExtractCustomerRef, 0, len(customers))
	for _, c := range customers {
		refs = append(refs, aidto.AIExtractCustomerRef{
			ID:            c.ID.Hex(),
			CompanyName:   c.CompanyName,
			ContactPerson: c.ContactPerson,
			Email:         c.Email,
		})
	}
	return refs, nil
}
