// Package crmvc - Settings workspace (document duy nhất trong crm_settings).
package crmvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "github.com/juliantrillken/webcrm/internal/api/base/service"
	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/global"
	"github.com/juliantrillken/webcrm/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// CrmSettingsService quản lý settings hiển thị của workspace.
type CrmSettingsService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CrmSettings]
}

// NewCrmSettingsService tạo CrmSettingsService mới.
func NewCrmSettingsService() (*CrmSettingsService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmSettings)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmSettings, common.ErrNotFound)
	}
	return &CrmSettingsService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmSettings](coll),
	}, nil
}

// GetSettings trả về settings hiện tại (document scope "default", tạo sẵn lúc khởi động).
func (s *CrmSettingsService) GetSettings(ctx context.Context) (crmmodels.CrmSettings, error) {
	return s.FindOne(ctx, bson.M{"scope": crmmodels.SettingsScopeDefault}, nil)
}

// UpdateSettings upsert companyName và logo trên scope cố định.
// Logo nil xóa logo hiện tại.
func (s *CrmSettingsService) UpdateSettings(ctx context.Context, input *crmdto.CrmSettingsUpdateInput) (crmmodels.CrmSettings, error) {
	update := basesvc.UpdateData{
		Set: map[string]interface{}{
			"companyName": input.CompanyName,
		},
	}
	if input.Logo != nil {
		update.Set["logo"] = *input.Logo
	} else {
		update.Unset = map[string]interface{}{"logo": ""}
	}

	return s.Upsert(ctx, bson.M{"scope": crmmodels.SettingsScopeDefault}, update)
}

// ResetSettings xóa document settings, lần EnsureDefault kế tiếp tạo lại bản mặc định.
func (s *CrmSettingsService) ResetSettings(ctx context.Context) error {
	err := s.DeleteOne(ctx, bson.M{"scope": crmmodels.SettingsScopeDefault})
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	return nil
}

// EnsureDefault tạo settings mặc định nếu chưa có, gọi một lần lúc khởi động.
func (s *CrmSettingsService) EnsureDefault(ctx context.Context) (crmmodels.CrmSettings, error) {
	existing, err := s.GetSettings(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return existing, err
	}

	doc := crmmodels.CrmSettings{
		Scope:       crmmodels.SettingsScopeDefault,
		CompanyName: "webcrm",
		Logo:        nil,
	}
	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		return created, err
	}

	logger.GetAppLogger().Info("⚙️ [SETTINGS] Đã tạo settings mặc định")
	return created, nil
}
