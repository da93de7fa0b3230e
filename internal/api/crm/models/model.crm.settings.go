// Package models - CrmSettings thuộc domain CRM (crm_settings).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingsScopeDefault là scope cố định của document settings duy nhất.
const SettingsScopeDefault = "default"

// CrmSettings lưu cấu hình hiển thị của workspace (crm_settings).
// Collection chỉ có đúng 1 document, khóa bởi unique index trên scope.
type CrmSettings struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Scope       string  `json:"scope" bson:"scope" index:"unique" default:"default"`
	CompanyName string  `json:"companyName" bson:"companyName"`
	Logo        *string `json:"logo,omitempty" bson:"logo,omitempty"` // Data URI, nil khi chưa upload

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
