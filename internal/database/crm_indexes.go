// Package database - Index bổ sung cho CRM (compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/juliantrillken/webcrm/internal/global"
)

// CreateCrmAdditionalIndexes tạo các index bổ sung cho CRM (compound phức tạp).
// Gọi sau CreateIndexes cho từng collection CRM.
func CreateCrmAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	crmCustomers := db.Collection(global.MongoDB_ColNames.CrmCustomers)

	// crm_customers: (reminderDate, companyName) sparse — truy vấn danh sách việc cần làm
	if _, err := crmCustomers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "reminderDate", Value: 1},
			{Key: "companyName", Value: 1},
		},
		Options: options.Index().SetName("crm_customer_reminder_company").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crm_customers: (inactive, companyName) — danh bạ khách hàng theo trạng thái
	if _, err := crmCustomers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "inactive", Value: 1},
			{Key: "companyName", Value: 1},
		},
		Options: options.Index().SetName("crm_customer_inactive_company"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
