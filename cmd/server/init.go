package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/juliantrillken/webcrm/config"
	"github.com/juliantrillken/webcrm/internal/api/events"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/database"
	"github.com/juliantrillken/webcrm/internal/global"
	"github.com/juliantrillken/webcrm/internal/logger"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initDataChangeAudit()  // Khởi tạo observer audit thay đổi dữ liệu
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Module CRM (tiền tố crm_)
	global.MongoDB_ColNames.CrmCustomers = "crm_customers"
	global.MongoDB_ColNames.CrmSettings = "crm_settings"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: calendar_date, no_xss)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CrmCustomers), crmmodels.CrmCustomer{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CrmSettings), crmmodels.CrmSettings{})

	// Index compound bổ sung cho CRM (không biểu diễn được qua tag)
	if err := database.CreateCrmAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create additional CRM indexes: %v", err)
	}
}

// initDataChangeAudit đăng ký observer ghi log audit cho mọi thay đổi dữ liệu qua CRUD.
func initDataChangeAudit() {
	log := logger.GetAppLogger()
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		fields := map[string]interface{}{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}
		if id := events.GetDocumentID(e.Document); !id.IsZero() {
			fields["documentId"] = id.Hex()
		}
		log.WithFields(fields).Info("🗂️ [AUDIT] Dữ liệu thay đổi")
	})
	logrus.Info("Initialized data change audit observer")
}
