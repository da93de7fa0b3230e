// Script nhập khách hàng từ file CSV hoặc xlsx vào MongoDB.
//
// Chạy: go run scripts/import_customers/main.go -file customers.csv
// Cần: MONGODB_CONNECTION_URI, MONGODB_DBNAME (từ config/env/<GO_ENV>.env hoặc biến môi trường)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/juliantrillken/webcrm/config"
	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/database"
	"github.com/juliantrillken/webcrm/internal/global"
	"github.com/juliantrillken/webcrm/internal/logger"
)

func main() {
	filePath := flag.String("file", "", "Đường dẫn file CSV hoặc xlsx cần nhập")
	envPath := flag.String("env", "", "File env tùy chọn (mặc định tìm config/env theo GO_ENV)")
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Thiếu tham số -file. Cách dùng: go run scripts/import_customers/main.go -file customers.csv")
		os.Exit(1)
	}

	if *envPath != "" {
		if err := godotenv.Load(*envPath); err != nil {
			logrus.Fatalf("Không load được file env %s: %v", *envPath, err)
		}
	}

	if err := logger.Init(nil); err != nil {
		logrus.Fatalf("Không khởi tạo được logger: %v", err)
	}

	// Khởi tạo tối thiểu để dùng được service: tên collection, validator, config, mongo, registry
	global.MongoDB_ColNames.CrmCustomers = "crm_customers"
	global.MongoDB_ColNames.CrmSettings = "crm_settings"
	global.InitValidator()

	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Không đọc được cấu hình (thiếu config/env hoặc biến môi trường)")
	}

	session, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Không kết nối được MongoDB: %v", err)
	}
	global.MongoDB_Session = session
	defer database.CloseInstance(session)

	if err := database.EnsureDatabaseAndCollections(session); err != nil {
		logrus.Fatalf("Không khởi tạo được database và collections: %v", err)
	}

	db := session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	for _, name := range []string{global.MongoDB_ColNames.CrmCustomers, global.MongoDB_ColNames.CrmSettings} {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Fatalf("Không đăng ký được collection %s: %v", name, err)
		}
	}

	customerService, err := crmvc.NewCrmCustomerService()
	if err != nil {
		logrus.Fatalf("Không tạo được CrmCustomerService: %v", err)
	}

	file, err := os.Open(*filePath)
	if err != nil {
		logrus.Fatalf("Không mở được file %s: %v", *filePath, err)
	}
	defer file.Close()

	ctx := context.Background()
	result, err := customerService.ImportFromFile(ctx, filepath.Base(*filePath), file)
	if err != nil {
		logrus.Fatalf("Nhập thất bại: %v", err)
	}

	total, err := db.Collection(global.MongoDB_ColNames.CrmCustomers).CountDocuments(ctx, bson.M{})
	if err != nil {
		logrus.Fatalf("Không đếm được khách hàng sau khi nhập: %v", err)
	}

	fmt.Printf("Đã nhập %d khách hàng từ %s, tổng trong collection: %d\n", result.Accepted, filepath.Base(*filePath), total)
}
