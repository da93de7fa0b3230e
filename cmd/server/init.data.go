package main

import (
	"context"

	crmvc "github.com/juliantrillken/webcrm/internal/api/crm/service"
	"github.com/juliantrillken/webcrm/internal/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	settingsService, err := crmvc.NewCrmSettingsService()
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}

	// Gieo bản ghi cấu hình mặc định nếu chưa có
	log.Info("🔄 [INIT] Step 1: Ensuring default settings...")
	settings, err := settingsService.EnsureDefault(context.TODO())
	if err != nil {
		log.Fatalf("Failed to ensure default settings: %v", err)
	}
	log.Infof("✅ [INIT] Step 1: Settings ready (companyName: %s)", settings.CompanyName)

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
