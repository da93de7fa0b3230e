// Package aisvc - Client gọi dịch vụ trích xuất thư từ (extraction oracle).
package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	aidto "github.com/juliantrillken/webcrm/internal/api/ai/dto"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/global"
	"github.com/juliantrillken/webcrm/internal/logger"
)

// AIExtractService gọi dịch vụ trích xuất bên ngoài để đọc thư/email
// và map về khách hàng trong roster. Mọi lỗi transport/decode đều quy về
// common.ErrExtractUnavailable, không retry.
type AIExtractService struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewAIExtractService tạo mới AIExtractService từ cấu hình server.
func NewAIExtractService() (*AIExtractService, error) {
	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, common.NewError(common.ErrCodeBusinessState, "Cấu hình server chưa được khởi tạo", common.StatusInternalServerError, nil)
	}

	timeout := time.Duration(cfg.ExtractTimeoutSeconds) * time.Second
	if cfg.ExtractTimeoutSeconds <= 0 {
		timeout = 30 * time.Second
	}

	return &AIExtractService{
		apiURL: cfg.ExtractAPIURL,
		apiKey: cfg.ExtractAPIKey,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// IsEnabled cho biết dịch vụ trích xuất đã được cấu hình hay chưa.
func (s *AIExtractService) IsEnabled() bool {
	return s.apiURL != ""
}

// Extract gửi văn bản thư cùng roster khách hàng cho dịch vụ trích xuất.
// Trả về kết quả thô, chưa kiểm chứng. CustomerID nil = không match (hợp lệ).
func (s *AIExtractService) Extract(ctx context.Context, text string, roster []aidto.AIExtractCustomerRef) (*aidto.AIExtractResponse, error) {
	log := logger.GetAppLogger()

	if s.apiURL == "" {
		return nil, common.NewError(common.ErrCodeBusinessState, "Dịch vụ trích xuất chưa được cấu hình (EXTRACT_API_URL trống)", common.StatusBadRequest, nil)
	}

	payload := aidto.AIExtractRequest{
		Text:      text,
		Customers: roster,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"rosterSize": len(roster),
		}).Error("🤖 [EXTRACT] Lỗi khi gọi dịch vụ trích xuất")
		return nil, common.ErrExtractUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Đọc response body để xem lỗi chi tiết
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("🤖 [EXTRACT] Dịch vụ trích xuất trả về lỗi")
		return nil, common.ErrExtractUnavailable
	}

	var result aidto.AIExtractResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("🤖 [EXTRACT] Không decode được phản hồi của dịch vụ trích xuất")
		return nil, common.ErrExtractUnavailable
	}

	log.WithFields(map[string]interface{}{
		"matched":    result.CustomerID != nil,
		"rosterSize": len(roster),
	}).Info("🤖 [EXTRACT] Trích xuất hoàn thành")

	return &result, nil
}
