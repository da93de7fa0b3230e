package aisvc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	aidto "github.com/juliantrillken/webcrm/internal/api/ai/dto"
	"github.com/juliantrillken/webcrm/internal/common"
)

func testRoster() []aidto.AIExtractCustomerRef {
	return []aidto.AIExtractCustomerRef{
		{ID: "65b2f0a1c3d4e5f601234567", CompanyName: "Acme GmbH", Email: "info@acme.de"},
		{ID: "65b2f0a1c3d4e5f601234568", CompanyName: "Beta AG"},
	}
}

func extractServiceFor(server *httptest.Server, apiKey string) *AIExtractService {
	return &AIExtractService{
		apiURL: server.URL,
		apiKey: apiKey,
		client: server.Client(),
	}
}

func TestExtract_DecodesMatchedResponse(t *testing.T) {
	var gotRequest aidto.AIExtractRequest
	var gotAuth, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("payload gửi đi không phải JSON hợp lệ: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customerId":"65b2f0a1c3d4e5f601234567","contactPerson":"Max Muster","email":"max@acme.de","summary":"Kunde will Angebot"}`))
	}))
	defer server.Close()

	svc := extractServiceFor(server, "secret-key")
	result, err := svc.Extract(context.Background(), "Sehr geehrte Damen und Herren ...", testRoster())
	if err != nil {
		t.Fatalf("Extract báo lỗi: %v", err)
	}

	if result.CustomerID == nil || *result.CustomerID != "65b2f0a1c3d4e5f601234567" {
		t.Errorf("customerId không được decode đúng: %v", result.CustomerID)
	}
	if result.ContactPerson != "Max Muster" || result.Summary != "Kunde will Angebot" {
		t.Errorf("field trích xuất sai: %+v", result)
	}

	if gotAuth != "Bearer secret-key" {
		t.Errorf("header Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("header Content-Type = %q", gotContentType)
	}
	if gotRequest.Text == "" || len(gotRequest.Customers) != 2 {
		t.Errorf("payload phải mang text và roster đầy đủ: %+v", gotRequest)
	}
}

func TestExtract_NullCustomerIDIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"customerId":null,"summary":"Kein Kunde erkannt"}`))
	}))
	defer server.Close()

	svc := extractServiceFor(server, "")
	result, err := svc.Extract(context.Background(), "Unbekannter Absender", testRoster())
	if err != nil {
		t.Fatalf("customerId null là kết quả hợp lệ, không phải lỗi: %v", err)
	}
	if result.CustomerID != nil {
		t.Errorf("customerId phải là nil khi dịch vụ không match, got %v", *result.CustomerID)
	}
	if result.Summary != "Kein Kunde erkannt" {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestExtract_NoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"customerId":null,"summary":""}`))
	}))
	defer server.Close()

	svc := extractServiceFor(server, "")
	if _, err := svc.Extract(context.Background(), "text", nil); err != nil {
		t.Fatalf("Extract báo lỗi: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("không cấu hình apiKey thì không gửi Authorization, got %q", gotAuth)
	}
}

func TestExtract_ServerErrorMapsToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := extractServiceFor(server, "")
	_, err := svc.Extract(context.Background(), "text", testRoster())
	if !errors.Is(err, common.ErrExtractUnavailable) {
		t.Errorf("non-2xx phải quy về ErrExtractUnavailable, got %v", err)
	}
}

func TestExtract_MalformedJSONMapsToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>ich bin kein json</html>`))
	}))
	defer server.Close()

	svc := extractServiceFor(server, "")
	_, err := svc.Extract(context.Background(), "text", testRoster())
	if !errors.Is(err, common.ErrExtractUnavailable) {
		t.Errorf("body không decode được phải quy về ErrExtractUnavailable, got %v", err)
	}
}

func TestExtract_WithoutURLIsConfigError(t *testing.T) {
	svc := &AIExtractService{apiURL: "", client: http.DefaultClient}

	_, err := svc.Extract(context.Background(), "text", nil)
	if err == nil {
		t.Fatal("apiURL trống phải báo lỗi cấu hình")
	}
	if errors.Is(err, common.ErrExtractUnavailable) {
		t.Error("lỗi cấu hình không được trộn với lỗi transport")
	}

	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi phải là *common.Error, got %T", err)
	}
	if appErr.StatusCode != common.StatusBadRequest {
		t.Errorf("statusCode = %d, muốn %d", appErr.StatusCode, common.StatusBadRequest)
	}
}

func TestIsEnabled(t *testing.T) {
	if (&AIExtractService{apiURL: ""}).IsEnabled() {
		t.Error("apiURL trống thì IsEnabled phải false")
	}
	if !(&AIExtractService{apiURL: "http://localhost:9999/extract"}).IsEnabled() {
		t.Error("có apiURL thì IsEnabled phải true")
	}
}
