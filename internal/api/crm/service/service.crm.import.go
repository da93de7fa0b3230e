// Package crmvc - Import khách hàng từ file (csv/txt delimiter ';' hoặc xlsx).
// Normalizer là hàm thuần, phần đọc file và ghi DB tách riêng ở boundary.
package crmvc

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	crmmodels "github.com/juliantrillken/webcrm/internal/api/crm/models"
	"github.com/juliantrillken/webcrm/internal/common"
	"github.com/juliantrillken/webcrm/internal/logger"
	"github.com/juliantrillken/webcrm/internal/utility"
)

// importColumnOrder thứ tự cột cố định của file delimited (không có header mapping).
var importColumnOrder = []string{
	"companyName",
	"contactPerson",
	"address",
	"email",
	"phone",
	"source",
	"industry",
	"nextSteps",
	"firstContact",
	"lastContact",
	"sjSeen",
	"info",
}

// ImportFromFile đọc file import theo đuôi file, normalize và ghi các dòng được nhận.
// Đuôi không hỗ trợ hoặc file không đọc được trả về ErrImportFormat, không ghi dòng nào.
// Dòng thiếu companyName bị bỏ qua trong im lặng, không tính là lỗi.
func (s *CrmCustomerService) ImportFromFile(ctx context.Context, filename string, reader io.Reader) (*crmdto.CrmImportResult, error) {
	log := logger.GetAppLogger()

	var accepted []crmmodels.CrmCustomer
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".txt":
		rows, err := parseDelimitedFile(reader)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{"filename": filename}).Warn("📥 [IMPORT] File delimited không đọc được")
			return nil, common.ErrImportFormat
		}
		accepted, _ = NormalizeDelimited(rows)
	case ".xlsx":
		rows, err := parseSheetFile(reader)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{"filename": filename}).Warn("📥 [IMPORT] File bảng tính không đọc được")
			return nil, common.ErrImportFormat
		}
		accepted, _ = NormalizeSheet(rows)
	default:
		return nil, common.ErrImportFormat
	}

	// 0 dòng được nhận là kết quả hợp lệ, khác với lỗi đọc file
	if len(accepted) == 0 {
		return &crmdto.CrmImportResult{Accepted: 0}, nil
	}

	inserted, err := s.InsertMany(ctx, accepted)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"filename": filename,
		"accepted": len(inserted),
	}).Info("📥 [IMPORT] Import hoàn thành")

	return &crmdto.CrmImportResult{Accepted: len(inserted)}, nil
}

// parseDelimitedFile đọc csv/txt với delimiter ';' (quote chuẩn csv).
func parseDelimitedFile(reader io.Reader) ([][]string, error) {
	r := csv.NewReader(reader)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// parseSheetFile đọc worksheet đầu tiên của file xlsx, dòng đầu là header.
func parseSheetFile(reader io.Reader) ([]crmdto.ImportRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("file không có worksheet nào")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []crmdto.ImportRow{}, nil
	}

	headers := rows[0]
	out := []crmdto.ImportRow{}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		entry := crmdto.ImportRow{}
		for i, header := range headers {
			header = strings.TrimSpace(header)
			if header == "" || i >= len(row) {
				continue
			}
			entry[header] = row[i]
		}
		out = append(out, entry)
	}
	return out, nil
}

// NormalizeDelimited chuyển các dòng delimited thành hồ sơ khách (hàm thuần).
// Dòng đầu luôn bị bỏ (header), dòng trắng bỏ qua, mapping theo vị trí cột cố định.
// Trả về danh sách được nhận và số lượng của nó.
func NormalizeDelimited(rows [][]string) ([]crmmodels.CrmCustomer, int) {
	out := []crmmodels.CrmCustomer{}
	if len(rows) <= 1 {
		return out, 0
	}

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		fields := crmdto.ImportRow{}
		for i, name := range importColumnOrder {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		if doc, ok := buildCustomerFromRow(fields); ok {
			out = append(out, doc)
		}
	}
	return out, len(out)
}

// NormalizeSheet chuyển các dòng bảng tính (map theo header) thành hồ sơ khách (hàm thuần).
// Header được tìm theo 3 bước: đúng tên lowerCamel, viết hoa chữ đầu, rồi so không phân biệt hoa thường.
func NormalizeSheet(rows []crmdto.ImportRow) ([]crmmodels.CrmCustomer, int) {
	out := []crmmodels.CrmCustomer{}
	for _, row := range rows {
		if doc, ok := buildCustomerFromRow(row); ok {
			out = append(out, doc)
		}
	}
	return out, len(out)
}

// buildCustomerFromRow dựng hồ sơ từ một dòng import.
// Trả về false khi dòng thiếu companyName (dòng bị bỏ qua, không phải lỗi).
func buildCustomerFromRow(row crmdto.ImportRow) (crmmodels.CrmCustomer, bool) {
	var zero crmmodels.CrmCustomer

	companyName := cellString(lookupField(row, "companyName"))
	if companyName == "" {
		return zero, false
	}

	today := utility.Today()
	doc := crmmodels.CrmCustomer{
		CompanyName:   companyName,
		ContactPerson: cellString(lookupField(row, "contactPerson")),
		Address:       cellString(lookupField(row, "address")),
		Email:         cellString(lookupField(row, "email")),
		Phone:         cellString(lookupField(row, "phone")),
		Industry:      cellString(lookupField(row, "industry")),
		Info:          cellString(lookupField(row, "info")),
		NextSteps:     cellString(lookupField(row, "nextSteps")),
		Source:        crmmodels.NormalizeSource(cellString(lookupField(row, "source"))),
		FirstContact:  cellDate(lookupField(row, "firstContact"), today),
		LastContact:   cellDate(lookupField(row, "lastContact"), today),
		ReminderDate:  nil,
		SjSeen:        cellTruthy(lookupField(row, "sjSeen")),
		Inactive:      false,
		Notes:         []crmmodels.CrmNote{},
	}
	return doc, true
}

// lookupField tìm giá trị của 1 field trong dòng theo các biến thể header.
func lookupField(row crmdto.ImportRow, field string) interface{} {
	if v, ok := row[field]; ok {
		return v
	}
	// Viết hoa chữ đầu (CompanyName)
	capitalized := strings.ToUpper(field[:1]) + field[1:]
	if v, ok := row[capitalized]; ok {
		return v
	}
	// Quét không phân biệt hoa thường
	for k, v := range row {
		if strings.EqualFold(k, field) {
			return v
		}
	}
	return nil
}

// cellString chuyển giá trị cell về chuỗi đã trim.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return utility.FormatDate(utility.UnixMilli(t))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// cellDate chuyển giá trị cell ngày về Unix ms 00:00 UTC.
// Cell kiểu time.Time lấy thẳng phần ngày; chuỗi parse theo các layout hỗ trợ;
// không parse được hoặc trống thì dùng fallback.
func cellDate(v interface{}, fallback int64) int64 {
	switch t := v.(type) {
	case time.Time:
		return utility.DayStart(utility.UnixMilli(t))
	case string:
		if ts, err := utility.ParseDate(t); err == nil {
			return ts
		}
	}
	return fallback
}

// cellTruthy đọc cờ sjSeen: "ja" hoặc "yes" (không phân biệt hoa thường).
func cellTruthy(v interface{}) bool {
	s := strings.ToLower(cellString(v))
	return s == "ja" || s == "yes"
}

// isBlankRow kiểm tra dòng chỉ gồm cell trống.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
