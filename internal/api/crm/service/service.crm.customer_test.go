package crmvc

import (
	"context"
	"errors"
	"testing"

	crmdto "github.com/juliantrillken/webcrm/internal/api/crm/dto"
	"github.com/juliantrillken/webcrm/internal/common"
)

func TestValidateCompanyName(t *testing.T) {
	cases := []struct {
		name    string
		wantErr bool
	}{
		{"Acme GmbH", false},
		{"  Acme GmbH  ", false},
		{"", true},
		{"   ", true},
		{"\t\n", true},
	}

	for _, tc := range cases {
		err := ValidateCompanyName(tc.name)
		if tc.wantErr {
			if !errors.Is(err, common.ErrRequiredField) {
				t.Errorf("companyName %q phải báo thiếu field bắt buộc, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("companyName %q hợp lệ nhưng báo lỗi: %v", tc.name, err)
		}
	}
}

func TestCreateCustomer_GuardsRunBeforeStore(t *testing.T) {
	// Cả hai guard đều chặn trước InsertOne, service rỗng không bị chạm tới
	svc := &CrmCustomerService{}

	_, err := svc.CreateCustomer(context.Background(), &crmdto.CrmCustomerCreateInput{CompanyName: "   "})
	if !errors.Is(err, common.ErrRequiredField) {
		t.Errorf("companyName rỗng phải bị chặn với ErrRequiredField, got %v", err)
	}

	_, err = svc.CreateCustomer(context.Background(), &crmdto.CrmCustomerCreateInput{
		CompanyName:  "Acme GmbH",
		FirstContact: "gestern",
	})
	if !errors.Is(err, common.ErrInvalidFormat) {
		t.Errorf("firstContact không parse được phải bị chặn với ErrInvalidFormat, got %v", err)
	}
}
