package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigKnownCurrencies(t *testing.T) {
	tests := []struct {
		code             string
		wantFields       []string
		beneficiaryTypes int
	}{
		{"COP", []string{"beneficiaryId", "beneficiaryType", "paymentType"}, 1},
		{"CLP", []string{"beneficiaryId", "beneficiaryType", "paymentType"}, 1},
		{"PEN", []string{"beneficiaryId", "beneficiaryType", "paymentType"}, 1},
		{"ECS", []string{"beneficiaryId", "beneficiaryType", "paymentType"}, 4},
		{"BRL", []string{"docNumber"}, 0},
		{"MXN", []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			cfg := GetConfig(tt.code)
			require.Len(t, cfg.Fields, len(tt.wantFields))
			for i, name := range tt.wantFields {
				assert.Equal(t, name, cfg.Fields[i].Name)
				// paymentType is optional; submission defaults it to CASH.
				assert.Equal(t, name != "paymentType", cfg.Fields[i].Required)
			}
			assert.Len(t, cfg.BeneficiaryTypes, tt.beneficiaryTypes)
		})
	}
}

func TestGetConfigUnknownCurrencyIsEmpty(t *testing.T) {
	cfg := GetConfig("XYZ")
	assert.Empty(t, cfg.Fields)
	assert.Empty(t, cfg.BeneficiaryTypes)
	assert.Empty(t, cfg.PaymentTypes)
}

func TestRequiresBeneficiary(t *testing.T) {
	for _, code := range []string{"COP", "CLP", "PEN", "ECS"} {
		assert.True(t, RequiresBeneficiary(code), code)
	}
	assert.False(t, RequiresBeneficiary("BRL"))
	assert.False(t, RequiresBeneficiary("MXN"))
	assert.False(t, RequiresBeneficiary("XYZ"))
}

func TestSupportedCurrenciesHaveConfigs(t *testing.T) {
	for _, code := range SupportedCurrencies() {
		_, ok := fieldsByCurrency[code]
		assert.True(t, ok, "missing config for %s", code)
	}
}
