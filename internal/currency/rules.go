package currency

// Option is one selectable value for a select-type field.
type Option struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// Field describes one input the local payment rail requires for a currency.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"` // "text" or "select"
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// FieldConfig groups the identity/payment fields a currency demands.
// Select fields resolve their options by field name: beneficiaryType reads
// BeneficiaryTypes, paymentType reads PaymentTypes.
type FieldConfig struct {
	BeneficiaryTypes []Option `json:"beneficiary_types"`
	PaymentTypes     []Option `json:"payment_types"`
	Fields           []Field  `json:"fields"`
}

// fieldsByCurrency is the static rules table. MXN intentionally has no extra
// fields: the provider emails payment instructions instead. paymentType is
// never required at input time; submission defaults it to CASH.
var fieldsByCurrency = map[string]FieldConfig{
	"CLP": {
		BeneficiaryTypes: []Option{
			{Value: "cc", Name: "Cédula de Ciudadanía"},
		},
		PaymentTypes: []Option{
			{Value: "NET_BANKING", Name: "Banca en línea"},
		},
		Fields: []Field{
			{Name: "beneficiaryId", Label: "RUT", Type: "text", Required: true, Placeholder: "12.345.678-9"},
			{Name: "beneficiaryType", Label: "Tipo de Beneficiario", Type: "select", Required: true},
			{Name: "paymentType", Label: "Tipo de Pago", Type: "select", Required: false},
		},
	},
	"COP": {
		BeneficiaryTypes: []Option{
			{Value: "CC", Name: "Cédula de Ciudadanía"},
		},
		PaymentTypes: []Option{
			{Value: "CASH", Name: "Efectivo"},
		},
		Fields: []Field{
			{Name: "beneficiaryId", Label: "Cédula de Ciudadanía", Type: "text", Required: true, Placeholder: "Número de cédula"},
			{Name: "beneficiaryType", Label: "Tipo de Beneficiario", Type: "select", Required: true},
			{Name: "paymentType", Label: "Tipo de Pago", Type: "select", Required: false},
		},
	},
	"ECS": {
		BeneficiaryTypes: []Option{
			{Value: "ruc", Name: "Registro Único de Contribuyentes"},
			{Value: "ci", Name: "Cédula de identidad"},
			{Value: "cc", Name: "Cédula de Ciudadanía"},
			{Value: "pas", Name: "Pasaporte"},
		},
		PaymentTypes: []Option{
			{Value: "NET_BANKING", Name: "Banca en línea"},
		},
		Fields: []Field{
			{Name: "beneficiaryId", Label: "Documento de Identidad", Type: "text", Required: true, Placeholder: "RUC, CI, DNI o Pasaporte"},
			{Name: "beneficiaryType", Label: "Tipo de Documento", Type: "select", Required: true},
			{Name: "paymentType", Label: "Tipo de Pago", Type: "select", Required: false},
		},
	},
	"PEN": {
		BeneficiaryTypes: []Option{
			{Value: "DNI", Name: "Documento Nacional de Identidad"},
		},
		PaymentTypes: []Option{
			{Value: "CASH", Name: "Efectivo"},
		},
		Fields: []Field{
			{Name: "beneficiaryId", Label: "DNI", Type: "text", Required: true, Placeholder: "12345678"},
			{Name: "beneficiaryType", Label: "Tipo de Beneficiario", Type: "select", Required: true},
			{Name: "paymentType", Label: "Tipo de Pago", Type: "select", Required: false},
		},
	},
	"BRL": {
		BeneficiaryTypes: []Option{},
		PaymentTypes:     []Option{},
		Fields: []Field{
			{Name: "docNumber", Label: "Número de Documento", Type: "text", Required: true, Placeholder: "CPF o CNPJ"},
		},
	},
	"MXN": {
		BeneficiaryTypes: []Option{},
		PaymentTypes:     []Option{},
		Fields:           []Field{},
	},
}

// GetConfig returns the field configuration for a currency code. Unknown
// codes get an empty config, never an error.
func GetConfig(code string) FieldConfig {
	if cfg, ok := fieldsByCurrency[code]; ok {
		return cfg
	}
	return FieldConfig{
		BeneficiaryTypes: []Option{},
		PaymentTypes:     []Option{},
		Fields:           []Field{},
	}
}

// SupportedCurrencies lists the codes the local payment rail accepts, in the
// order the platform presents them.
func SupportedCurrencies() []string {
	return []string{"COP", "BRL", "CLP", "PEN", "MXN", "ECS"}
}

// RequiresBeneficiary reports whether the currency demands the beneficiary
// trio (document, type, payment type) on the local rail.
func RequiresBeneficiary(code string) bool {
	switch code {
	case "COP", "CLP", "PEN", "ECS":
		return true
	}
	return false
}
