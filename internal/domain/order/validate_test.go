package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seededForm() *Form {
	return NewForm(Seed{Dosage: "15 mg", Price: decimal.NewFromInt(1800)})
}

func TestValidateBlankFieldsPass(t *testing.T) {
	f := seededForm()

	res := f.Validate()
	require.True(t, res.Valid())
	require.Empty(t, res)
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr string
	}{
		{"valid email", FieldEmail, "maria@example.com", ""},
		{"email without domain dot", FieldEmail, "maria@example", msgInvalidEmail},
		{"email with spaces", FieldEmail, "ma ria@example.com", msgInvalidEmail},
		{"valid cpf digits", FieldCPF, "12345678901", ""},
		{"short cpf", FieldCPF, "1234567", msgInvalidCPF},
		{"valid phone digits", FieldPhone, "16988142848", ""},
		{"landline length phone", FieldPhone, "1633334444", msgInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := seededForm()
			f.Set(tt.field, tt.value)

			res := f.Validate()
			if tt.wantErr == "" {
				require.True(t, res.Valid())
				return
			}
			require.False(t, res.Valid())
			require.Equal(t, tt.wantErr, res[tt.field])
		})
	}
}

func TestValidateMultipleFailures(t *testing.T) {
	f := seededForm()
	f.Set(FieldEmail, "nope")
	f.Set(FieldCPF, "123")
	f.Set(FieldPhone, "99")

	res := f.Validate()
	require.Len(t, res, 3)
}

func TestSetClearsPendingError(t *testing.T) {
	f := seededForm()
	f.Set(FieldEmail, "nope")
	require.False(t, f.Validate().Valid())

	f.Set(FieldEmail, "maria@example.com")
	require.True(t, f.Validate().Valid())
}

func TestSetCanonicalizesMaskedFields(t *testing.T) {
	f := seededForm()
	f.Set(FieldCPF, "12345678901")
	f.Set(FieldPhone, "16988142848")
	f.Set(FieldCEP, "14400000")

	require.Equal(t, "123.456.789-01", f.CPF)
	require.Equal(t, "(16) 98814-2848", f.Phone)
	require.Equal(t, "14400-000", f.CEP)
}
