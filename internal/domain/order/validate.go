package order

import "regexp"

// Format contracts for the optional identity fields. A field is checked
// only when non-empty; blank optional fields are always valid.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
)

// Validation messages shown inline next to the offending field.
const (
	msgInvalidEmail = "Email inválido"
	msgInvalidCPF   = "CPF inválido (use formato: 000.000.000-00)"
	msgInvalidPhone = "Telefone inválido (use formato: (00) 00000-0000)"
)

// ValidationResult maps each non-empty, non-conforming field to the
// reason it failed. Fields absent from the map are valid.
type ValidationResult map[Field]string

// Valid reports whether no field failed validation.
func (r ValidationResult) Valid() bool { return len(r) == 0 }

// Validate checks the format-constrained fields and returns the failure
// mapping. The result also becomes the form's pending error set, which
// Set clears per field on the next edit.
func (f *Form) Validate() ValidationResult {
	res := make(ValidationResult)

	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		res[FieldEmail] = msgInvalidEmail
	}
	if f.CPF != "" && !cpfPattern.MatchString(f.CPF) {
		res[FieldCPF] = msgInvalidCPF
	}
	if f.Phone != "" && !phonePattern.MatchString(f.Phone) {
		res[FieldPhone] = msgInvalidPhone
	}

	f.errors = res
	return res
}
