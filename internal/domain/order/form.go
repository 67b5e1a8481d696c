// Package order owns the checkout form: field canonicalization,
// validation, price breakdown, and composition of the outbound payment
// handoff. It is the single canonical form for every checkout page
// variant; channel-specific data lives in optional sub-records.
package order

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// DefaultProduct is the catalog product this storefront sells.
const DefaultProduct = "Mounjaro"

// Channel enumerates the supported payment channels.
type Channel string

const (
	// ChannelPix redirects to the PIX gateway and follows up on WhatsApp.
	ChannelPix Channel = "pix"
	// ChannelWhatsApp hands the order straight to the seller on WhatsApp.
	ChannelWhatsApp Channel = "whatsapp"
	// ChannelCrypto opens the crypto onboarding page and follows up with
	// the wallet address and the 20%-discounted price.
	ChannelCrypto Channel = "crypto"
	// ChannelProof references an already-made payment by its receipt file
	// name. Only the name travels; the bytes never leave the client.
	ChannelProof Channel = "comprovante"
)

// ParseChannel maps the wire value of formaPagamento to a Channel.
func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case ChannelPix, ChannelWhatsApp, ChannelCrypto, ChannelProof:
		return Channel(s), true
	}
	return "", false
}

// Label returns the payment-channel label used in order summaries.
// Crypto orders label themselves with the selected asset name instead.
func (c Channel) Label() string {
	switch c {
	case ChannelPix:
		return "PIX"
	case ChannelWhatsApp:
		return "WhatsApp"
	case ChannelProof:
		return "Comprovante de Pagamento"
	default:
		return string(c)
	}
}

// Seed carries the order parameters handed over by the referring page.
// It is read once at form creation; the price is immutable afterwards.
type Seed struct {
	Dosage string
	Price  decimal.Decimal
}

// SeedFromQuery parses the dosagem and preco query parameters. A missing
// dosage, an unparsable price, or a non-positive price all yield the
// empty seed, which blocks quoting and submission.
func SeedFromQuery(q url.Values) Seed {
	dosage := q.Get("dosagem")
	price, err := decimal.NewFromString(q.Get("preco"))
	if err != nil || dosage == "" || !price.IsPositive() {
		return Seed{}
	}
	return Seed{Dosage: dosage, Price: price}
}

// Empty reports whether the seed lacks a dosage or a positive price.
func (s Seed) Empty() bool {
	return s.Dosage == "" || !s.Price.IsPositive()
}

// Field identifies a user-editable form field. Values match the wire
// names used by the checkout page.
type Field string

const (
	FieldName         Field = "nome"
	FieldCPF          Field = "cpf"
	FieldPhone        Field = "telefone"
	FieldEmail        Field = "email"
	FieldCEP          Field = "cep"
	FieldStreet       Field = "endereco"
	FieldNumber       Field = "numero"
	FieldComplement   Field = "complemento"
	FieldNeighborhood Field = "bairro"
	FieldCity         Field = "cidade"
	FieldState        Field = "estado"
)

// CryptoSelection is the crypto sub-record: the display name of the
// chosen asset, resolved against the static asset table at composition.
type CryptoSelection struct {
	Asset string
}

// ProofOfPayment is the proof sub-record. FileName is referenced in the
// seller message; the file contents are never read or transmitted.
type ProofOfPayment struct {
	FileName string
}

// Form is the mutable checkout form for one page session. All identity
// and address fields are optional by policy: the business accepts
// incomplete leads. Created empty apart from the seed, mutated field by
// field, validated on submit, then discarded.
type Form struct {
	Name  string
	CPF   string
	Phone string
	Email string

	CEP          string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string

	Product string
	Dosage  string
	Price   decimal.Decimal

	Channel  Channel
	Crypto   *CryptoSelection
	Proof    *ProofOfPayment
	Priority bool

	errors map[Field]string
}

// NewForm creates a form seeded from navigation parameters. PIX is the
// pre-selected channel on every page variant.
func NewForm(seed Seed) *Form {
	return &Form{
		Product: DefaultProduct,
		Dosage:  seed.Dosage,
		Price:   seed.Price,
		Channel: ChannelPix,
		errors:  make(map[Field]string),
	}
}

// Empty reports whether the form never received a usable seed.
func (f *Form) Empty() bool {
	return f.Dosage == "" || !f.Price.IsPositive()
}

// Set stores a raw field value, canonicalizing CPF, phone, and CEP
// through their input masks. Editing a field clears its pending
// validation error.
func (f *Form) Set(field Field, raw string) {
	delete(f.errors, field)

	switch field {
	case FieldName:
		f.Name = raw
	case FieldCPF:
		f.CPF = FormatCPF(raw)
	case FieldPhone:
		f.Phone = FormatPhone(raw)
	case FieldEmail:
		f.Email = raw
	case FieldCEP:
		f.CEP = FormatCEP(raw)
	case FieldStreet:
		f.Street = raw
	case FieldNumber:
		f.Number = raw
	case FieldComplement:
		f.Complement = raw
	case FieldNeighborhood:
		f.Neighborhood = raw
	case FieldCity:
		f.City = raw
	case FieldState:
		f.State = raw
	}
}
