// Package whatsapp composes seller order messages and wa.me deep links.
//
// The templates are load-bearing: titles, emoji prefixes, field order,
// and the literal %0A line separators must stay byte-for-byte stable,
// because the seller side parses the messages by shape. Blank optional
// fields render as "Não informado" ("N/A" for the address complement).
package whatsapp

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mlde/checkout-api/internal/domain/crypto"
	"github.com/mlde/checkout-api/internal/money"
)

// br is the WhatsApp line separator, kept literal in the message text.
// The seller side expects links built exactly this way.
const br = "%0A"

const (
	blank      = "Não informado"
	blankShort = "N/A"
)

// Order carries the message-relevant slice of a checkout form.
type Order struct {
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

	Product  string
	Dosage   string
	Amount   decimal.Decimal
	Priority bool
}

// Builder renders messages for one seller number.
type Builder struct {
	seller string
}

// NewBuilder returns a Builder targeting the given wa.me number
// (country code + number, digits only).
func NewBuilder(seller string) *Builder {
	return &Builder{seller: seller}
}

// Link wraps an already-encoded message in a wa.me deep link.
func (b *Builder) Link(message string) string {
	return "https://wa.me/" + b.seller + "?text=" + message
}

// NewOrder renders the WhatsApp-channel order summary.
func (b *Builder) NewOrder(o Order) string {
	var m strings.Builder
	m.WriteString("*NOVO PEDIDO - " + strings.ToUpper(o.Product) + "*" + br + br)
	writeClient(&m, o, true)
	writeAddress(&m, o)
	writeOrder(&m, o)
	m.WriteString(br)
	m.WriteString("*Forma de Pagamento:* WhatsApp" + br + br)
	writePriority(&m, o)
	m.WriteString("Por favor, confirmar o pedido e informar os próximos passos.")
	return m.String()
}

// PixOrder renders the follow-up sent after the PIX gateway opens.
func (b *Builder) PixOrder(o Order) string {
	var m strings.Builder
	m.WriteString("*PEDIDO VIA PIX - " + strings.ToUpper(o.Product) + "*" + br + br)
	writeClient(&m, o, true)
	writeAddress(&m, o)
	writeOrder(&m, o)
	m.WriteString(br)
	m.WriteString("*Forma de Pagamento:* PIX" + br + br)
	writePriority(&m, o)
	m.WriteString("✅ PIX gerado com sucesso! Por favor, realize o pagamento e aguarde a confirmação.")
	return m.String()
}

// CryptoPayment renders the follow-up for a crypto order: no CPF or
// address block, the discounted price, the asset as payment label, and
// the receiving wallet.
func (b *Builder) CryptoPayment(o Order, asset crypto.Asset, discounted decimal.Decimal) string {
	var m strings.Builder
	m.WriteString("*PAGAMENTO CRYPTO - " + strings.ToUpper(o.Product) + "*" + br + br)
	writeClient(&m, o, false)
	writeOrder(&m, o)
	m.WriteString("💰 Valor com 20% OFF: " + money.WireBRL(discounted) + br)
	m.WriteString(br)
	m.WriteString("*Forma de Pagamento:* " + asset.Name + br + br)
	m.WriteString("📍 Wallet: " + asset.Address + br + br)
	m.WriteString("Pagamento realizado. Aguardando confirmação na blockchain.")
	return m.String()
}

// ProofOfPayment renders the summary for an order settled off-platform,
// referencing the attached receipt by name only.
func (b *Builder) ProofOfPayment(o Order, fileName string) string {
	var m strings.Builder
	m.WriteString("*COMPROVANTE DE PAGAMENTO - " + strings.ToUpper(o.Product) + "*" + br + br)
	writeClient(&m, o, true)
	writeAddress(&m, o)
	writeOrder(&m, o)
	m.WriteString(br)
	m.WriteString("*Forma de Pagamento:* Comprovante de Pagamento" + br + br)
	m.WriteString("📎 Comprovante: " + fileName + br + br)
	m.WriteString("Comprovante anexado. Aguardando verificação do pagamento.")
	return m.String()
}

func writeClient(m *strings.Builder, o Order, withCPF bool) {
	m.WriteString("*Dados do Cliente:*" + br)
	m.WriteString("👤 Nome: " + orBlank(o.Name) + br)
	if withCPF {
		m.WriteString("📋 CPF: " + orBlank(o.CPF) + br)
	}
	m.WriteString("📱 Telefone: " + orBlank(o.Phone) + br)
	m.WriteString("📧 Email: " + orBlank(o.Email) + br + br)
}

func writeAddress(m *strings.Builder, o Order) {
	m.WriteString("*Endereço de Entrega:*" + br)
	m.WriteString("📍 CEP: " + orBlank(o.CEP) + br)
	m.WriteString("🏠 Endereço: " + orBlank(o.Street) + ", " + orBlank(o.Number) + br)
	m.WriteString("📝 Complemento: " + orShort(o.Complement) + br)
	m.WriteString("🏘️ Bairro: " + orBlank(o.Neighborhood) + br)
	m.WriteString("🏙️ Cidade: " + orBlank(o.City) + br)
	m.WriteString("🗺️ Estado: " + orBlank(o.State) + br + br)
}

func writeOrder(m *strings.Builder, o Order) {
	m.WriteString("*Dados do Pedido:*" + br)
	m.WriteString("💊 Produto: " + o.Product + br)
	m.WriteString("📏 Dosagem: " + o.Dosage + br)
	m.WriteString("💰 Valor: " + money.WireBRL(o.Amount) + br)
}

func writePriority(m *strings.Builder, o Order) {
	if o.Priority {
		m.WriteString("⭐ Atendimento Prioritário: Sim" + br + br)
	}
}

func orBlank(s string) string {
	if s == "" {
		return blank
	}
	return s
}

func orShort(s string) string {
	if s == "" {
		return blankShort
	}
	return s
}
