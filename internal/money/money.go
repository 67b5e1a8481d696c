// Package money formats BRL amounts. Two formats coexist on purpose:
// the summary panel shows locale-grouped currency (R$ 1.500,00) while
// the WhatsApp wire format keeps the plain two-decimal form
// (R$ 1800.00) so existing seller-side expectations keep parsing.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// DisplayBRL renders an amount with pt-BR grouping for on-screen use.
func DisplayBRL(v decimal.Decimal) string {
	return ptBR.Sprintf("R$ %.2f", v.InexactFloat64())
}

// WireBRL renders an amount in the fixed two-decimal wire form used in
// seller messages.
func WireBRL(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}
