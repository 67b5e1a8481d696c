// Package pix builds PIX gateway payment URLs. The gateway is a
// redirect target only; no response is ever consumed.
package pix

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the production gateway.
const DefaultBaseURL = "https://pix.nextrustx.com"

// Builder constructs payment URLs for one gateway deployment. With an
// empty project slug it emits the older path form,
// <base>/pagar/<price>; with a slug set it emits the later query form,
// <base>/pagar?projeto=<slug>&valor=<price>.
type Builder struct {
	base    string
	project string
}

// NewBuilder returns a Builder for the given gateway base URL and
// optional project slug.
func NewBuilder(base, project string) *Builder {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Builder{base: base, project: project}
}

// PaymentURL returns the gateway URL for the given order price. The
// price uses its shortest decimal form, matching what the referring
// page has always sent (1800, not 1800.00).
func (b *Builder) PaymentURL(price decimal.Decimal) string {
	if b.project == "" {
		return b.base + "/pagar/" + price.String()
	}

	q := url.Values{}
	q.Set("projeto", b.project)
	q.Set("valor", price.String())
	return b.base + "/pagar?" + q.Encode()
}
