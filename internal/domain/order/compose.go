package order

import (
	"time"

	"github.com/go-faster/errors"

	"github.com/mlde/checkout-api/internal/domain/crypto"
	"github.com/mlde/checkout-api/internal/pix"
	"github.com/mlde/checkout-api/internal/whatsapp"
)

// FollowUpDelay is the pause between opening the primary payment
// surface and composing the WhatsApp follow-up.
const FollowUpDelay = 2 * time.Second

// Sentinel errors for channel-specific submission requirements.
var (
	ErrEmptyOrder          = errors.New("order has no dosage or positive price")
	ErrCryptoAssetRequired = errors.New("crypto asset not selected")
	ErrProofRequired       = errors.New("proof of payment not attached")
)

// UnknownAssetError indicates a crypto selection that is not in the
// static asset table.
type UnknownAssetError struct {
	Asset string
}

func (e *UnknownAssetError) Error() string {
	return "unknown crypto asset " + e.Asset
}

// ValidationError carries the per-field failure mapping out of Compose.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return "form validation failed"
}

// Handoff is the composed outcome of a successful submission: one
// primary browsing context to open now, and at most one WhatsApp
// follow-up to open after FollowUpDelay.
type Handoff struct {
	Primary       string
	FollowUp      string
	FollowUpDelay time.Duration
	Breakdown     PriceBreakdown
}

// Composer translates a validated form into exactly one external
// handoff. It performs no I/O; dispatching is the caller's concern.
type Composer struct {
	pix           *pix.Builder
	wa            *whatsapp.Builder
	cryptoHelpURL string
}

// NewComposer wires the URL builders and the crypto onboarding page
// opened ahead of crypto follow-ups.
func NewComposer(pixBuilder *pix.Builder, wa *whatsapp.Builder, cryptoHelpURL string) *Composer {
	return &Composer{
		pix:           pixBuilder,
		wa:            wa,
		cryptoHelpURL: cryptoHelpURL,
	}
}

// Compose validates the form and produces its handoff. Channel
// requirements are enforced here: crypto needs a selected asset, proof
// needs an attached file name. Compose never mutates the price.
func (c *Composer) Compose(f *Form) (*Handoff, error) {
	if f.Empty() {
		return nil, ErrEmptyOrder
	}
	if res := f.Validate(); !res.Valid() {
		return nil, &ValidationError{Result: res}
	}

	bd := f.Breakdown()

	switch f.Channel {
	case ChannelPix:
		return &Handoff{
			Primary:       c.pix.PaymentURL(f.Price),
			FollowUp:      c.wa.Link(c.wa.PixOrder(f.message())),
			FollowUpDelay: FollowUpDelay,
			Breakdown:     bd,
		}, nil

	case ChannelWhatsApp:
		return &Handoff{
			Primary:   c.wa.Link(c.wa.NewOrder(f.message())),
			Breakdown: bd,
		}, nil

	case ChannelCrypto:
		if f.Crypto == nil || f.Crypto.Asset == "" {
			return nil, ErrCryptoAssetRequired
		}
		asset, ok := crypto.ByName(f.Crypto.Asset)
		if !ok {
			return nil, &UnknownAssetError{Asset: f.Crypto.Asset}
		}
		return &Handoff{
			Primary:       c.cryptoHelpURL,
			FollowUp:      c.wa.Link(c.wa.CryptoPayment(f.message(), asset, bd.Total)),
			FollowUpDelay: FollowUpDelay,
			Breakdown:     bd,
		}, nil

	case ChannelProof:
		if f.Proof == nil || f.Proof.FileName == "" {
			return nil, ErrProofRequired
		}
		return &Handoff{
			Primary:   c.wa.Link(c.wa.ProofOfPayment(f.message(), f.Proof.FileName)),
			Breakdown: bd,
		}, nil
	}

	return nil, errors.Errorf("unsupported payment channel %q", f.Channel)
}

// message maps the form onto the WhatsApp template input.
func (f *Form) message() whatsapp.Order {
	return whatsapp.Order{
		Name:         f.Name,
		CPF:          f.CPF,
		Phone:        f.Phone,
		Email:        f.Email,
		CEP:          f.CEP,
		Street:       f.Street,
		Number:       f.Number,
		Complement:   f.Complement,
		Neighborhood: f.Neighborhood,
		City:         f.City,
		State:        f.State,
		Product:      f.Product,
		Dosage:       f.Dosage,
		Amount:       f.Price,
		Priority:     f.Priority,
	}
}
