package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the identity slice of an archived order.
type Customer struct {
	Name  string `json:"nome,omitempty"`
	CPF   string `json:"cpf,omitempty"`
	Phone string `json:"telefone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Address is the delivery slice of an archived order.
type Address struct {
	CEP          string `json:"cep,omitempty"`
	Street       string `json:"endereco,omitempty"`
	Number       string `json:"numero,omitempty"`
	Complement   string `json:"complemento,omitempty"`
	Neighborhood string `json:"bairro,omitempty"`
	City         string `json:"cidade,omitempty"`
	State        string `json:"estado,omitempty"`
}

// Record is a submitted checkout archived for the seller. The form
// itself stays ephemeral; the archive is lead capture, not state the
// checkout flow ever reads back.
type Record struct {
	ID          string
	Product     string
	Dosage      string
	Channel     Channel
	CryptoAsset string
	ProofFile   string
	Priority    bool
	Customer    Customer
	Address     Address
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// Archive persists submitted checkouts.
type Archive interface {
	Create(ctx context.Context, rec *Record) error
}

// Record snapshots the form into an archive record with the given ID.
// CreatedAt is left for the storage layer to assign.
func (f *Form) Record(id string) *Record {
	bd := f.Breakdown()

	rec := &Record{
		ID:       id,
		Product:  f.Product,
		Dosage:   f.Dosage,
		Channel:  f.Channel,
		Priority: f.Priority,
		Customer: Customer{
			Name:  f.Name,
			CPF:   f.CPF,
			Phone: f.Phone,
			Email: f.Email,
		},
		Address: Address{
			CEP:          f.CEP,
			Street:       f.Street,
			Number:       f.Number,
			Complement:   f.Complement,
			Neighborhood: f.Neighborhood,
			City:         f.City,
			State:        f.State,
		},
		Subtotal: bd.Subtotal,
		Discount: bd.Discount,
		Total:    bd.Total,
	}
	if f.Crypto != nil {
		rec.CryptoAsset = f.Crypto.Asset
	}
	if f.Proof != nil {
		rec.ProofFile = f.Proof.FileName
	}
	return rec
}
