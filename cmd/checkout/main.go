// Command checkout composes and dispatches a single order from the
// terminal: it opens the payment surface in the default browser and,
// for PIX and crypto orders, the WhatsApp follow-up after the delay.
// Interrupting during the delay suppresses the follow-up.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/shopspring/decimal"
	"github.com/skratchdot/open-golang/open"

	"github.com/mlde/checkout-api/internal/domain/order"
	"github.com/mlde/checkout-api/internal/handoff"
	"github.com/mlde/checkout-api/internal/money"
	"github.com/mlde/checkout-api/internal/pix"
	"github.com/mlde/checkout-api/internal/whatsapp"
)

func main() {
	var (
		dosage   = flag.String("dosagem", "", "dosage tier, e.g. \"15 mg\"")
		price    = flag.String("preco", "", "order price in BRL, e.g. 1800")
		channel  = flag.String("forma", "pix", "payment channel: pix, whatsapp, crypto, comprovante")
		asset    = flag.String("crypto", "", "crypto asset display name (crypto channel)")
		proof    = flag.String("comprovante", "", "receipt file name (comprovante channel)")
		priority = flag.Bool("prioridade", false, "flag the order for priority handling")

		name  = flag.String("nome", "", "customer name")
		cpf   = flag.String("cpf", "", "customer CPF, digits or masked")
		phone = flag.String("telefone", "", "customer phone, digits or masked")
		email = flag.String("email", "", "customer email")

		cep          = flag.String("cep", "", "delivery CEP")
		street       = flag.String("endereco", "", "delivery street")
		number       = flag.String("numero", "", "delivery number")
		complement   = flag.String("complemento", "", "delivery complement")
		neighborhood = flag.String("bairro", "", "delivery neighborhood")
		city         = flag.String("cidade", "", "delivery city")
		state        = flag.String("estado", "", "delivery state")

		seller        = flag.String("whatsapp-number", "5516988142848", "seller WhatsApp number")
		pixBase       = flag.String("pix-base-url", pix.DefaultBaseURL, "PIX gateway base URL")
		pixProject    = flag.String("pix-project", "", "PIX gateway project slug")
		cryptoHelpURL = flag.String("crypto-help-url", "https://mercadolivredoemagrecimento.com/crypto-ajuda", "crypto onboarding page")
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ch, ok := order.ParseChannel(*channel)
	if !ok {
		slog.Error("unknown payment channel", slog.String("forma", *channel))
		os.Exit(1)
	}

	priceDec, err := decimal.NewFromString(*price)
	if err != nil {
		slog.Error("invalid price", slog.String("preco", *price))
		os.Exit(1)
	}

	f := order.NewForm(order.Seed{Dosage: *dosage, Price: priceDec})
	f.Channel = ch
	f.Priority = *priority
	f.Set(order.FieldName, *name)
	f.Set(order.FieldCPF, *cpf)
	f.Set(order.FieldPhone, *phone)
	f.Set(order.FieldEmail, *email)
	f.Set(order.FieldCEP, *cep)
	f.Set(order.FieldStreet, *street)
	f.Set(order.FieldNumber, *number)
	f.Set(order.FieldComplement, *complement)
	f.Set(order.FieldNeighborhood, *neighborhood)
	f.Set(order.FieldCity, *city)
	f.Set(order.FieldState, *state)
	if *asset != "" {
		f.Crypto = &order.CryptoSelection{Asset: *asset}
	}
	if *proof != "" {
		f.Proof = &order.ProofOfPayment{FileName: *proof}
	}

	composer := order.NewComposer(
		pix.NewBuilder(*pixBase, *pixProject),
		whatsapp.NewBuilder(*seller),
		*cryptoHelpURL,
	)

	h, err := composer.Compose(f)
	if err != nil {
		slog.Error("compose order", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Subtotal: %s\n", money.DisplayBRL(h.Breakdown.Subtotal))
	if h.Breakdown.Discount.IsPositive() {
		fmt.Printf("Desconto: %s\n", money.DisplayBRL(h.Breakdown.Discount))
	}
	fmt.Printf("Total:    %s\n", money.DisplayBRL(h.Breakdown.Total))

	dispatcher := handoff.NewDispatcher(handoff.OpenerFunc(func(_ context.Context, url string) error {
		slog.Info("opening", slog.String("url", url))
		return open.Run(url)
	}))

	if err := dispatcher.Dispatch(ctx, h); err != nil {
		if ctx.Err() != nil {
			slog.Info("follow-up cancelled")
			return
		}
		slog.Error("dispatch order", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
