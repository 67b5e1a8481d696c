package handler

import (
	"net/http"

	"github.com/mlde/checkout-api/internal/domain/order"
	"github.com/mlde/checkout-api/internal/money"
)

type quoteResponse struct {
	Product   string            `json:"product"`
	Dosage    string            `json:"dosagem"`
	Channel   string            `json:"formaPagamento"`
	Breakdown breakdownResponse `json:"breakdown"`
	Display   displayResponse   `json:"display"`
}

// Quote prices an order from navigation parameters without creating
// anything. The forma parameter selects the channel; it defaults to PIX
// like the checkout page does.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seed := order.SeedFromQuery(q)
	if seed.Empty() {
		h.writeError(w, r, http.StatusUnprocessableEntity, msgEmptyOrder)
		return
	}

	channel := order.ChannelPix
	if forma := q.Get("forma"); forma != "" {
		c, ok := order.ParseChannel(forma)
		if !ok {
			h.writeError(w, r, http.StatusBadRequest, "forma de pagamento desconhecida")
			return
		}
		channel = c
	}

	bd := order.Breakdown(seed.Price, channel)
	h.writeJSON(w, r, http.StatusOK, quoteResponse{
		Product: order.DefaultProduct,
		Dosage:  seed.Dosage,
		Channel: string(channel),
		Breakdown: breakdownResponse{
			Subtotal: bd.Subtotal.InexactFloat64(),
			Discount: bd.Discount.InexactFloat64(),
			Total:    bd.Total.InexactFloat64(),
		},
		Display: displayResponse{
			Subtotal: money.DisplayBRL(bd.Subtotal),
			Discount: money.DisplayBRL(bd.Discount),
			Total:    money.DisplayBRL(bd.Total),
		},
	})
}
