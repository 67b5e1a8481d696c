package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/mlde/checkout-api/internal/domain/catalog"
	"github.com/mlde/checkout-api/internal/money"
)

type productResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Dosage        string  `json:"dosagem"`
	Price         float64 `json:"preco"`
	OriginalPrice float64 `json:"precoOriginal"`
	DiscountPct   int     `json:"desconto"`
	Tag           string  `json:"tag,omitempty"`
	Image         string  `json:"imagem,omitempty"`
	Display       string  `json:"precoFormatado"`
}

// ListProducts returns every dosage tier, cheapest first.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("list products", zap.Error(err))
		h.writeError(w, r, http.StatusInternalServerError, "não foi possível carregar os produtos")
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Dosage:        p.Dosage,
		Price:         p.Price.InexactFloat64(),
		OriginalPrice: p.OriginalPrice.InexactFloat64(),
		DiscountPct:   p.DiscountPct,
		Tag:           p.Tag,
		Image:         p.Image,
		Display:       money.DisplayBRL(p.Price),
	}
}
