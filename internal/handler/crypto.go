package handler

import (
	"net/http"

	"github.com/mlde/checkout-api/internal/domain/crypto"
)

type cryptoAssetResponse struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Address       string `json:"address"`
	Network       string `json:"network"`
	Confirmations int    `json:"confirmations"`
	EstimatedTime string `json:"estimatedTime"`
}

// ListCryptoAssets returns the static payment asset table.
func (h *Handler) ListCryptoAssets(w http.ResponseWriter, r *http.Request) {
	assets := crypto.All()
	resp := make([]cryptoAssetResponse, 0, len(assets))
	for _, a := range assets {
		resp = append(resp, cryptoAssetResponse{
			Name:          a.Name,
			Symbol:        a.Symbol,
			Address:       a.Address,
			Network:       a.Network,
			Confirmations: a.Confirmations,
			EstimatedTime: a.EstimatedTime,
		})
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}
