// Package handler implements the storefront JSON API on a plain
// http.ServeMux. Error responses use the {code, message} shape;
// validation failures add a fields map.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/mlde/checkout-api/internal/chat"
	"github.com/mlde/checkout-api/internal/domain/catalog"
	"github.com/mlde/checkout-api/internal/domain/order"
)

// Handler holds the API dependencies.
type Handler struct {
	catalog  catalog.Repository
	orders   order.Archive
	composer *order.Composer
	chat     *chat.Client
}

// New constructs a Handler. The chat client may be nil, which disables
// the /api/chat route.
func New(
	catalogRepo catalog.Repository,
	orders order.Archive,
	composer *order.Composer,
	chatClient *chat.Client,
) *Handler {
	return &Handler{
		catalog:  catalogRepo,
		orders:   orders,
		composer: composer,
		chat:     chatClient,
	}
}

// RegisterRoutes mounts all API routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/crypto-assets", h.ListCryptoAssets)
	mux.HandleFunc("GET /api/checkout/quote", h.Quote)
	mux.HandleFunc("POST /api/checkout", h.Checkout)
	if h.chat != nil {
		mux.HandleFunc("POST /api/chat", h.Chat)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zctx.From(r.Context()).Error("encode response", zap.Error(err))
	}
}

type errorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, errorResponse{Code: status, Message: message})
}

func (h *Handler) writeFieldErrors(w http.ResponseWriter, r *http.Request, res order.ValidationResult) {
	fields := make(map[string]string, len(res))
	for f, msg := range res {
		fields[string(f)] = msg
	}
	h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: "dados inválidos",
		Fields:  fields,
	})
}
