package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mlde/checkout-api/internal/domain/order"
	"github.com/mlde/checkout-api/internal/money"
)

// Generic alert shown when composition fails for a reason the user
// cannot fix. Matches the storefront's catch-all alert.
const msgSubmitFailed = "Ocorreu um erro ao processar seu pedido. Tente novamente."

// Channel-requirement alerts, verbatim from the storefront.
const (
	msgSelectCrypto = "Por favor, selecione uma criptomoeda."
	msgAttachProof  = "Por favor, anexe o comprovante de pagamento."
	msgEmptyOrder   = "Pedido incompleto: dosagem e preço são obrigatórios."
)

type checkoutRequest struct {
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	Telefone    string `json:"telefone"`
	Email       string `json:"email"`
	CEP         string `json:"cep"`
	Endereco    string `json:"endereco"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`

	Dosagem string          `json:"dosagem"`
	Preco   decimal.Decimal `json:"preco"`

	FormaPagamento string `json:"formaPagamento"`
	TipoCrypto     string `json:"tipoCrypto,omitempty"`
	Comprovante    string `json:"comprovante,omitempty"`
	Prioridade     bool   `json:"prioridade,omitempty"`
}

type followUpResponse struct {
	URL     string `json:"url"`
	DelayMs int64  `json:"delayMs"`
}

type breakdownResponse struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type displayResponse struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

type checkoutResponse struct {
	ID        string            `json:"id"`
	Redirect  string            `json:"redirect"`
	FollowUp  *followUpResponse `json:"followUp,omitempty"`
	Breakdown breakdownResponse `json:"breakdown"`
	Display   displayResponse   `json:"display"`
}

// Checkout canonicalizes the submitted form, validates it, archives the
// order, and returns the composed handoff for the client to execute.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	f, ok := req.toForm()
	if !ok {
		h.writeError(w, r, http.StatusBadRequest, "forma de pagamento desconhecida")
		return
	}

	hd, err := h.composer.Compose(f)
	if err != nil {
		h.writeComposeError(w, r, err)
		return
	}

	rec := f.Record(uuid.New().String())
	if err := h.orders.Create(r.Context(), rec); err != nil {
		zctx.From(r.Context()).Error("archive order", zap.Error(err))
		h.writeError(w, r, http.StatusInternalServerError, msgSubmitFailed)
		return
	}

	resp := checkoutResponse{
		ID:       rec.ID,
		Redirect: hd.Primary,
		Breakdown: breakdownResponse{
			Subtotal: hd.Breakdown.Subtotal.InexactFloat64(),
			Discount: hd.Breakdown.Discount.InexactFloat64(),
			Total:    hd.Breakdown.Total.InexactFloat64(),
		},
		Display: displayResponse{
			Subtotal: money.DisplayBRL(hd.Breakdown.Subtotal),
			Discount: money.DisplayBRL(hd.Breakdown.Discount),
			Total:    money.DisplayBRL(hd.Breakdown.Total),
		},
	}
	if hd.FollowUp != "" {
		resp.FollowUp = &followUpResponse{
			URL:     hd.FollowUp,
			DelayMs: hd.FollowUpDelay.Milliseconds(),
		}
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) writeComposeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *order.ValidationError
	if errors.As(err, &vErr) {
		h.writeFieldErrors(w, r, vErr.Result)
		return
	}

	switch {
	case errors.Is(err, order.ErrEmptyOrder):
		h.writeError(w, r, http.StatusUnprocessableEntity, msgEmptyOrder)
	case errors.Is(err, order.ErrCryptoAssetRequired):
		h.writeError(w, r, http.StatusUnprocessableEntity, msgSelectCrypto)
	case errors.Is(err, order.ErrProofRequired):
		h.writeError(w, r, http.StatusUnprocessableEntity, msgAttachProof)
	default:
		var uaErr *order.UnknownAssetError
		if errors.As(err, &uaErr) {
			h.writeError(w, r, http.StatusUnprocessableEntity, msgSelectCrypto)
			return
		}
		zctx.From(r.Context()).Error("compose handoff", zap.Error(err))
		h.writeError(w, r, http.StatusInternalServerError, msgSubmitFailed)
	}
}

// toForm builds the canonical form, running every identity and address
// value through Set so the masks apply server-side as well.
func (req checkoutRequest) toForm() (*order.Form, bool) {
	channel, ok := order.ParseChannel(req.FormaPagamento)
	if !ok {
		return nil, false
	}

	f := order.NewForm(order.Seed{Dosage: req.Dosagem, Price: req.Preco})
	f.Channel = channel
	f.Priority = req.Prioridade

	f.Set(order.FieldName, req.Nome)
	f.Set(order.FieldCPF, req.CPF)
	f.Set(order.FieldPhone, req.Telefone)
	f.Set(order.FieldEmail, req.Email)
	f.Set(order.FieldCEP, req.CEP)
	f.Set(order.FieldStreet, req.Endereco)
	f.Set(order.FieldNumber, req.Numero)
	f.Set(order.FieldComplement, req.Complemento)
	f.Set(order.FieldNeighborhood, req.Bairro)
	f.Set(order.FieldCity, req.Cidade)
	f.Set(order.FieldState, req.Estado)

	if req.TipoCrypto != "" {
		f.Crypto = &order.CryptoSelection{Asset: req.TipoCrypto}
	}
	if req.Comprovante != "" {
		f.Proof = &order.ProofOfPayment{FileName: req.Comprovante}
	}
	return f, true
}
