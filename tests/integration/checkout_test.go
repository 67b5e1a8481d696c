//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"strings"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestQuote_DefaultChannel(t *testing.T) {
	resp := doGet(t, "/api/checkout/quote?dosagem=10+mg&preco=1500")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	quote := decodeJSON[quoteResponse](t, resp)
	if quote.Channel != "pix" {
		t.Errorf("channel: got %q, want pix", quote.Channel)
	}
	if quote.Breakdown.Total != 1500 {
		t.Errorf("total: got %v, want 1500", quote.Breakdown.Total)
	}
	if quote.Display.Total != "R$ 1.500,00" {
		t.Errorf("display total: got %q, want %q", quote.Display.Total, "R$ 1.500,00")
	}
}

func TestQuote_CryptoDiscount(t *testing.T) {
	resp := doGet(t, "/api/checkout/quote?dosagem=15+mg&preco=1800&forma=crypto")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	quote := decodeJSON[quoteResponse](t, resp)
	if quote.Breakdown.Discount != 360 {
		t.Errorf("discount: got %v, want 360", quote.Breakdown.Discount)
	}
	if quote.Breakdown.Total != 1440 {
		t.Errorf("total: got %v, want 1440", quote.Breakdown.Total)
	}
}

func TestQuote_MissingSeed(t *testing.T) {
	resp := doGet(t, "/api/checkout/quote?preco=1500")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCheckout_Pix(t *testing.T) {
	req := checkoutRequest{
		Nome:           "Maria Silva",
		CPF:            "12345678901",
		Telefone:       "16988142848",
		Email:          "maria@example.com",
		Dosagem:        "15 mg",
		Preco:          1800,
		FormaPagamento: "pix",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	out := decodeJSON[checkoutResponse](t, resp)
	if !uuidPattern.MatchString(out.ID) {
		t.Errorf("order ID %q is not a valid UUID", out.ID)
	}
	if out.Redirect != "https://pix.nextrustx.com/pagar/1800" {
		t.Errorf("redirect: got %q", out.Redirect)
	}
	if out.FollowUp == nil {
		t.Fatal("expected a WhatsApp follow-up")
	}
	if out.FollowUp.DelayMs != 2000 {
		t.Errorf("follow-up delay: got %d, want 2000", out.FollowUp.DelayMs)
	}
	if !strings.Contains(out.FollowUp.URL, "wa.me/5516988142848") {
		t.Errorf("follow-up URL does not target the seller: %q", out.FollowUp.URL)
	}
	if !strings.Contains(out.FollowUp.URL, "R$ 1800.00") {
		t.Errorf("follow-up URL missing wire-format amount: %q", out.FollowUp.URL)
	}
}

func TestCheckout_WhatsApp(t *testing.T) {
	req := checkoutRequest{
		Dosagem:        "10 mg",
		Preco:          1500,
		FormaPagamento: "whatsapp",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	out := decodeJSON[checkoutResponse](t, resp)
	if !strings.Contains(out.Redirect, "wa.me/") {
		t.Errorf("redirect: got %q, want a wa.me link", out.Redirect)
	}
	if out.FollowUp != nil {
		t.Error("whatsapp checkout must not schedule a follow-up")
	}
	// Blank optional fields render as the placeholder, not empty.
	if !strings.Contains(out.Redirect, "Não informado") {
		t.Errorf("redirect missing blank-field placeholder: %q", out.Redirect)
	}
}

func TestCheckout_CryptoRequiresAsset(t *testing.T) {
	req := checkoutRequest{
		Dosagem:        "15 mg",
		Preco:          1800,
		FormaPagamento: "crypto",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	errResp := decodeJSON[errorResponse](t, resp)
	if errResp.Message != "Por favor, selecione uma criptomoeda." {
		t.Errorf("message: got %q", errResp.Message)
	}
}

func TestCheckout_Crypto(t *testing.T) {
	req := checkoutRequest{
		Dosagem:        "15 mg",
		Preco:          1800,
		FormaPagamento: "crypto",
		TipoCrypto:     "Bitcoin",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	out := decodeJSON[checkoutResponse](t, resp)
	if out.Breakdown.Discount != 360 {
		t.Errorf("discount: got %v, want 360", out.Breakdown.Discount)
	}
	if out.FollowUp == nil {
		t.Fatal("expected a WhatsApp follow-up")
	}
	if !strings.Contains(out.FollowUp.URL, "R$ 1440.00") {
		t.Errorf("follow-up URL missing discounted amount: %q", out.FollowUp.URL)
	}
}

func TestCheckout_ProofRequiresFile(t *testing.T) {
	req := checkoutRequest{
		Dosagem:        "10 mg",
		Preco:          1500,
		FormaPagamento: "comprovante",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	errResp := decodeJSON[errorResponse](t, resp)
	if errResp.Message != "Por favor, anexe o comprovante de pagamento." {
		t.Errorf("message: got %q", errResp.Message)
	}
}

func TestCheckout_ValidationErrors(t *testing.T) {
	req := checkoutRequest{
		Dosagem:        "10 mg",
		Preco:          1500,
		FormaPagamento: "whatsapp",
		CPF:            "123",
		Email:          "not-an-email",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	errResp := decodeJSON[errorResponse](t, resp)
	if _, ok := errResp.Fields["cpf"]; !ok {
		t.Error("expected a cpf field error")
	}
	if _, ok := errResp.Fields["email"]; !ok {
		t.Error("expected an email field error")
	}
}

func TestCheckout_MissingSeed(t *testing.T) {
	req := checkoutRequest{
		FormaPagamento: "pix",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCheckout_UnknownChannel(t *testing.T) {
	req := checkoutRequest{
		Dosagem:        "10 mg",
		Preco:          1500,
		FormaPagamento: "boleto",
	}
	resp := doPost(t, "/api/checkout", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
