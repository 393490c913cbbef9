package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	bicstore "schwifty/internal/bic/store"
	"schwifty/internal/bic/store/memory"
	"schwifty/internal/iban/service"
	"schwifty/internal/iban/spec"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	directory := memory.NewInMemory()
	bicstore.SeedSampleDirectory(directory)

	svc, err := service.New(spec.Default(), directory, logger, nil, nil, service.WithBatchLimit(10))
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestValidateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/ibans/validate", map[string]string{
		"iban": "DE89 3704 0044 0532 0130 00",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var report service.Report
	decode(t, rec, &report)
	if !report.Valid {
		t.Fatalf("valid = false, want true; reason %q", report.Reason)
	}
	if report.Details == nil || report.Details.Compact != "DE89370400440532013000" {
		t.Fatalf("details = %+v", report.Details)
	}
}

func TestValidateEndpointInvalidIBAN(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/ibans/validate", map[string]string{
		"iban": "DE88370400440532013000",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var report service.Report
	decode(t, rec, &report)
	if report.Valid {
		t.Fatal("valid = true, want false")
	}
	if report.Reason != service.ReasonInvalidChecksum {
		t.Fatalf("reason = %q, want %q", report.Reason, service.ReasonInvalidChecksum)
	}
}

func TestValidateEndpointBadRequests(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/ibans/validate", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing iban: status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/ibans/validate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status = %d, want 400", rec2.Code)
	}
}

func TestValidateBatchEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/ibans/validate-batch", map[string]any{
		"ibans": []string{"DE89370400440532013000", "DE88370400440532013000"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []service.Report `json:"results"`
	}
	decode(t, rec, &resp)
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}
	if !resp.Results[0].Valid || resp.Results[1].Valid {
		t.Fatalf("validity = %v/%v, want true/false", resp.Results[0].Valid, resp.Results[1].Valid)
	}
}

func TestValidateBatchEndpointOverLimit(t *testing.T) {
	r := newTestRouter(t)

	ibans := make([]string, 11)
	for i := range ibans {
		ibans[i] = "DE89370400440532013000"
	}
	rec := doJSON(t, r, http.MethodPost, "/v1/ibans/validate-batch", map[string]any{"ibans": ibans})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/ibans/generate", map[string]string{
		"country_code": "DE",
		"bank_code":    "37040044",
		"account_code": "532013000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var details service.Details
	decode(t, rec, &details)
	if details.Compact != "DE89370400440532013000" {
		t.Fatalf("compact = %q", details.Compact)
	}
}

func TestGenerateEndpointUnknownCountry(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/ibans/generate", map[string]string{
		"country_code": "ZZ",
		"bank_code":    "1",
		"account_code": "2",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestInspectEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/ibans/DE89370400440532013000", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var details service.Details
	decode(t, rec, &details)
	if details.BankCode != "37040044" || details.AccountCode != "0532013000" {
		t.Fatalf("components = %q/%q", details.BankCode, details.AccountCode)
	}
}

func TestInspectEndpointInvalid(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/ibans/DE88370400440532013000", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var report service.Report
	decode(t, rec, &report)
	if report.Reason != service.ReasonInvalidChecksum {
		t.Fatalf("reason = %q", report.Reason)
	}
}

func TestResolveBICEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/ibans/DE89370400440532013000/bic", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		BIC         string `json:"bic"`
		BankCode    string `json:"bank_code"`
		CountryCode string `json:"country_code"`
	}
	decode(t, rec, &resp)
	if resp.BIC != "COBADEFFXXX" {
		t.Fatalf("bic = %q", resp.BIC)
	}
	if resp.BankCode != "COBA" || resp.CountryCode != "DE" {
		t.Fatalf("components = %q/%q", resp.BankCode, resp.CountryCode)
	}
}

func TestResolveBICEndpointNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/ibans/DE02120300000000202051/bic", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestResolveBICEndpointInvalidIBAN(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/ibans/DE88370400440532013000/bic", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
