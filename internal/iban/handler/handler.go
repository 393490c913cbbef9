// Package handler exposes the IBAN service over HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"schwifty/internal/iban/service"
	"schwifty/internal/platform/middleware"
	"schwifty/internal/transport/http/shared"
	dErrors "schwifty/pkg/domain-errors"
)

// Handler wires the IBAN endpoints onto a chi router.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New creates the handler.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the endpoints under /v1.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/ibans", func(r chi.Router) {
		r.Post("/validate", h.validate)
		r.Post("/validate-batch", h.validateBatch)
		r.Post("/generate", h.generate)
		r.Get("/{iban}", h.inspect)
		r.Get("/{iban}/bic", h.resolveBIC)
	})
}

type validateRequest struct {
	IBAN string `json:"iban"`
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.IBAN == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "iban is required"))
		return
	}

	report, err := h.svc.Validate(r.Context(), req.IBAN)
	if err != nil {
		h.logError(r, "validate failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, report)
}

type validateBatchRequest struct {
	IBANs []string `json:"ibans"`
}

type validateBatchResponse struct {
	Results []*service.Report `json:"results"`
}

func (h *Handler) validateBatch(w http.ResponseWriter, r *http.Request) {
	var req validateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	reports, err := h.svc.ValidateBatch(r.Context(), req.IBANs)
	if err != nil {
		h.logError(r, "batch validate failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, validateBatchResponse{Results: reports})
}

type generateRequest struct {
	CountryCode string `json:"country_code"`
	BankCode    string `json:"bank_code"`
	AccountCode string `json:"account_code"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.CountryCode == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "country_code is required"))
		return
	}

	details, err := h.svc.Generate(r.Context(), service.GenerateRequest{
		CountryCode: req.CountryCode,
		BankCode:    req.BankCode,
		AccountCode: req.AccountCode,
	})
	if err != nil {
		h.logError(r, "generate failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, details)
}

func (h *Handler) inspect(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "iban")

	report, err := h.svc.Validate(r.Context(), value)
	if err != nil {
		h.logError(r, "inspect failed", err)
		shared.WriteError(w, err)
		return
	}
	if !report.Valid {
		shared.WriteJSON(w, http.StatusUnprocessableEntity, report)
		return
	}
	shared.WriteJSON(w, http.StatusOK, report.Details)
}

type resolveBICResponse struct {
	BIC          string `json:"bic"`
	BankCode     string `json:"bank_code"`
	CountryCode  string `json:"country_code"`
	LocationCode string `json:"location_code"`
	BranchCode   string `json:"branch_code,omitempty"`
}

func (h *Handler) resolveBIC(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "iban")

	b, err := h.svc.ResolveBIC(r.Context(), value)
	if err != nil {
		h.logError(r, "bic resolution failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, resolveBICResponse{
		BIC:          b.String(),
		BankCode:     b.BankCode(),
		CountryCode:  b.CountryCode().String(),
		LocationCode: b.LocationCode(),
		BranchCode:   b.BranchCode(),
	})
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	// Expected client errors stay at debug to keep the log signal clean.
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(r.Context(), msg,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		return
	}
	h.logger.DebugContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
}
