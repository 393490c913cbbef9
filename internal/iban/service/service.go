// Package service orchestrates IBAN validation, generation, and BIC
// resolution. It owns the translation from the core's failure sentinels to
// caller-facing domain errors and validation reports, and it emits metrics
// and audit events. Business rules live in the iban package; this layer stays
// thin.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"schwifty/internal/bic"
	"schwifty/internal/iban"
	"schwifty/internal/iban/metrics"
	"schwifty/internal/iban/spec"
	"schwifty/internal/platform/middleware"
	"schwifty/pkg/domain"
	dErrors "schwifty/pkg/domain-errors"
	"schwifty/pkg/platform/audit"
	"schwifty/pkg/platform/sentinel"
)

const (
	// defaultBatchLimit bounds one batch validation request.
	defaultBatchLimit = 100
	// batchWorkers bounds concurrent validations within a batch.
	batchWorkers = 8
)

// Service exposes the IBAN operations to transports.
type Service struct {
	logger     *slog.Logger
	specs      spec.Provider
	directory  bic.Directory
	metrics    *metrics.Metrics
	audit      audit.Publisher
	batchLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithBatchLimit overrides the maximum batch validation size.
func WithBatchLimit(n int) Option {
	return func(s *Service) { s.batchLimit = n }
}

// New constructs the service. The spec provider and directory are required;
// a nil audit publisher degrades to a no-op.
func New(specs spec.Provider, directory bic.Directory, logger *slog.Logger, m *metrics.Metrics, publisher audit.Publisher, opts ...Option) (*Service, error) {
	if specs == nil {
		return nil, errors.New("spec provider is required")
	}
	if directory == nil {
		return nil, errors.New("bic directory is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if publisher == nil {
		publisher = audit.Nop{}
	}
	s := &Service{
		logger:     logger,
		specs:      specs,
		directory:  directory,
		metrics:    m,
		audit:      publisher,
		batchLimit: defaultBatchLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Details is the parsed component view of a valid IBAN.
type Details struct {
	Compact        string `json:"compact"`
	Formatted      string `json:"formatted"`
	CountryCode    string `json:"country_code"`
	ChecksumDigits string `json:"checksum_digits"`
	BBAN           string `json:"bban"`
	BankCode       string `json:"bank_code"`
	BranchCode     string `json:"branch_code,omitempty"`
	AccountCode    string `json:"account_code"`
}

// Report is the outcome of validating one IBAN. Reason is empty when Valid;
// Details are populated only for valid values.
type Report struct {
	IBAN    string   `json:"iban"`
	Valid   bool     `json:"valid"`
	Reason  string   `json:"reason,omitempty"`
	Message string   `json:"message,omitempty"`
	Details *Details `json:"details,omitempty"`
}

// Validation failure reasons, stable identifiers for API consumers.
const (
	ReasonInvalidCharacters    = "invalid_characters"
	ReasonInvalidLength        = "invalid_length"
	ReasonInvalidBBANStructure = "invalid_bban_structure"
	ReasonInvalidChecksum      = "invalid_checksum"
	ReasonUnknownCountry       = "unknown_country"
)

// reasonFor maps a core validation failure to its stable reason, or "" for
// errors that are not validation outcomes.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, iban.ErrInvalidCharacters):
		return ReasonInvalidCharacters
	case errors.Is(err, iban.ErrInvalidLength):
		return ReasonInvalidLength
	case errors.Is(err, iban.ErrInvalidBBANStructure):
		return ReasonInvalidBBANStructure
	case errors.Is(err, iban.ErrInvalidChecksum):
		return ReasonInvalidChecksum
	case errors.Is(err, iban.ErrUnknownCountry):
		return ReasonUnknownCountry
	default:
		return ""
	}
}

// Validate checks one IBAN and reports the outcome. A failed validation is a
// successful call with Valid=false; only infrastructure trouble (a corrupt
// specification table, a cancelled context) returns an error.
func (s *Service) Validate(ctx context.Context, value string) (*Report, error) {
	v, err := iban.New(ctx, s.specs, value)
	if err != nil {
		reason := reasonFor(err)
		if reason == "" {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "validation infrastructure failure")
		}
		if s.metrics != nil {
			s.metrics.ObserveValidation(reason)
		}
		s.audit.Publish(ctx, audit.Event{
			ID:          newEventID(),
			Action:      audit.ActionIBANValidationFailed,
			Timestamp:   time.Now().UTC(),
			CountryCode: countryOf(value),
			Reason:      reason,
			RequestID:   middleware.GetRequestID(ctx),
		})
		return &Report{IBAN: value, Valid: false, Reason: reason, Message: err.Error()}, nil
	}

	details, err := s.details(ctx, v)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveValidation("valid")
	}
	return &Report{IBAN: value, Valid: true, Details: details}, nil
}

// ValidateBatch validates up to the configured limit of IBANs concurrently.
// Results keep the input order.
func (s *Service) ValidateBatch(ctx context.Context, values []string) ([]*Report, error) {
	if len(values) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "at least one iban is required")
	}
	if len(values) > s.batchLimit {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "batch size %d exceeds limit %d", len(values), s.batchLimit)
	}
	if s.metrics != nil {
		s.metrics.ObserveBatchSize(len(values))
	}

	reports := make([]*Report, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for i, value := range values {
		g.Go(func() error {
			report, err := s.Validate(ctx, value)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// GenerateRequest carries the inputs for IBAN generation. BankCode may hold
// bank and branch segments concatenated, right-aligned.
type GenerateRequest struct {
	CountryCode string
	BankCode    string
	AccountCode string
}

// Generate builds and fully validates a new IBAN.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Details, error) {
	v, err := iban.Generate(ctx, s.specs, req.CountryCode, req.BankCode, req.AccountCode)
	if err != nil {
		switch {
		case errors.Is(err, iban.ErrUnknownCountry):
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown country code")
		case errors.Is(err, iban.ErrCodeTooLong):
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "code exceeds field width")
		case reasonFor(err) != "":
			// The padded skeleton can still violate the country's structure,
			// for example digits in a letters-only bank code field.
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "generated iban failed validation")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "generation failure")
		}
	}

	details, err := s.details(ctx, v)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementGenerated()
	}
	s.audit.Publish(ctx, audit.Event{
		ID:          newEventID(),
		Action:      audit.ActionIBANGenerated,
		Timestamp:   time.Now().UTC(),
		CountryCode: details.CountryCode,
		RequestID:   middleware.GetRequestID(ctx),
	})
	return details, nil
}

// ResolveBIC validates the IBAN and resolves its BIC through the directory.
// Directory errors propagate with their sentinel intact.
func (s *Service) ResolveBIC(ctx context.Context, value string) (bic.BIC, error) {
	v, err := iban.New(ctx, s.specs, value)
	if err != nil {
		if reason := reasonFor(err); reason != "" {
			return bic.BIC{}, dErrors.Wrap(err, dErrors.CodeValidation, "iban failed validation")
		}
		return bic.BIC{}, dErrors.Wrap(err, dErrors.CodeInternal, "validation infrastructure failure")
	}

	bankCode, err := v.BankCode(ctx)
	if err != nil {
		return bic.BIC{}, dErrors.Wrap(err, dErrors.CodeInternal, "bank code extraction failure")
	}

	b, err := s.directory.LookupByBankCode(ctx, v.CountryCode(), bankCode)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			if s.metrics != nil {
				s.metrics.ObserveBICLookup("miss")
			}
			return bic.BIC{}, dErrors.Wrap(err, dErrors.CodeNotFound, "no bic registered for bank code")
		}
		if s.metrics != nil {
			s.metrics.ObserveBICLookup("error")
		}
		s.logger.ErrorContext(ctx, "bic directory lookup failed",
			"request_id", middleware.GetRequestID(ctx),
			"country_code", v.CountryCode().String(),
			"error", err.Error(),
		)
		return bic.BIC{}, dErrors.Wrap(err, dErrors.CodeInternal, "bic directory failure")
	}

	if s.metrics != nil {
		s.metrics.ObserveBICLookup("hit")
	}
	s.audit.Publish(ctx, audit.Event{
		ID:          newEventID(),
		Action:      audit.ActionBICResolved,
		Timestamp:   time.Now().UTC(),
		CountryCode: v.CountryCode().String(),
		RequestID:   middleware.GetRequestID(ctx),
	})
	return b, nil
}

// details projects the parsed components of a validated value.
func (s *Service) details(ctx context.Context, v *iban.IBAN) (*Details, error) {
	bankCode, err := v.BankCode(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "component extraction failure")
	}
	branchCode, err := v.BranchCode(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "component extraction failure")
	}
	accountCode, err := v.AccountCode(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "component extraction failure")
	}
	return &Details{
		Compact:        v.Compact(),
		Formatted:      v.Formatted(),
		CountryCode:    v.CountryCode().String(),
		ChecksumDigits: v.ChecksumDigits(),
		BBAN:           v.BBAN(),
		BankCode:       bankCode,
		BranchCode:     branchCode,
		AccountCode:    accountCode,
	}, nil
}

// countryOf extracts the probable country code from raw input for audit
// context; best effort only.
func countryOf(value string) string {
	cc, err := domain.ParseCountryCode(firstTwoLetters(value))
	if err != nil {
		return ""
	}
	return cc.String()
}

func firstTwoLetters(value string) string {
	if len(value) < 2 {
		return ""
	}
	return value[:2]
}

func newEventID() string {
	return fmt.Sprintf("evt_%s", uuid.NewString())
}
