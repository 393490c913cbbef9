// Package audit publishes compliance-relevant events from the IBAN service:
// account number generation and validation failures. Events are fire-and-
// forget; audit trouble never fails the request that produced the event.
package audit

import "time"

// Actions emitted by the IBAN service.
const (
	ActionIBANGenerated        = "iban.generated"
	ActionIBANValidationFailed = "iban.validation_failed"
	ActionBICResolved          = "bic.resolved"
)

// Event is one audit record. CountryCode and Reason carry the domain
// context; the IBAN itself is deliberately absent since account numbers are
// personal data and do not belong on the audit stream.
type Event struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	CountryCode string    `json:"country_code,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}
