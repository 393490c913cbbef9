package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The specification registry and the
// BIC directory stores return these (optionally wrapped) so the IBAN layer can
// translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: country specification or directory entry does not exist
// - ErrConflict: directory entry already present with a different value
// - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (malformed IBAN input), use pkg/domain-errors or the
// iban package sentinels directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
