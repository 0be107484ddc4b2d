// Package apperr defines the sentinel errors shared across adapters so the
// HTTP layer can map failures to status codes with errors.Is.
package apperr

import "errors"

var (
	// ErrAuthentication indicates the brokerage login failed.
	ErrAuthentication = errors.New("brokerage authentication failed")

	// ErrUpstreamFetch indicates a provider HTTP call failed or timed out.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrParse indicates a provider returned a malformed item.
	ErrParse = errors.New("malformed provider response")

	// ErrModelLoad indicates the sentiment model could not be initialized.
	// This is fatal for the sentiment path; it never degrades.
	ErrModelLoad = errors.New("sentiment model load failed")

	// ErrClassification indicates a single classification call failed.
	// Callers downgrade this to a neutral result.
	ErrClassification = errors.New("sentiment classification failed")
)
