// Package emailintake outlines the billing-email ingestion path. The
// extraction stage is a stub: no parser implementation yields data yet,
// and the processor only exercises the reconciliation flow when one does.
package emailintake

import (
	"context"
	"encoding/json"
)

// ParsedEmail is the structured subscription data extracted from a billing
// email.
type ParsedEmail struct {
	UserID      string
	Merchant    string
	Amount      float64
	BillingDate string
}

// Parser extracts subscription data from an inbound email event.
type Parser interface {
	Parse(ctx context.Context, raw json.RawMessage) (*ParsedEmail, error)
}

// StubParser is the placeholder until real extraction is wired up. It
// never yields data.
type StubParser struct{}

func (StubParser) Parse(ctx context.Context, raw json.RawMessage) (*ParsedEmail, error) {
	return nil, nil
}
