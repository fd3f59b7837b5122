// Package submitter is the boundary with the external payment/ledger service.
// The workflow hands it a confirmed transfer and receives either a completion
// (reference number plus timestamp) or a failure; everything past this
// interface, including retry and idempotency policy, belongs to the ledger
// integration.
package submitter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Request carries the confirmed transfer fields the ledger needs.
type Request struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	Total                decimal.Decimal
	Currency             string
	Method               string
	Memo                 string
}

// Result is the completion signal for one submitted transfer.
type Result struct {
	Reference   string
	CompletedAt time.Time
}

// Submitter submits exactly one confirmed transfer per call.
type Submitter interface {
	Name() string
	Submit(ctx context.Context, req Request) (*Result, error)
}
