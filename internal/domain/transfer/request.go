package transfer

import "github.com/shopspring/decimal"

// Method is the settlement method for a third-party transfer.
type Method string

const (
	// MethodACH settles through the local ACH network, free of charge.
	MethodACH Method = "ACH"
	// MethodLBTR settles in real time through the central bank and carries
	// a flat fee.
	MethodLBTR Method = "LBTR"
)

// Valid reports whether m is a known settlement method.
func (m Method) Valid() bool {
	return m == MethodACH || m == MethodLBTR
}

// Request is the in-progress transfer being assembled by the workflow. It is
// owned exclusively by one workflow instance while active and is discarded on
// reset or completion; a finished request is never reused.
type Request struct {
	SourceAccountID string
	BeneficiaryID   string
	Amount          decimal.Decimal
	Memo            string
	Method          Method
}

// NewRequest returns an empty request with the default settlement method.
func NewRequest() *Request {
	return &Request{Method: MethodACH}
}

// Empty reports whether no field has been filled in yet.
func (r *Request) Empty() bool {
	return r.SourceAccountID == "" &&
		r.BeneficiaryID == "" &&
		r.Amount.IsZero() &&
		r.Memo == "" &&
		r.Method == MethodACH
}
