package transfer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancoademi/transfers/internal/domain/account"
)

// PartySnapshot is a copied display view of a transfer party taken at
// completion time. Later changes to the directory never alter a past receipt.
type PartySnapshot struct {
	DisplayName   string
	AccountNumber string
	LastFour      string
	BankName      string
}

// SnapshotOfAccount copies the display fields of a source account.
func SnapshotOfAccount(a account.Account) PartySnapshot {
	return PartySnapshot{
		DisplayName:   a.Nickname,
		AccountNumber: a.AccountNumber,
		LastFour:      a.LastFour(),
	}
}

// SnapshotOfBeneficiary copies the display fields of a destination payee.
func SnapshotOfBeneficiary(b account.Beneficiary) PartySnapshot {
	return PartySnapshot{
		DisplayName:   b.Name,
		AccountNumber: b.AccountNumber,
		LastFour:      b.LastFour(),
		BankName:      b.BankName,
	}
}

// Receipt is the immutable record produced exactly once when a confirmed
// transfer completes. Reference and CompletedAt are generated at creation and
// never change afterwards.
type Receipt struct {
	Amount      decimal.Decimal
	Tax         decimal.Decimal
	Fee         decimal.Decimal
	Total       decimal.Decimal
	Source      PartySnapshot
	Destination PartySnapshot
	Memo        string
	Method      Method
	Reference   string
	CompletedAt time.Time
}

// NewReceipt builds a receipt from a completed request, recomputing derived
// amounts from the request's own fields so the receipt can never disagree
// with what was confirmed.
func NewReceipt(req *Request, src account.Account, dst account.Beneficiary, reference string, completedAt time.Time) *Receipt {
	derived := Derive(req.Amount, req.Method)
	return &Receipt{
		Amount:      req.Amount,
		Tax:         derived.Tax,
		Fee:         derived.Fee,
		Total:       derived.Total,
		Source:      SnapshotOfAccount(src),
		Destination: SnapshotOfBeneficiary(dst),
		Memo:        req.Memo,
		Method:      req.Method,
		Reference:   reference,
		CompletedAt: completedAt,
	}
}
