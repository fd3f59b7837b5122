package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/bancoademi/transfers/internal/domain/account"
)

// TaxRate is the government transaction tax (0.15%) applied to the amount.
var TaxRate = decimal.NewFromFloat(0.0015)

// LBTRFee is the flat fee charged for real-time (LBTR) settlement. ACH is free.
var LBTRFee = decimal.NewFromInt(100)

// Fields reported by Validate.
const (
	FieldSource      = "source"
	FieldDestination = "destination"
	FieldAmount      = "amount"
)

// User-facing validation messages.
const (
	MsgMissingSource      = "Selecciona una cuenta origen"
	MsgMissingDestination = "Selecciona un beneficiario destino"
	MsgInvalidAmount      = "Ingresa un monto válido"
	MsgInsufficientFunds  = "Fondos insuficientes"
)

// DerivedAmounts are recomputed from (amount, method) on every read. They are
// a pure function of their inputs and must never be stored apart from them.
type DerivedAmounts struct {
	Tax   decimal.Decimal
	Fee   decimal.Decimal
	Total decimal.Decimal
}

// Fee returns the settlement fee for the given method.
func Fee(method Method) decimal.Decimal {
	if method == MethodLBTR {
		return LBTRFee
	}
	return decimal.Zero
}

// Derive computes tax, fee and total for the given amount and method.
// Negative amounts yield a zero-filled result.
func Derive(amount decimal.Decimal, method Method) DerivedAmounts {
	if amount.IsNegative() {
		return DerivedAmounts{Tax: decimal.Zero, Fee: decimal.Zero, Total: decimal.Zero}
	}
	tax := amount.Mul(TaxRate)
	fee := Fee(method)
	return DerivedAmounts{
		Tax:   tax,
		Fee:   fee,
		Total: amount.Add(tax).Add(fee),
	}
}

// Validate checks every field rule independently and returns one message per
// failing field. The request is valid iff the returned map is empty.
//
// The insufficient-funds rule refines the invalid-amount rule: it only fires
// once the amount is positive and the source resolved, and when it fires it
// owns the amount field's message.
func Validate(req *Request, source *account.Account) map[string]string {
	errs := make(map[string]string)

	if req.SourceAccountID == "" {
		errs[FieldSource] = MsgMissingSource
	}
	if req.BeneficiaryID == "" {
		errs[FieldDestination] = MsgMissingDestination
	}
	if !req.Amount.IsPositive() {
		errs[FieldAmount] = MsgInvalidAmount
	}
	if req.Amount.IsPositive() && source != nil && req.Amount.GreaterThan(source.AvailableBalance) {
		errs[FieldAmount] = MsgInsufficientFunds
	}

	return errs
}
