package account

type BeneficiaryType string

const (
	// TypeInternalAccount is a saved payee holding an account at this bank.
	TypeInternalAccount BeneficiaryType = "CUENTA_ADEMI"
	// TypeExternalAccount is a saved payee holding an account at another bank.
	TypeExternalAccount BeneficiaryType = "OTRA_CUENTA"
	// Card and bill-pay style payees also live in the catalog but cannot
	// receive account-to-account transfers.
	TypeCard    BeneficiaryType = "TARJETA"
	TypeBillPay BeneficiaryType = "SERVICIO"
)

// Beneficiary is a saved payee record from the external beneficiary directory.
type Beneficiary struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Type          BeneficiaryType `json:"type"`
	Name          string          `json:"name"`
	Nickname      string          `json:"nickname"`
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
}

// EligibleFor reports whether the beneficiary can be a third-party transfer
// destination for the given user: owned by that user and of an account type
// (internal or external). Card and bill-pay payees are excluded.
func (b Beneficiary) EligibleFor(userID string) bool {
	if b.UserID != userID {
		return false
	}
	return b.Type == TypeInternalAccount || b.Type == TypeExternalAccount
}

// LastFour returns the trailing four digits of the beneficiary account number.
func (b Beneficiary) LastFour() string {
	return lastFour(b.AccountNumber)
}
