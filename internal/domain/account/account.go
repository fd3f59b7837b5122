package account

import "github.com/shopspring/decimal"

type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
	StatusBlocked  AccountStatus = "BLOCKED"
)

// Account is a catalog record from the external account directory. IDs are
// opaque strings owned by the directory source, not generated here.
type Account struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	AccountNumber    string          `json:"accountNumber"`
	AccountType      string          `json:"accountType"`
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	Nickname         string          `json:"nickname"`
	Status           AccountStatus   `json:"status"`
}

// SelectableBy reports whether the account can be used as a transfer source
// by the given user: it must be owned by that user and ACTIVE.
func (a Account) SelectableBy(userID string) bool {
	return a.UserID == userID && a.Status == StatusActive
}

// LastFour returns the trailing four digits of the account number, used for
// masked display.
func (a Account) LastFour() string {
	return lastFour(a.AccountNumber)
}

func lastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
