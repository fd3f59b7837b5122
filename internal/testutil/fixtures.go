package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/bancoademi/transfers/internal/domain/account"
)

const TestUserID = "user_001"

func NewTestAccount(id, userID string, available float64) account.Account {
	return account.Account{
		ID:               id,
		UserID:           userID,
		AccountNumber:    "001234564821",
		AccountType:      "SAVINGS",
		Currency:         "DOP",
		Balance:          decimal.NewFromFloat(available).Add(decimal.NewFromInt(250)),
		AvailableBalance: decimal.NewFromFloat(available),
		Nickname:         "Cuenta de Ahorros",
		Status:           account.StatusActive,
	}
}

func NewTestBeneficiary(id, userID string, benType account.BeneficiaryType) account.Beneficiary {
	return account.Beneficiary{
		ID:            id,
		UserID:        userID,
		Type:          benType,
		Name:          "María Pérez",
		Nickname:      "Mamá",
		AccountNumber: "009876543377",
		BankName:      "Banco Popular",
	}
}
