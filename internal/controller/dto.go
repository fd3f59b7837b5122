package controller

import (
	"time"

	"github.com/bancoademi/transfers/internal/domain/account"
	"github.com/bancoademi/transfers/internal/domain/transfer"
	"github.com/bancoademi/transfers/internal/receipt"
	"github.com/bancoademi/transfers/internal/workflow"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (raw strings for amount input,
// validation tags). Controllers convert them before touching the workflow.

// UpdateFieldsRequest carries partial field edits for a form-step workflow.
// Absent fields are left untouched.
type UpdateFieldsRequest struct {
	SourceAccountID *string `json:"source_account_id,omitempty"`
	BeneficiaryID   *string `json:"beneficiary_id,omitempty"`
	Amount          *string `json:"amount,omitempty"`
	Memo            *string `json:"memo,omitempty"`
	Method          *string `json:"method,omitempty" validate:"omitempty,oneof=ACH LBTR"`
}

// --- Response DTOs ---

// ErrorResponse is the API error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// AccountOption represents a selectable source account.
type AccountOption struct {
	ID               string `json:"id"`
	Nickname         string `json:"nickname"`
	LastFour         string `json:"last_four"`
	AccountType      string `json:"account_type"`
	Currency         string `json:"currency"`
	AvailableBalance string `json:"available_balance"`
	Display          string `json:"display"`
}

// BeneficiaryOption represents an eligible destination payee.
type BeneficiaryOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastFour string `json:"last_four"`
	BankName string `json:"bank_name"`
	Display  string `json:"display"`
}

// DerivedResponse carries the recomputed amounts for the current request.
type DerivedResponse struct {
	Amount string `json:"amount"`
	Tax    string `json:"tax"`
	Fee    string `json:"fee"`
	Total  string `json:"total"`
}

// ReceiptResponse is the finalized transaction view.
type ReceiptResponse struct {
	Amount      string    `json:"amount"`
	Tax         string    `json:"tax"`
	Fee         string    `json:"fee"`
	Total       string    `json:"total"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Memo        string    `json:"memo"`
	Method      string    `json:"method"`
	Reference   string    `json:"reference"`
	Date        string    `json:"date"`
	CompletedAt time.Time `json:"completed_at"`
}

// WorkflowResponse is the read-only projection of one workflow instance.
type WorkflowResponse struct {
	ID          string            `json:"id"`
	Step        string            `json:"step"`
	Source      string            `json:"source_account_id"`
	Destination string            `json:"beneficiary_id"`
	Amount      string            `json:"amount"`
	Memo        string            `json:"memo"`
	Method      string            `json:"method"`
	Derived     DerivedResponse   `json:"derived"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	SubmitError string            `json:"submit_error,omitempty"`
	Processing  bool              `json:"processing"`
	Degraded    bool              `json:"directory_degraded"`
	Receipt     *ReceiptResponse  `json:"receipt,omitempty"`
}

// StartWorkflowResponse bundles the new instance with its selectable options.
type StartWorkflowResponse struct {
	Workflow      WorkflowResponse    `json:"workflow"`
	Accounts      []AccountOption     `json:"accounts"`
	Beneficiaries []BeneficiaryOption `json:"beneficiaries"`
}

// --- Converters ---

func FromAccount(a account.Account) AccountOption {
	return AccountOption{
		ID:               a.ID,
		Nickname:         a.Nickname,
		LastFour:         a.LastFour(),
		AccountType:      a.AccountType,
		Currency:         a.Currency,
		AvailableBalance: receipt.Currency(a.AvailableBalance),
		Display:          receipt.MaskedParty(a.Nickname, a.LastFour()),
	}
}

func FromBeneficiary(b account.Beneficiary) BeneficiaryOption {
	return BeneficiaryOption{
		ID:       b.ID,
		Name:     b.Name,
		LastFour: b.LastFour(),
		BankName: b.BankName,
		Display:  receipt.MaskedParty(b.Name, b.LastFour()),
	}
}

func FromReceipt(r *transfer.Receipt) *ReceiptResponse {
	if r == nil {
		return nil
	}
	return &ReceiptResponse{
		Amount:      receipt.Currency(r.Amount),
		Tax:         receipt.Currency(r.Tax),
		Fee:         receipt.Currency(r.Fee),
		Total:       receipt.Currency(r.Total),
		Source:      receipt.MaskedParty(r.Source.DisplayName, r.Source.LastFour),
		Destination: receipt.MaskedParty(r.Destination.DisplayName, r.Destination.LastFour),
		Memo:        r.Memo,
		Method:      string(r.Method),
		Reference:   r.Reference,
		Date:        receipt.LongDate(r.CompletedAt),
		CompletedAt: r.CompletedAt,
	}
}

func FromSnapshot(s workflow.Snapshot) WorkflowResponse {
	return WorkflowResponse{
		ID:          s.ID.String(),
		Step:        string(s.Step),
		Source:      s.Request.SourceAccountID,
		Destination: s.Request.BeneficiaryID,
		Amount:      s.Request.Amount.String(),
		Memo:        s.Request.Memo,
		Method:      string(s.Request.Method),
		Derived: DerivedResponse{
			Amount: receipt.Currency(s.Request.Amount),
			Tax:    receipt.Currency(s.Derived.Tax),
			Fee:    receipt.Currency(s.Derived.Fee),
			Total:  receipt.Currency(s.Derived.Total),
		},
		FieldErrors: s.FieldErrors,
		SubmitError: s.SubmitError,
		Processing:  s.Processing,
		Degraded:    s.Degraded,
		Receipt:     FromReceipt(s.Receipt),
	}
}
