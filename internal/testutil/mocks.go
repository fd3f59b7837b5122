package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/bancoademi/transfers/internal/domain/account"
	"github.com/bancoademi/transfers/internal/submitter"
)

// --- Directory source mock ---

// StaticSource is an in-memory directory.Source with optional error
// injection.
type StaticSource struct {
	Accounts      []account.Account
	Beneficiaries []account.Beneficiary

	FetchAccountsErr      error
	FetchBeneficiariesErr error
}

func (s *StaticSource) FetchAccounts(_ context.Context) ([]account.Account, error) {
	if s.FetchAccountsErr != nil {
		return nil, s.FetchAccountsErr
	}
	return s.Accounts, nil
}

func (s *StaticSource) FetchBeneficiaries(_ context.Context) ([]account.Beneficiary, error) {
	if s.FetchBeneficiariesErr != nil {
		return nil, s.FetchBeneficiariesErr
	}
	return s.Beneficiaries, nil
}

// --- Submitter mock ---

// MockSubmitter records submissions and returns a canned result or error.
type MockSubmitter struct {
	mu      sync.Mutex
	calls   int
	lastReq submitter.Request

	SubmitFunc func(ctx context.Context, req submitter.Request) (*submitter.Result, error)
	Result     *submitter.Result
	Err        error
}

func (m *MockSubmitter) Name() string { return "mock-ledger" }

func (m *MockSubmitter) Submit(ctx context.Context, req submitter.Request) (*submitter.Result, error) {
	m.mu.Lock()
	m.calls++
	m.lastReq = req
	m.mu.Unlock()

	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	now := time.Now()
	return &submitter.Result{
		Reference:   submitter.NewReference(now),
		CompletedAt: now,
	}, nil
}

func (m *MockSubmitter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockSubmitter) LastRequest() submitter.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}
