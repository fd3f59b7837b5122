package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancoademi/transfers/internal/directory"
	"github.com/bancoademi/transfers/internal/domain/account"
	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
	"github.com/bancoademi/transfers/internal/domain/transfer"
	"github.com/bancoademi/transfers/internal/submitter"
	"github.com/bancoademi/transfers/internal/testutil"
	"github.com/bancoademi/transfers/internal/workflow"
)

func loadedDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	src := &testutil.StaticSource{
		Accounts: []account.Account{
			testutil.NewTestAccount("acc_001", testutil.TestUserID, 1000.00),
		},
		Beneficiaries: []account.Beneficiary{
			testutil.NewTestBeneficiary("ben_001", testutil.TestUserID, account.TypeInternalAccount),
		},
	}
	return directory.NewLoader(src, zerolog.Nop()).Load(context.Background(), testutil.TestUserID)
}

func newWorkflow(t *testing.T, ledger submitter.Submitter) *workflow.Workflow {
	t.Helper()
	return workflow.New(loadedDirectory(t), ledger, "", zerolog.Nop(), nil)
}

func fillValidRequest(t *testing.T, wf *workflow.Workflow) {
	t.Helper()
	require.NoError(t, wf.SetSource("acc_001"))
	require.NoError(t, wf.SetBeneficiary("ben_001"))
	require.NoError(t, wf.SetAmount("500.00"))
	require.NoError(t, wf.SetMemo("Pago alquiler"))
	require.NoError(t, wf.SetMethod(transfer.MethodACH))
}

func TestNew_StartsWithEmptyForm(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepForm, snap.Step)
	assert.Empty(t, snap.Request.SourceAccountID)
	assert.Empty(t, snap.Request.BeneficiaryID)
	assert.True(t, snap.Request.Amount.IsZero())
	assert.Empty(t, snap.Request.Memo)
	assert.Equal(t, transfer.MethodACH, snap.Request.Method)
	assert.Empty(t, snap.FieldErrors)
	assert.Nil(t, snap.Receipt)
}

func TestNew_DeepLinkPreselection(t *testing.T) {
	dir := loadedDirectory(t)

	wf := workflow.New(dir, &testutil.MockSubmitter{}, "ben_001", zerolog.Nop(), nil)
	assert.Equal(t, "ben_001", wf.Snapshot().Request.BeneficiaryID)

	// An id outside the eligible set yields no preselection, never an error.
	wf = workflow.New(dir, &testutil.MockSubmitter{}, "ben_999", zerolog.Nop(), nil)
	assert.Empty(t, wf.Snapshot().Request.BeneficiaryID)
}

func TestContinue_SurfacesValidationErrors(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})

	err := wf.Continue()
	assert.ErrorIs(t, err, domainErrors.ErrValidationFailed)

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepForm, snap.Step)
	assert.Equal(t, transfer.MsgMissingSource, snap.FieldErrors[transfer.FieldSource])
	assert.Equal(t, transfer.MsgMissingDestination, snap.FieldErrors[transfer.FieldDestination])
	assert.Equal(t, transfer.MsgInvalidAmount, snap.FieldErrors[transfer.FieldAmount])
}

func TestContinue_InsufficientFunds(t *testing.T) {
	// Source has 1000.00 available; 1500.00 must be refused with the
	// insufficient-funds message on the amount field.
	wf := newWorkflow(t, &testutil.MockSubmitter{})
	require.NoError(t, wf.SetSource("acc_001"))
	require.NoError(t, wf.SetBeneficiary("ben_001"))
	require.NoError(t, wf.SetAmount("1500.00"))

	err := wf.Continue()
	assert.ErrorIs(t, err, domainErrors.ErrValidationFailed)

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepForm, snap.Step)
	assert.Equal(t, transfer.MsgInsufficientFunds, snap.FieldErrors[transfer.FieldAmount])
	assert.Len(t, snap.FieldErrors, 1)
}

func TestContinue_ValidRequestReachesConfirm(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})
	fillValidRequest(t, wf)

	require.NoError(t, wf.Continue())

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepConfirm, snap.Step)
	assert.Empty(t, snap.FieldErrors)
}

func TestFieldEditClearsOnlyThatFieldsError(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})
	require.ErrorIs(t, wf.Continue(), domainErrors.ErrValidationFailed)
	require.Len(t, wf.Snapshot().FieldErrors, 3)

	require.NoError(t, wf.SetSource("acc_001"))

	snap := wf.Snapshot()
	assert.NotContains(t, snap.FieldErrors, transfer.FieldSource)
	assert.Contains(t, snap.FieldErrors, transfer.FieldDestination)
	assert.Contains(t, snap.FieldErrors, transfer.FieldAmount)
}

func TestMutationsRejectedOutsideForm(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})
	fillValidRequest(t, wf)
	require.NoError(t, wf.Continue())

	assert.ErrorIs(t, wf.SetSource("acc_001"), domainErrors.ErrInvalidStateTransition)
	assert.ErrorIs(t, wf.SetAmount("10"), domainErrors.ErrInvalidStateTransition)
	assert.ErrorIs(t, wf.Continue(), domainErrors.ErrInvalidStateTransition)
}

func TestBack_RetainsRequestFields(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})
	fillValidRequest(t, wf)
	require.NoError(t, wf.Continue())

	require.NoError(t, wf.Back())

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepForm, snap.Step)
	assert.Equal(t, "acc_001", snap.Request.SourceAccountID)
	assert.Equal(t, "ben_001", snap.Request.BeneficiaryID)
	assert.Equal(t, "500", snap.Request.Amount.String())
	assert.Equal(t, "Pago alquiler", snap.Request.Memo)
}

func TestProceed_RequiresConfirmStep(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})

	_, err := wf.Proceed(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrInvalidStateTransition)
}

func TestProceed_ProducesExactlyOneReceipt(t *testing.T) {
	completedAt := time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)
	ledger := &testutil.MockSubmitter{
		Result: &submitter.Result{Reference: "202612345678", CompletedAt: completedAt},
	}
	wf := newWorkflow(t, ledger)
	fillValidRequest(t, wf)
	require.NoError(t, wf.Continue())

	receipt, err := wf.Proceed(context.Background())
	require.NoError(t, err)
	require.NotNil(t, receipt)

	// 500.00 + 0.75 tax + 0 ACH fee
	assert.Equal(t, "500.75", receipt.Total.String())
	assert.Equal(t, "202612345678", receipt.Reference)
	assert.Equal(t, completedAt, receipt.CompletedAt)
	assert.Equal(t, "Cuenta de Ahorros", receipt.Source.DisplayName)
	assert.Equal(t, 1, ledger.Calls())

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepSuccess, snap.Step)
	assert.False(t, snap.Processing)
	assert.Equal(t, receipt, snap.Receipt)

	// Success is terminal except for reset.
	_, err = wf.Proceed(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrInvalidStateTransition)
	assert.Equal(t, 1, ledger.Calls())
}

func TestProceed_SubmitsConfirmedFields(t *testing.T) {
	ledger := &testutil.MockSubmitter{}
	wf := newWorkflow(t, ledger)
	fillValidRequest(t, wf)
	require.NoError(t, wf.SetMethod(transfer.MethodLBTR))
	require.NoError(t, wf.Continue())

	_, err := wf.Proceed(context.Background())
	require.NoError(t, err)

	req := ledger.LastRequest()
	assert.Equal(t, "acc_001", req.SourceAccountID)
	assert.Equal(t, "ben_001", req.DestinationAccountID)
	assert.Equal(t, "500", req.Amount.String())
	assert.Equal(t, "600.75", req.Total.String())
	assert.Equal(t, "LBTR", req.Method)
	assert.Equal(t, "DOP", req.Currency)
}

func TestProceed_ReentrantCallRejected(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	ledger := &testutil.MockSubmitter{
		SubmitFunc: func(ctx context.Context, req submitter.Request) (*submitter.Result, error) {
			close(started)
			<-release
			now := time.Now()
			return &submitter.Result{Reference: submitter.NewReference(now), CompletedAt: now}, nil
		},
	}
	wf := newWorkflow(t, ledger)
	fillValidRequest(t, wf)
	require.NoError(t, wf.Continue())

	done := make(chan error, 1)
	go func() {
		_, err := wf.Proceed(context.Background())
		done <- err
	}()

	<-started
	assert.True(t, wf.Snapshot().Processing)

	// A second proceed while one is in flight must be rejected without a
	// second submission.
	_, err := wf.Proceed(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyProcessing)

	close(release)
	require.NoError(t, <-done)

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepSuccess, snap.Step)
	assert.NotNil(t, snap.Receipt)
}

func TestProceed_FailureReturnsToConfirm(t *testing.T) {
	ledger := &testutil.MockSubmitter{Err: domainErrors.ErrSubmissionFailed}
	wf := newWorkflow(t, ledger)
	fillValidRequest(t, wf)
	require.NoError(t, wf.Continue())

	_, err := wf.Proceed(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrSubmissionFailed)

	snap := wf.Snapshot()
	assert.Equal(t, workflow.StepConfirm, snap.Step)
	assert.False(t, snap.Processing, "processing must never stay true after a failure")
	assert.NotEmpty(t, snap.SubmitError)
	assert.Nil(t, snap.Receipt)

	// The instance stays usable: a retry can still succeed.
	ledger.Err = nil
	receipt, err := wf.Proceed(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.Empty(t, wf.Snapshot().SubmitError)
}

func TestReset_DiscardsInstance(t *testing.T) {
	ledger := &testutil.MockSubmitter{}
	wf := newWorkflow(t, ledger)
	fillValidRequest(t, wf)
	require.NoError(t, wf.Continue())
	_, err := wf.Proceed(context.Background())
	require.NoError(t, err)

	require.NoError(t, wf.Reset())

	// The discarded instance refuses everything.
	assert.ErrorIs(t, wf.SetAmount("10"), domainErrors.ErrWorkflowFinished)
	assert.ErrorIs(t, wf.Continue(), domainErrors.ErrWorkflowFinished)
	_, err = wf.Proceed(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrWorkflowFinished)
	assert.ErrorIs(t, wf.Reset(), domainErrors.ErrWorkflowFinished)

	// A fresh instance starts with an empty form, no residue.
	fresh := newWorkflow(t, ledger)
	snap := fresh.Snapshot()
	assert.Empty(t, snap.Request.SourceAccountID)
	assert.Empty(t, snap.Request.BeneficiaryID)
	assert.True(t, snap.Request.Amount.IsZero())
	assert.Empty(t, snap.Request.Memo)
	assert.Nil(t, snap.Receipt)
}

func TestSnapshot_DerivedAmountsTrackRequest(t *testing.T) {
	wf := newWorkflow(t, &testutil.MockSubmitter{})
	require.NoError(t, wf.SetAmount("1000"))

	snap := wf.Snapshot()
	assert.Equal(t, "1.5", snap.Derived.Tax.String())
	assert.Equal(t, "1001.5", snap.Derived.Total.String())

	require.NoError(t, wf.SetMethod(transfer.MethodLBTR))
	snap = wf.Snapshot()
	assert.Equal(t, "100", snap.Derived.Fee.String())
	assert.Equal(t, "1101.5", snap.Derived.Total.String())
}

func TestWorkflow_DegradedDirectory(t *testing.T) {
	src := &testutil.StaticSource{FetchAccountsErr: domainErrors.ErrDirectoryUnavailable}
	dir := directory.NewLoader(src, zerolog.Nop()).Load(context.Background(), testutil.TestUserID)

	wf := workflow.New(dir, &testutil.MockSubmitter{}, "", zerolog.Nop(), nil)

	snap := wf.Snapshot()
	assert.True(t, snap.Degraded)
	assert.Equal(t, workflow.StepForm, snap.Step)

	// Nothing selectable, so validation blocks the transition; the
	// workflow itself never crashes on a degraded directory.
	assert.ErrorIs(t, wf.Continue(), domainErrors.ErrValidationFailed)
}
