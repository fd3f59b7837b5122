// Package workflow drives one third-party transfer from an editable form
// through confirmation to a finalized receipt. Each instance owns its request
// exclusively; completed or reset instances are discarded, never reused.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bancoademi/transfers/internal/directory"
	"github.com/bancoademi/transfers/internal/domain/account"
	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
	"github.com/bancoademi/transfers/internal/domain/transfer"
	"github.com/bancoademi/transfers/internal/infrastructure/observability"
	"github.com/bancoademi/transfers/internal/submitter"
)

// Step is the workflow's visible state.
type Step string

const (
	StepForm    Step = "form"
	StepConfirm Step = "confirm"
	StepSuccess Step = "success"
)

// Workflow is one in-progress transfer. All methods are safe for concurrent
// use; a single mutex serializes every transition, which also implements the
// processing guard: at most one submission is ever in flight.
type Workflow struct {
	mu sync.Mutex

	id  uuid.UUID
	dir *directory.Directory
	req *transfer.Request

	step        Step
	fieldErrors map[string]string
	submitError string
	processing  bool
	finished    bool
	receipt     *transfer.Receipt

	ledger  submitter.Submitter
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// New starts a workflow over an already loaded directory. The optional
// preselect id seeds the destination only when it names an eligible
// beneficiary; anything else is silently ignored.
func New(dir *directory.Directory, ledger submitter.Submitter, preselectBeneficiaryID string, logger zerolog.Logger, metrics *observability.Metrics) *Workflow {
	req := transfer.NewRequest()
	req.BeneficiaryID = dir.Preselect(preselectBeneficiaryID)

	w := &Workflow{
		id:          uuid.New(),
		dir:         dir,
		req:         req,
		step:        StepForm,
		fieldErrors: make(map[string]string),
		ledger:      ledger,
		logger:      logger,
		metrics:     metrics,
	}

	if metrics != nil {
		metrics.TransfersStarted.Inc()
		metrics.ActiveWorkflows.Inc()
	}
	return w
}

// ID returns the workflow instance id.
func (w *Workflow) ID() uuid.UUID {
	return w.id
}

// Directory returns the catalog view this workflow selects from.
func (w *Workflow) Directory() *directory.Directory {
	return w.dir
}

// SetSource selects the source account. Only the source field's error is
// cleared; other surfaced errors stay put.
func (w *Workflow) SetSource(accountID string) error {
	return w.mutate(func() {
		w.req.SourceAccountID = accountID
		delete(w.fieldErrors, transfer.FieldSource)
	})
}

// SetBeneficiary selects the destination payee and clears only that field's
// error.
func (w *Workflow) SetBeneficiary(beneficiaryID string) error {
	return w.mutate(func() {
		w.req.BeneficiaryID = beneficiaryID
		delete(w.fieldErrors, transfer.FieldDestination)
	})
}

// SetAmount accepts raw amount input, sanitizes it down to digits and a
// single decimal point and stores the parsed decimal. The raw formatted
// string is never kept.
func (w *Workflow) SetAmount(raw string) error {
	amount, err := transfer.ParseAmount(raw)
	if err != nil {
		return err
	}
	return w.mutate(func() {
		w.req.Amount = amount
		delete(w.fieldErrors, transfer.FieldAmount)
	})
}

// SetMemo updates the free-text memo.
func (w *Workflow) SetMemo(memo string) error {
	return w.mutate(func() {
		w.req.Memo = memo
	})
}

// SetMethod selects the settlement method.
func (w *Workflow) SetMethod(m transfer.Method) error {
	if !m.Valid() {
		return domainErrors.NewDomainError("invalid_method", "unknown settlement method "+string(m), domainErrors.ErrInvalidInput)
	}
	return w.mutate(func() {
		w.req.Method = m
	})
}

// mutate applies a field edit; edits are only legal in the form step.
func (w *Workflow) mutate(apply func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return domainErrors.ErrWorkflowFinished
	}
	if w.step != StepForm {
		return domainErrors.ErrInvalidStateTransition
	}
	apply()
	return nil
}

// Continue attempts the form -> confirm transition. When validation fails the
// workflow stays in the form step, surfaces the error map and nothing else
// happens.
func (w *Workflow) Continue() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return domainErrors.ErrWorkflowFinished
	}
	if w.step != StepForm {
		return domainErrors.ErrInvalidStateTransition
	}

	var src *account.Account
	if a, ok := w.dir.Account(w.req.SourceAccountID); ok {
		src = &a
	}

	errs := transfer.Validate(w.req, src)
	if len(errs) > 0 {
		w.fieldErrors = errs
		if w.metrics != nil {
			for field := range errs {
				w.metrics.ValidationErrors.WithLabelValues(field).Inc()
			}
		}
		return domainErrors.ErrValidationFailed
	}

	w.fieldErrors = make(map[string]string)
	w.step = StepConfirm
	return nil
}

// Back returns from the confirmation summary to the editable form. Request
// fields are retained unchanged; any surfaced submission error is cleared.
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return domainErrors.ErrWorkflowFinished
	}
	if w.step != StepConfirm {
		return domainErrors.ErrInvalidStateTransition
	}
	if w.processing {
		return domainErrors.ErrAlreadyProcessing
	}
	w.step = StepForm
	w.submitError = ""
	return nil
}

// Proceed submits the confirmed transfer to the ledger. Exactly one receipt
// is produced per completed transition; re-entrant calls while a submission
// is in flight are rejected. On ledger failure the workflow returns to the
// confirm step with the error surfaced, never stuck in processing.
func (w *Workflow) Proceed(ctx context.Context) (*transfer.Receipt, error) {
	w.mu.Lock()
	if w.finished {
		w.mu.Unlock()
		return nil, domainErrors.ErrWorkflowFinished
	}
	if w.processing {
		w.mu.Unlock()
		return nil, domainErrors.ErrAlreadyProcessing
	}
	if w.step != StepConfirm {
		w.mu.Unlock()
		return nil, domainErrors.ErrInvalidStateTransition
	}

	src, srcOK := w.dir.Account(w.req.SourceAccountID)
	dst, dstOK := w.dir.Beneficiary(w.req.BeneficiaryID)
	if !srcOK || !dstOK {
		// Confirm is only reachable through validation, so both must
		// resolve; a miss means the instance was tampered with.
		w.mu.Unlock()
		return nil, domainErrors.ErrInvalidStateTransition
	}

	w.processing = true
	derived := transfer.Derive(w.req.Amount, w.req.Method)
	subReq := submitter.Request{
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Amount:               w.req.Amount,
		Total:                derived.Total,
		Currency:             src.Currency,
		Method:               string(w.req.Method),
		Memo:                 w.req.Memo,
	}
	w.mu.Unlock()

	started := time.Now()
	result, err := w.ledger.Submit(ctx, subReq)
	elapsed := time.Since(started).Seconds()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.processing = false

	if err != nil {
		w.submitError = err.Error()
		w.observeSubmission("failed", elapsed)
		w.logger.Error().Err(err).Str("workflow_id", w.id.String()).Msg("transfer submission failed")
		return nil, domainErrors.NewDomainError("submission_failed", "ledger rejected transfer", err)
	}

	w.receipt = transfer.NewReceipt(w.req, src, dst, result.Reference, result.CompletedAt)
	w.step = StepSuccess
	w.submitError = ""
	w.observeSubmission("completed", elapsed)
	w.logger.Info().
		Str("workflow_id", w.id.String()).
		Str("reference", result.Reference).
		Str("method", string(w.req.Method)).
		Msg("transfer completed")
	return w.receipt, nil
}

func (w *Workflow) observeSubmission(outcome string, seconds float64) {
	if w.metrics == nil {
		return
	}
	method := string(w.req.Method)
	w.metrics.TransfersTotal.WithLabelValues(method, outcome).Inc()
	w.metrics.SubmissionDuration.WithLabelValues(method, outcome).Observe(seconds)
}

// Reset discards the instance. All request state is dropped and every later
// call fails; a subsequent transfer needs a fresh workflow.
func (w *Workflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return domainErrors.ErrWorkflowFinished
	}
	if w.processing {
		return domainErrors.ErrAlreadyProcessing
	}

	w.finished = true
	w.req = transfer.NewRequest()
	w.fieldErrors = make(map[string]string)
	w.submitError = ""
	w.receipt = nil
	if w.metrics != nil {
		w.metrics.ActiveWorkflows.Dec()
	}
	return nil
}

// Snapshot is the read-only projection the presentation shell renders.
type Snapshot struct {
	ID          uuid.UUID
	Step        Step
	Request     transfer.Request
	Derived     transfer.DerivedAmounts
	FieldErrors map[string]string
	SubmitError string
	Processing  bool
	Degraded    bool
	Receipt     *transfer.Receipt
}

// Snapshot returns a consistent copy of the current state. Derived amounts
// are recomputed from the request on every call, never cached.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	errsCopy := make(map[string]string, len(w.fieldErrors))
	for k, v := range w.fieldErrors {
		errsCopy[k] = v
	}

	return Snapshot{
		ID:          w.id,
		Step:        w.step,
		Request:     *w.req,
		Derived:     transfer.Derive(w.req.Amount, w.req.Method),
		FieldErrors: errsCopy,
		SubmitError: w.submitError,
		Processing:  w.processing,
		Degraded:    w.dir.Degraded(),
		Receipt:     w.receipt,
	}
}
