package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bancoademi/transfers/internal/directory"
	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
	"github.com/bancoademi/transfers/internal/domain/transfer"
	"github.com/bancoademi/transfers/internal/infrastructure/observability"
	"github.com/bancoademi/transfers/internal/submitter"
	"github.com/bancoademi/transfers/internal/workflow"
)

// TransferController exposes the third-party transfer workflow to the
// presentation shell. Workflow state is read-only from the shell's side;
// every mutation goes through an explicit operation below.
type TransferController struct {
	loader        *directory.Loader
	store         *workflow.Store
	ledger        submitter.Submitter
	sessionUserID string
	logger        zerolog.Logger
	metrics       *observability.Metrics
}

func NewTransferController(
	loader *directory.Loader,
	store *workflow.Store,
	ledger submitter.Submitter,
	sessionUserID string,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *TransferController {
	return &TransferController{
		loader:        loader,
		store:         store,
		ledger:        ledger,
		sessionUserID: sessionUserID,
		logger:        logger,
		metrics:       metrics,
	}
}

// Start handles POST /api/v1/transfers/third-party. The optional
// "beneficiario" query parameter deep-links a destination; ids outside the
// eligible set are silently ignored.
func (h *TransferController) Start(w http.ResponseWriter, r *http.Request) {
	dir := h.loader.Load(r.Context(), h.sessionUserID)
	if h.metrics != nil {
		result := "ok"
		if dir.Degraded() {
			result = "degraded"
		}
		h.metrics.DirectoryLoads.WithLabelValues(result).Inc()
	}

	wf := workflow.New(dir, h.ledger, r.URL.Query().Get("beneficiario"), h.logger, h.metrics)
	h.store.Put(wf)

	accounts := dir.Accounts()
	bens := dir.Beneficiaries()
	resp := StartWorkflowResponse{
		Workflow:      FromSnapshot(wf.Snapshot()),
		Accounts:      make([]AccountOption, 0, len(accounts)),
		Beneficiaries: make([]BeneficiaryOption, 0, len(bens)),
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, FromAccount(a))
	}
	for _, b := range bens {
		resp.Beneficiaries = append(resp.Beneficiaries, FromBeneficiary(b))
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /api/v1/transfers/third-party/{id}.
func (h *TransferController) Get(w http.ResponseWriter, r *http.Request) {
	wf, err := h.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromSnapshot(wf.Snapshot()))
}

// Update handles PATCH /api/v1/transfers/third-party/{id}: partial field
// edits while the workflow is in the form step.
func (h *TransferController) Update(w http.ResponseWriter, r *http.Request) {
	wf, err := h.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateFieldsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := applyUpdates(wf, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromSnapshot(wf.Snapshot()))
}

func applyUpdates(wf *workflow.Workflow, req UpdateFieldsRequest) error {
	if req.SourceAccountID != nil {
		if err := wf.SetSource(*req.SourceAccountID); err != nil {
			return err
		}
	}
	if req.BeneficiaryID != nil {
		if err := wf.SetBeneficiary(*req.BeneficiaryID); err != nil {
			return err
		}
	}
	if req.Amount != nil {
		if err := wf.SetAmount(*req.Amount); err != nil {
			return err
		}
	}
	if req.Memo != nil {
		if err := wf.SetMemo(*req.Memo); err != nil {
			return err
		}
	}
	if req.Method != nil {
		if err := wf.SetMethod(transfer.Method(*req.Method)); err != nil {
			return err
		}
	}
	return nil
}

// Continue handles POST /api/v1/transfers/third-party/{id}/continue: the
// guarded form -> confirm transition.
func (h *TransferController) Continue(w http.ResponseWriter, r *http.Request) {
	wf, err := h.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := wf.Continue(); err != nil {
		if errors.Is(err, domainErrors.ErrValidationFailed) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:  "validation failed",
				Code:   "validation_failed",
				Fields: wf.Snapshot().FieldErrors,
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromSnapshot(wf.Snapshot()))
}

// Back handles POST /api/v1/transfers/third-party/{id}/back: confirm -> form
// with all fields retained.
func (h *TransferController) Back(w http.ResponseWriter, r *http.Request) {
	wf, err := h.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := wf.Back(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromSnapshot(wf.Snapshot()))
}

// Proceed handles POST /api/v1/transfers/third-party/{id}/proceed: submits
// the confirmed transfer and returns the finalized receipt.
func (h *TransferController) Proceed(w http.ResponseWriter, r *http.Request) {
	wf, err := h.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := wf.Proceed(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromSnapshot(wf.Snapshot()))
}

// Reset handles POST /api/v1/transfers/third-party/{id}/reset: discards the
// instance. Any later call on the same id is a 404.
func (h *TransferController) Reset(w http.ResponseWriter, r *http.Request) {
	wf, err := h.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := wf.Reset(); err != nil {
		writeError(w, err)
		return
	}
	h.store.Remove(wf.ID())
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransferController) lookup(r *http.Request) (*workflow.Workflow, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, domainErrors.ErrWorkflowNotFound
	}
	return h.store.Get(id)
}
