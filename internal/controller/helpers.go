package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
)

var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrWorkflowNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrWorkflowFinished, http.StatusGone, "workflow_finished"},
	{domainErrors.ErrAlreadyProcessing, http.StatusConflict, "already_processing"},
	{domainErrors.ErrInvalidStateTransition, http.StatusConflict, "invalid_state_transition"},
	{domainErrors.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domainErrors.ErrSubmitterUnavailable, http.StatusServiceUnavailable, "ledger_unavailable"},
	{domainErrors.ErrSubmitterTimeout, http.StatusGatewayTimeout, "ledger_timeout"},
	{domainErrors.ErrSubmissionFailed, http.StatusBadGateway, "submission_failed"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var fieldErr *domainErrors.FieldError
	if errors.As(err, &fieldErr) {
		resp.Code = "validation_error"
		resp.Fields = map[string]string{fieldErr.Field: fieldErr.Message}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			writeJSON(w, m.status, resp)
			return
		}
	}

	var domainErr *domainErrors.DomainError
	if errors.As(err, &domainErr) {
		resp.Code = domainErr.Code
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewFieldError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewFieldError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewFieldError("body", err.Error())
	}
	return nil
}
