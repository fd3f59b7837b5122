package controller

import (
	"net/http"

	"github.com/bancoademi/transfers/internal/directory"
)

// CatalogController serves the filtered account and beneficiary catalogs
// directly, for shells that render selector widgets before starting a
// workflow.
type CatalogController struct {
	loader        *directory.Loader
	sessionUserID string
}

func NewCatalogController(loader *directory.Loader, sessionUserID string) *CatalogController {
	return &CatalogController{loader: loader, sessionUserID: sessionUserID}
}

// Accounts handles GET /api/v1/catalog/accounts.
func (h *CatalogController) Accounts(w http.ResponseWriter, r *http.Request) {
	dir := h.loader.Load(r.Context(), h.sessionUserID)
	out := make([]AccountOption, 0, len(dir.Accounts()))
	for _, a := range dir.Accounts() {
		out = append(out, FromAccount(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accounts": out,
		"degraded": dir.Degraded(),
	})
}

// Beneficiaries handles GET /api/v1/catalog/beneficiaries.
func (h *CatalogController) Beneficiaries(w http.ResponseWriter, r *http.Request) {
	dir := h.loader.Load(r.Context(), h.sessionUserID)
	out := make([]BeneficiaryOption, 0, len(dir.Beneficiaries()))
	for _, b := range dir.Beneficiaries() {
		out = append(out, FromBeneficiary(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"beneficiaries": out,
		"degraded":      dir.Degraded(),
	})
}
