package report

import (
	"errors"
	"net/http"

	"github.com/Crombex/sales-bonus/internal/common"
	"github.com/Crombex/sales-bonus/internal/dataset"
	"github.com/Crombex/sales-bonus/internal/sales"
)

// Handler exposes the report read endpoints.
type Handler struct {
	Svc *Service
}

// Sellers returns the ranked seller report. An optional limit query
// parameter truncates the response to the first n sellers.
func (h *Handler) Sellers(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORT_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	rows, err := h.Svc.Sellers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if limit := common.AtoiDefault(r.URL.Query().Get("limit"), 0); limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Overview returns cross-seller totals for dashboards.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORT_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	overview, err := h.Svc.TotalsOverview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": overview})
}

func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	switch {
	case errors.Is(err, sales.ErrUnknownSeller), errors.Is(err, sales.ErrUnknownProduct), errors.Is(err, dataset.ErrInvalidDataset):
		common.JSONError(w, http.StatusUnprocessableEntity, "DATASET_INVALID", err.Error(), nil)
	case errors.Is(err, sales.ErrInvalidInput):
		common.JSONError(w, http.StatusInternalServerError, "REPORT_MISCONFIGURED", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "REPORT_ERROR", err.Error(), nil)
	}
}
