// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/deskintel/internal/models"
	"github.com/tomtom215/deskintel/internal/reports"
	"github.com/tomtom215/deskintel/internal/validation"
)

// ReportRequest is the validated path parameter of /api/v1/reports/{name}.
type ReportRequest struct {
	Name string `validate:"required,oneof=funnel utilization propensity" label:"report"`
}

// ListReports returns the available report names in dashboard order.
//
// @Summary List reports
// @Description Returns the report names accepted by /reports/{name}, in dashboard order.
// @Tags Reports
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]string} "Report names"
// @Router /reports [get]
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, reports.Names, models.Metadata{})
}

// Report returns one report as its display table. Funnel and utilization
// responses also carry the typed rows with unformatted numbers.
//
// @Summary Get a report
// @Description Runs, or serves from the memo, one report and returns its display table.
// @Description A failed connection yields an empty table; a failed query yields 503.
// @Tags Reports
// @Produce json
// @Param name path string true "Report name" Enums(funnel, utilization, propensity)
// @Success 200 {object} models.APIResponse{data=models.ReportData} "Report table"
// @Failure 400 {object} models.APIResponse "Unknown report name"
// @Failure 503 {object} models.APIResponse "Report query failed"
// @Router /reports/{name} [get]
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	req := ReportRequest{Name: strings.ToLower(chi.URLParam(r, "name"))}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, verr.Error(), nil)
		return
	}

	cached := h.reports.Cached(req.Name)
	start := time.Now()

	report, err := h.reports.ByName(r.Context(), req.Name)
	if err != nil {
		respondDataAccessError(w, err)
		return
	}

	meta := models.Metadata{Cached: cached}
	if !cached {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}
	respondSuccess(w, reportData(req.Name, report), meta)
}

func reportData(name string, report reports.Displayer) models.ReportData {
	tbl := report.Display()
	data := models.ReportData{
		Report:  name,
		Columns: tbl.Columns,
		Rows:    tbl.Rows,
		Count:   tbl.Len(),
	}
	if data.Rows == nil {
		data.Rows = [][]interface{}{}
	}

	switch rep := report.(type) {
	case *reports.FunnelReport:
		data.Typed = rep.Rows
	case *reports.UtilizationReport:
		data.Typed = rep.Rows
	}
	return data
}
