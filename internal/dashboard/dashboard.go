// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package dashboard renders the single-page dashboard: metric cards and the
// three report tabs.
//
// The page is the error boundary for report failures. A query error from
// any report replaces the body with its message, and an empty funnel
// replaces it with MessageDataLoadFailed. Connection and configuration
// failures reach the page through the NoticeBoard.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tomtom215/deskintel/internal/database"
	"github.com/tomtom215/deskintel/internal/logging"
	"github.com/tomtom215/deskintel/internal/metrics"
	"github.com/tomtom215/deskintel/internal/reports"
)

//go:embed templates/*
var templatesFS embed.FS

// ReportSource supplies the three reports. *reports.Service implements it.
type ReportSource interface {
	Funnel(ctx context.Context) (*reports.FunnelReport, error)
	Utilization(ctx context.Context) (*reports.UtilizationReport, error)
	Propensity(ctx context.Context) (*reports.PropensityReport, error)
}

// Section is a tab with the table it shows.
type Section struct {
	Tab
	Table *database.Table
}

// Page is the template data.
type Page struct {
	PageTitle   string
	Title       string
	Subheader   string
	Notices     []Notice
	Error       string
	MetricsHead string
	Metrics     []MetricCard
	Takeaways   string
	Sections    []Section
}

// Render outcomes, recorded in deskintel_dashboard_renders_total.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Renderer builds and writes the dashboard page.
type Renderer struct {
	reports ReportSource
	notices *NoticeBoard
	tmpl    *template.Template
}

// New parses the embedded templates. notices may be nil.
func New(src ReportSource, notices *NoticeBoard) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(templateFuncMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}
	if notices == nil {
		notices = NewNoticeBoard()
	}
	return &Renderer{reports: src, notices: notices, tmpl: tmpl}, nil
}

// Notices returns the board the renderer reads from.
func (r *Renderer) Notices() *NoticeBoard {
	return r.notices
}

// Build loads every report and assembles the page. The outcome is one of
// OutcomeOK, OutcomeEmpty, OutcomeError.
func (r *Renderer) Build(ctx context.Context) (*Page, string) {
	page, outcome := r.assemble(ctx)
	// Read after the reports run: the first one may be what constructs the
	// handle and reports its failure.
	page.Notices = r.notices.Notices()
	return page, outcome
}

func (r *Renderer) assemble(ctx context.Context) (*Page, string) {
	page := &Page{
		PageTitle: PageTitle,
		Title:     Title,
		Subheader: Subheader,
	}

	funnel, err := r.reports.Funnel(ctx)
	if err != nil {
		return r.failed(ctx, page, err), OutcomeError
	}
	propensity, err := r.reports.Propensity(ctx)
	if err != nil {
		return r.failed(ctx, page, err), OutcomeError
	}
	utilization, err := r.reports.Utilization(ctx)
	if err != nil {
		return r.failed(ctx, page, err), OutcomeError
	}

	if funnel.Empty() {
		page.Error = MessageDataLoadFailed
		return page, OutcomeEmpty
	}

	page.MetricsHead = MetricsHead
	page.Metrics = metricCards()
	page.Takeaways = takeawaysHead

	tables := map[string]*database.Table{
		"propensity":  propensity.Display(),
		"funnel":      funnel.Display(),
		"utilization": utilization.Display().Head(utilizationRows),
	}
	for _, tab := range tabs {
		page.Sections = append(page.Sections, Section{Tab: tab, Table: tables[tab.ID]})
	}
	return page, OutcomeOK
}

func (r *Renderer) failed(ctx context.Context, page *Page, err error) *Page {
	logging.Ctx(ctx).Error().Err(err).Msg("Dashboard report failed")

	var dae *database.DataAccessError
	if errors.As(err, &dae) {
		page.Error = dae.Error()
	} else {
		page.Error = "Error loading report: " + err.Error()
	}
	return page
}

// ServeHTTP renders the page. A report failure is rendered as an error page
// with status 503; an empty funnel is a normal 200 page.
func (r *Renderer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	page, outcome := r.Build(req.Context())
	metrics.DashboardRenders.WithLabelValues(outcome).Inc()

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "dashboard.html", page); err != nil {
		logging.Ctx(req.Context()).Error().Err(err).Msg("Failed to render dashboard template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if outcome == OutcomeError {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_, _ = buf.WriteTo(w)
}
