package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/editor"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/reports"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

type ReportsHTTP struct {
	*Base
}

func NewReportsHTTP(b *Base) *ReportsHTTP { return &ReportsHTTP{Base: b} }

const reportsPath = "/reports"

func reportFilters(v url.Values) models.ReportFilters {
	return models.ReportFilters{
		DateFrom: strings.TrimSpace(v.Get("dateFrom")),
		DateTo:   strings.TrimSpace(v.Get("dateTo")),
		Area:     strings.TrimSpace(v.Get("area")),
		Priority: strings.TrimSpace(v.Get("priority")),
	}
}

func filterQuery(f models.ReportFilters) string {
	v := url.Values{}
	for k, val := range f.Params() {
		v.Set(k, val)
	}
	return v.Encode()
}

// available lists the user's reports with parsed configs. Reports whose
// config is unusable are logged and left out.
func (h *ReportsHTTP) available(r *http.Request) ([]models.Report, error) {
	list, err := h.API.ListReports(r.Context())
	if err != nil {
		return nil, err
	}
	ok, skipped := reports.Prepare(list)
	for _, err := range skipped {
		h.Log.Warn().Err(err).Msg("skipping report")
	}
	return ok, nil
}

// GET /reports
func (h *ReportsHTTP) Page() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.available(r)
		if err != nil {
			h.loadFailed(w, r, err, "Reports could not be loaded")
			return
		}
		f := reportFilters(r.URL.Query())
		page := reports.Load(r.Context(), h.API, reports.Group(list), f)
		if h.cardsUnauthorized(w, r, page) {
			return
		}

		areas, err := h.API.AllAreas(r.Context())
		if err != nil {
			h.Log.Warn().Err(err).Msg("load areas")
		}
		h.render(w, r, http.StatusOK, "reports.html", views.Data{
			"page":         page,
			"filters":      f,
			"filter_query": filterQuery(f),
			"priorities":   models.Priorities,
			"areas":        areas,
		})
	}
}

// cardsUnauthorized ends the session when any card load got a 401; the
// other card errors are only logged.
func (h *ReportsHTTP) cardsUnauthorized(w http.ResponseWriter, r *http.Request, p reports.Page) bool {
	var errs []error
	for _, c := range p.Metrics {
		errs = append(errs, c.Err)
	}
	for _, c := range p.Charts {
		errs = append(errs, c.Err)
	}
	for _, c := range p.Tables {
		errs = append(errs, c.Err)
	}
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.expired(w, r)
			return true
		}
		h.Log.Warn().Err(err).Msg("report card failed")
	}
	return false
}

// GET /reports/{key}/download streams a table report as XLSX, or CSV with
// format=csv.
func (h *ReportsHTTP) Download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.available(r)
		if err != nil {
			h.fail(w, r, err, "Reports could not be loaded", reportsPath)
			return
		}
		rep, ok := reports.Find(list, chi.URLParam(r, "key"))
		if !ok || rep.Type != models.ReportTable {
			h.notFound(w, r)
			return
		}
		if !rep.CanExport {
			session.SetFlash(w, flashError, "You are not allowed to export this report")
			utils.Redirect(w, r, reportsPath)
			return
		}

		f := reportFilters(r.URL.Query())
		rows, err := h.API.ReportTable(r.Context(), rep.Config.Endpoint, f)
		if err != nil {
			h.fail(w, r, err, "The report could not be loaded", reportsPath)
			return
		}
		table := reports.NewTable(rep.Config.Columns, rows)

		var buf bytes.Buffer
		name := rep.Key
		ctype := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if r.URL.Query().Get("format") == "csv" {
			err = table.WriteCSV(&buf)
			name += ".csv"
			ctype = "text/csv; charset=utf-8"
		} else {
			err = table.WriteXLSX(&buf, rep.Name)
			name += ".xlsx"
		}
		if err != nil {
			h.Log.Error().Err(err).Str("report", rep.Key).Msg("write report file")
			h.fail(w, r, err, "The file could not be generated", reportsPath)
			return
		}
		w.Header().Set("Content-Type", ctype)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		_, _ = buf.WriteTo(w)
	}
}

// POST /reports/{key}/export asks the API for a file and sends the
// browser to it. Reports without export access are refused here.
func (h *ReportsHTTP) Export() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		list, err := h.available(r)
		if err != nil {
			h.fail(w, r, err, "Reports could not be loaded", reportsPath)
			return
		}
		rep, ok := reports.Find(list, chi.URLParam(r, "key"))
		if !ok {
			h.notFound(w, r)
			return
		}
		if !rep.CanExport {
			session.SetFlash(w, flashError, "You are not allowed to export this report")
			utils.Redirect(w, r, reportsPath)
			return
		}
		format := r.PostForm.Get("format")
		if !reports.CanExportFormat(rep, format) {
			session.SetFlash(w, flashError, "This report cannot be exported in that format")
			utils.Redirect(w, r, reportsPath)
			return
		}

		res, err := h.API.ExportReport(r.Context(), rep.Config.Endpoint, reportFilters(r.URL.Query()), format)
		if err != nil {
			h.fail(w, r, err, "The export could not be generated", reportsPath)
			return
		}
		if res.DownloadURL == "" {
			h.done(w, r, "The export was requested", reportsPath)
			return
		}
		http.Redirect(w, r, res.DownloadURL, http.StatusSeeOther)
	}
}

// -----------------------------------------------------------------------------
// Per-role report access
// -----------------------------------------------------------------------------

const reportsConfigPath = "/admin/reports-config"

// GET /admin/reports-config
func (h *ReportsHTTP) ConfigPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := h.API.ListRoles(r.Context())
		if err != nil {
			h.loadFailed(w, r, err, "Roles could not be loaded")
			return
		}
		data := views.Data{"roles": roles}
		if sel := findRole(roles, utils.QueryInt(r.URL.Query(), "role", 0)); sel != nil {
			list, err := h.API.RoleReports(r.Context(), sel.ID)
			if err != nil {
				h.loadFailed(w, r, err, "The role's reports could not be loaded")
				return
			}
			data["selected"] = sel
			data["access"] = editor.NewReportAccess(sel.ID, list)
		}
		h.render(w, r, http.StatusOK, "admin_reports_config.html", data)
	}
}

// POST /admin/reports-config/{id}
func (h *ReportsHTTP) SaveConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		back := fmt.Sprintf("%s?role=%d", reportsConfigPath, id)

		list, err := h.API.RoleReports(r.Context(), id)
		if err != nil {
			h.fail(w, r, err, "The role's reports could not be loaded", back)
			return
		}
		access := editor.NewReportAccess(id, list)
		access.ApplyForm(r.PostForm)
		if err := h.API.SaveRoleReports(r.Context(), id, access.Entries()); err != nil {
			h.fail(w, r, err, "Report access could not be saved", back)
			return
		}
		h.done(w, r, "Report access saved", back)
	}
}
