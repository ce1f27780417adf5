package editor

import (
	"net/url"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
)

// ReportAccess is one role's view/export flags over every report template.
type ReportAccess struct {
	RoleID  int
	Reports []models.Report
}

func NewReportAccess(roleID int, reports []models.Report) *ReportAccess {
	return &ReportAccess{RoleID: roleID, Reports: reports}
}

// toggleView turns export off along with view.
func (a *ReportAccess) toggleView(reportID int) bool {
	for i := range a.Reports {
		if a.Reports[i].ID == reportID {
			a.Reports[i].CanView = !a.Reports[i].CanView
			if !a.Reports[i].CanView {
				a.Reports[i].CanExport = false
			}
			return true
		}
	}
	return false
}

// toggleExport only applies to exportable reports the role can view.
func (a *ReportAccess) toggleExport(reportID int) bool {
	for i := range a.Reports {
		r := &a.Reports[i]
		if r.ID == reportID {
			if !r.Exportable() || !r.CanView {
				return false
			}
			r.CanExport = !r.CanExport
			return true
		}
	}
	return false
}

func (a *ReportAccess) Entries() []models.ReportAccess {
	out := make([]models.ReportAccess, 0, len(a.Reports))
	for _, r := range a.Reports {
		out = append(out, models.ReportAccess{
			ReportTemplateID: r.ID,
			CanView:          r.CanView,
			CanExport:        r.CanView && r.Exportable() && r.CanExport,
		})
	}
	return out
}

// ApplyForm reads "report" (ids on screen), "view" and "export" (checked ids).
func (a *ReportAccess) ApplyForm(v url.Values) {
	shown := idSet(utils.FormInts(v, "report"))
	view := idSet(utils.FormInts(v, "view"))
	export := idSet(utils.FormInts(v, "export"))
	for i := range a.Reports {
		r := &a.Reports[i]
		if _, ok := shown[r.ID]; !ok {
			continue
		}
		if _, want := view[r.ID]; want != r.CanView {
			a.toggleView(r.ID)
		}
		_, want := export[r.ID]
		want = want && r.CanView && r.Exportable()
		if want != r.CanExport && !a.toggleExport(r.ID) {
			r.CanExport = false
		}
	}
}
