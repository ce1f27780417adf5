package editor

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

func sampleModules() []models.Module {
	return []models.Module{
		{ID: 1, Name: "tickets", Permissions: []models.Permission{
			{ID: 10, Name: "tickets.read", IsGranted: true},
			{ID: 11, Name: "tickets.create", IsGranted: false},
		}},
		{ID: 2, Name: "users", Permissions: []models.Permission{
			{ID: 20, Name: "users.read", IsGranted: false},
		}},
	}
}

func TestMatrixToggleIsLocal(t *testing.T) {
	m := NewPermissionMatrix(4, sampleModules())
	assert.True(t, m.toggle(1, 11))
	assert.False(t, m.toggle(2, 11), "permission belongs to another module")

	assert.Equal(t, []models.PermissionGrant{
		{PermissionID: 10, IsGranted: true},
		{PermissionID: 11, IsGranted: true},
		{PermissionID: 20, IsGranted: false},
	}, m.Grants())
	assert.Equal(t, 2, m.GrantedCount())
	assert.Equal(t, 3, m.Count())
}

func TestMatrixApplyFormCoversEveryPermission(t *testing.T) {
	m := NewPermissionMatrix(4, sampleModules())
	m.ApplyForm(url.Values{
		"perm":  {"10", "11", "20"},
		"grant": {"20"},
	})
	assert.Equal(t, []models.PermissionGrant{
		{PermissionID: 10, IsGranted: false},
		{PermissionID: 11, IsGranted: false},
		{PermissionID: 20, IsGranted: true},
	}, m.Grants())
}

func TestMatrixApplyFormKeepsUnshown(t *testing.T) {
	m := NewPermissionMatrix(4, sampleModules())
	m.ApplyForm(url.Values{"perm": {"11"}, "grant": {"11"}})
	g := m.Grants()
	assert.True(t, g[0].IsGranted)
	assert.True(t, g[1].IsGranted)
	assert.False(t, g[2].IsGranted)
}

func sampleMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Key: "dashboard", IsVisible: true},
		{ID: 2, Key: "admin", IsVisible: true, Children: []models.MenuItem{
			{ID: 3, Key: "users", IsVisible: true},
			{ID: 4, Key: "areas", IsVisible: false},
		}},
	}
}

func TestMenuVisibility(t *testing.T) {
	mv := NewMenuVisibility(2, sampleMenu())
	assert.True(t, mv.toggle(4))
	assert.True(t, mv.toggle(1))
	assert.False(t, mv.toggle(99))
	assert.Equal(t, []models.MenuVisibility{
		{MenuItemID: 1, IsVisible: false},
		{MenuItemID: 2, IsVisible: true},
		{MenuItemID: 3, IsVisible: true},
		{MenuItemID: 4, IsVisible: true},
	}, mv.Entries())
	assert.Equal(t, 3, mv.VisibleCount())

	mv.ApplyForm(url.Values{"item": {"1", "2", "3", "4"}, "visible": {"1"}})
	assert.Equal(t, 1, mv.VisibleCount())
}

func TestReportAccess(t *testing.T) {
	ra := NewReportAccess(1, []models.Report{
		{ID: 1, Type: models.ReportMetric, CanView: true},
		{ID: 2, Type: models.ReportTable},
	})
	assert.False(t, ra.toggleExport(1), "metrics cannot be exported")
	assert.False(t, ra.toggleExport(2), "must be viewable first")
	assert.True(t, ra.toggleView(2))
	assert.True(t, ra.toggleExport(2))
	assert.Equal(t, []models.ReportAccess{
		{ReportTemplateID: 1, CanView: true},
		{ReportTemplateID: 2, CanView: true, CanExport: true},
	}, ra.Entries())

	ra.toggleView(2)
	assert.False(t, ra.Entries()[1].CanExport)

	ra.ApplyForm(url.Values{"report": {"1", "2"}, "view": {"2"}, "export": {"1", "2"}})
	assert.Equal(t, []models.ReportAccess{
		{ReportTemplateID: 1, CanView: false},
		{ReportTemplateID: 2, CanView: true, CanExport: true},
	}, ra.Entries())
}

func TestUserOverridesWin(t *testing.T) {
	up := models.UserPermissions{
		RolePermissions: []models.Permission{
			{ID: 10, Pivot: &models.Pivot{IsGranted: true}},
			{ID: 11, Pivot: &models.Pivot{IsGranted: true}},
		},
		UserPermissions: []models.Permission{
			{ID: 11, Pivot: &models.Pivot{IsGranted: false}},
			{ID: 20, Pivot: &models.Pivot{IsGranted: true}},
		},
	}
	o := NewUserOverrides(up)
	res := o.Resolve(sampleModules())

	states := map[int]PermissionState{}
	for _, ms := range res {
		for _, s := range ms.States {
			states[s.Permission.ID] = s
		}
	}
	assert.Equal(t, PermissionState{Permission: states[10].Permission, Granted: true, Source: SourceRole}, states[10])
	assert.False(t, states[11].Granted)
	assert.Equal(t, SourceOverride, states[11].Source)
	assert.True(t, states[20].Granted)
	assert.Equal(t, 2, o.OverrideCount())
	assert.Len(t, RoleGranted(up), 2)
}

func TestReportAccessApplyFormDropsStaleExport(t *testing.T) {
	ra := NewReportAccess(1, []models.Report{
		{ID: 1, Type: models.ReportMetric, CanView: true, CanExport: true},
		{ID: 2, Type: models.ReportExport, CanView: true, CanExport: true},
	})
	ra.ApplyForm(url.Values{"report": {"1", "2"}, "view": {"1"}, "export": {"2"}})
	assert.Equal(t, []models.ReportAccess{
		{ReportTemplateID: 1, CanView: true},
		{ReportTemplateID: 2, CanView: false},
	}, ra.Entries())
	assert.False(t, ra.Reports[0].CanExport)
}

func TestMenuApplyFormLeavesUnshownItems(t *testing.T) {
	mv := NewMenuVisibility(2, sampleMenu())
	mv.ApplyForm(url.Values{"item": {"2", "4"}, "visible": {"4"}})
	assert.Equal(t, []models.MenuVisibility{
		{MenuItemID: 1, IsVisible: true},
		{MenuItemID: 2, IsVisible: false},
		{MenuItemID: 3, IsVisible: true},
		{MenuItemID: 4, IsVisible: true},
	}, mv.Entries())
}
