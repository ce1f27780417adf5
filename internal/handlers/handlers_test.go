package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

func ticket(status, priority string) models.Ticket {
	return models.Ticket{Status: models.TicketStatus{Name: status}, Priority: priority}
}

func TestTicketStats(t *testing.T) {
	s := TicketStats([]models.Ticket{
		ticket("open", "alta"),
		ticket("open", "baja"),
		ticket("closed", "alta"),
		ticket("in_progress", "urgent"),
	})
	assert.Equal(t, 4, s.Total)

	require.Len(t, s.ByStatus, 3)
	assert.Equal(t, Count{Label: "closed", Count: 1, Percent: 25}, s.ByStatus[0])
	assert.Equal(t, Count{Label: "open", Count: 2, Percent: 50}, s.ByStatus[2])

	labels := make([]string, 0, len(s.ByPriority))
	for _, c := range s.ByPriority {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"baja", "alta", "urgent"}, labels)
}

func TestTicketStatsEmpty(t *testing.T) {
	s := TicketStats(nil)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.ByStatus)
}

func TestAgentsSkipsRequestersAndInactive(t *testing.T) {
	role := func(n string) *models.RoleRef { return &models.RoleRef{Name: n} }
	got := Agents([]models.User{
		{ID: 1, IsActive: true, Role: role("agente")},
		{ID: 2, IsActive: true, Role: role("usuario")},
		{ID: 3, IsActive: false, Role: role("admin")},
		{ID: 4, IsActive: true, Role: role("user")},
		{ID: 5, IsActive: true, Role: role("admin")},
	})
	ids := []int{}
	for _, u := range got {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []int{1, 5}, ids)
}

func TestCountChanges(t *testing.T) {
	yes, no := true, false
	c := CountChanges([]models.PermissionChangeLog{
		{ChangeType: models.ChangeRolePermission, NewValue: &yes},
		{ChangeType: models.ChangeRolePermission, NewValue: &no},
		{ChangeType: models.ChangeUserPermission, NewValue: &yes},
		{ChangeType: models.ChangeUserPermission},
	})
	assert.Equal(t, AuditCounts{Granted: 2, Revoked: 2, Role: 2, User: 2}, c)
}

func TestFilterQueryKeepsOnlySetFilters(t *testing.T) {
	q := filterQuery(models.ReportFilters{DateFrom: "2024-01-01", Priority: "alta"})
	assert.Contains(t, q, "dateFrom=2024-01-01")
	assert.Contains(t, q, "priority=alta")
	assert.NotContains(t, q, "area")
}
