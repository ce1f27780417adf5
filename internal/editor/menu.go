package editor

import (
	"net/url"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
)

// MenuVisibility is one role's sidebar tree: parents with one level of
// children, each with a visible flag.
type MenuVisibility struct {
	RoleID int
	Items  []models.MenuItem
}

func NewMenuVisibility(roleID int, items []models.MenuItem) *MenuVisibility {
	return &MenuVisibility{RoleID: roleID, Items: items}
}

// toggle flips the item with the given id, wherever it sits in the tree.
func (m *MenuVisibility) toggle(itemID int) bool {
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			m.Items[i].IsVisible = !m.Items[i].IsVisible
			return true
		}
		children := m.Items[i].Children
		for j := range children {
			if children[j].ID == itemID {
				children[j].IsVisible = !children[j].IsVisible
				return true
			}
		}
	}
	return false
}

// Entries lists each parent followed by its children.
func (m *MenuVisibility) Entries() []models.MenuVisibility {
	var out []models.MenuVisibility
	for _, it := range m.Items {
		out = append(out, models.MenuVisibility{MenuItemID: it.ID, IsVisible: it.IsVisible})
		for _, ch := range it.Children {
			out = append(out, models.MenuVisibility{MenuItemID: ch.ID, IsVisible: ch.IsVisible})
		}
	}
	return out
}

func (m *MenuVisibility) VisibleCount() int {
	n := 0
	for _, e := range m.Entries() {
		if e.IsVisible {
			n++
		}
	}
	return n
}

// ApplyForm reads "item" (ids on screen) and "visible" (checked ids).
func (m *MenuVisibility) ApplyForm(v url.Values) {
	shown := idSet(utils.FormInts(v, "item"))
	visible := idSet(utils.FormInts(v, "visible"))
	var flip []int
	check := func(it models.MenuItem) {
		if _, ok := shown[it.ID]; !ok {
			return
		}
		if _, want := visible[it.ID]; want != it.IsVisible {
			flip = append(flip, it.ID)
		}
	}
	for _, it := range m.Items {
		check(it)
		for _, ch := range it.Children {
			check(ch)
		}
	}
	for _, id := range flip {
		m.toggle(id)
	}
}
