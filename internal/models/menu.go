package models

type MenuMetadata struct {
	Badge string `json:"badge,omitempty"`
	Color string `json:"color,omitempty"`
}

type MenuItem struct {
	ID        int           `json:"id"`
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Icon      string        `json:"icon"`
	Route     string        `json:"route"`
	ParentID  *int          `json:"parent_id,omitempty"`
	Order     int           `json:"order"`
	IsActive  bool          `json:"is_active"`
	IsSystem  bool          `json:"is_system"`
	Metadata  *MenuMetadata `json:"metadata,omitempty"`
	Children  []MenuItem    `json:"children,omitempty"`
	IsVisible bool          `json:"is_visible,omitempty"`
}

func (m MenuItem) HasChildren() bool { return len(m.Children) > 0 }

type MenuVisibility struct {
	MenuItemID int  `json:"menu_item_id"`
	IsVisible  bool `json:"is_visible"`
}
