package models

import "time"

type AreaRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RoleRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Level       int    `json:"level,omitempty"`
}

type User struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email"`
	Cedula        string     `json:"cedula,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	WhatsappPhone string     `json:"whatsapp_phone,omitempty"`
	IsActive      bool       `json:"is_active"`
	RoleID        int        `json:"role_id"`
	Role          *RoleRef   `json:"role,omitempty"`
	AreaID        *int       `json:"area_id,omitempty"`
	Area          *AreaRef   `json:"area,omitempty"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

// RoleName returns the technical role name or "" when the API omitted it.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// IsRequester reports whether the user only files tickets and may not act on them.
func (u *User) IsRequester() bool {
	switch u.RoleName() {
	case "usuario", "user":
		return true
	}
	return false
}

func (u *User) AreaName() string {
	if u == nil || u.Area == nil {
		return ""
	}
	return u.Area.Name
}
