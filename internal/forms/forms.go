package forms

import (
	"net/url"
	"strconv"
	"strings"
)

// TicketForm is filed from the public portal and from /tickets/new.
type TicketForm struct {
	RequesterName  string `form:"requester_name" validate:"required,max=255"`
	RequesterEmail string `form:"requester_email" validate:"required,email"`
	RequesterArea  string `form:"requester_area" validate:"required"`
	Description    string `form:"description" validate:"required,min=10"`
	Priority       string `form:"priority" validate:"required,oneof=baja media alta"`
}

type SearchForm struct {
	TicketNumber string `form:"ticket_number" validate:"required"`
}

type LoginForm struct {
	Login    string `form:"login" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type UserFields struct {
	Name          string `form:"name" validate:"required,max=255"`
	Username      string `form:"username" validate:"required,max=50"`
	Email         string `form:"email" validate:"required,email"`
	Cedula        string `form:"cedula" validate:"required,max=20"`
	Phone         string `form:"phone" validate:"omitempty,max=20"`
	WhatsappPhone string `form:"whatsapp_phone" validate:"omitempty,max=20"`
	RoleID        int    `form:"role_id" validate:"required,gte=1"`
	AreaID        int    `form:"area_id" validate:"gte=0"`
}

type NewUserForm struct {
	UserFields
	Password             string `form:"password" validate:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required,eqfield=Password"`
}

// EditUserForm only changes the password when one is typed.
type EditUserForm struct {
	UserFields
	IsActive             bool   `form:"is_active"`
	Password             string `form:"password" validate:"omitempty,min=8"`
	PasswordConfirmation string `form:"password_confirmation" validate:"eqfield=Password"`
}

type RoleForm struct {
	Name        string `form:"name" validate:"required,role_name"`
	DisplayName string `form:"display_name" validate:"required"`
	Description string `form:"description"`
	Level       int    `form:"level" validate:"required,min=1,max=3"`
}

type PermissionForm struct {
	ModuleID    int    `form:"module_id" validate:"required,gte=1"`
	Name        string `form:"name" validate:"required"`
	DisplayName string `form:"display_name" validate:"required"`
	Description string `form:"description"`
	ActionType  string `form:"action_type" validate:"required,oneof=create read update delete special"`
}

type MenuItemForm struct {
	Key      string `form:"key" validate:"required"`
	Label    string `form:"label" validate:"required"`
	Icon     string `form:"icon"`
	Route    string `form:"route" validate:"required"`
	ParentID int    `form:"parent_id" validate:"gte=0"`
	Order    int    `form:"order" validate:"gte=0"`
	IsActive bool   `form:"is_active"`
}

type AreaForm struct {
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description"`
}

func str(v url.Values, k string) string { return strings.TrimSpace(v.Get(k)) }

func num(v url.Values, k string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(v.Get(k)))
	return n
}

func flag(v url.Values, k string) bool {
	switch strings.ToLower(str(v, k)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func ParseTicket(v url.Values) TicketForm {
	return TicketForm{
		RequesterName:  str(v, "requester_name"),
		RequesterEmail: str(v, "requester_email"),
		RequesterArea:  str(v, "requester_area"),
		Description:    str(v, "description"),
		Priority:       str(v, "priority"),
	}
}

func ParseSearch(v url.Values) SearchForm {
	return SearchForm{TicketNumber: strings.ToUpper(str(v, "ticket_number"))}
}

// ParseLogin keeps the password as typed.
func ParseLogin(v url.Values) LoginForm {
	return LoginForm{Login: str(v, "login"), Password: v.Get("password")}
}

func parseUserFields(v url.Values) UserFields {
	return UserFields{
		Name:          str(v, "name"),
		Username:      str(v, "username"),
		Email:         str(v, "email"),
		Cedula:        str(v, "cedula"),
		Phone:         str(v, "phone"),
		WhatsappPhone: str(v, "whatsapp_phone"),
		RoleID:        num(v, "role_id"),
		AreaID:        num(v, "area_id"),
	}
}

func ParseNewUser(v url.Values) NewUserForm {
	return NewUserForm{
		UserFields:           parseUserFields(v),
		Password:             v.Get("password"),
		PasswordConfirmation: v.Get("password_confirmation"),
	}
}

func ParseEditUser(v url.Values) EditUserForm {
	return EditUserForm{
		UserFields:           parseUserFields(v),
		IsActive:             flag(v, "is_active"),
		Password:             v.Get("password"),
		PasswordConfirmation: v.Get("password_confirmation"),
	}
}

func ParseRole(v url.Values) RoleForm {
	return RoleForm{
		Name:        str(v, "name"),
		DisplayName: str(v, "display_name"),
		Description: str(v, "description"),
		Level:       num(v, "level"),
	}
}

func ParsePermission(v url.Values) PermissionForm {
	return PermissionForm{
		ModuleID:    num(v, "module_id"),
		Name:        str(v, "name"),
		DisplayName: str(v, "display_name"),
		Description: str(v, "description"),
		ActionType:  str(v, "action_type"),
	}
}

func ParseMenuItem(v url.Values) MenuItemForm {
	return MenuItemForm{
		Key:      str(v, "key"),
		Label:    str(v, "label"),
		Icon:     str(v, "icon"),
		Route:    str(v, "route"),
		ParentID: num(v, "parent_id"),
		Order:    num(v, "order"),
		IsActive: flag(v, "is_active"),
	}
}

func ParseArea(v url.Values) AreaForm {
	return AreaForm{Name: str(v, "name"), Description: str(v, "description")}
}
