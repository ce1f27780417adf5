package models

import "time"

const (
	ChangeRolePermission = "role_permission"
	ChangeUserPermission = "user_permission"
)

type PermissionChangeLog struct {
	ID         int        `json:"id"`
	ChangedBy  UserRef    `json:"changed_by"`
	ChangeType string     `json:"change_type"`
	EntityID   int        `json:"entity_id"`
	Permission Permission `json:"permission"`
	OldValue   *bool      `json:"old_value"`
	NewValue   *bool      `json:"new_value"`
	Reason     *string    `json:"reason"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Granted reports whether the change left the permission granted.
func (l PermissionChangeLog) Granted() bool { return l.NewValue != nil && *l.NewValue }

func (l PermissionChangeLog) ReasonText() string {
	if l.Reason == nil {
		return ""
	}
	return *l.Reason
}
