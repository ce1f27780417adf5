package models

import "time"

// Priority values are the wire values the help-desk API accepts.
const (
	PriorityLow    = "baja"
	PriorityMedium = "media"
	PriorityHigh   = "alta"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

type TicketStatus struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UserRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Ticket struct {
	ID               int          `json:"id"`
	TicketNumber     string       `json:"ticket_number"`
	RequesterName    string       `json:"requester_name"`
	RequesterEmail   string       `json:"requester_email"`
	RequesterArea    string       `json:"requester_area"`
	Description      string       `json:"description"`
	AttachmentPath   *string      `json:"attachment_path"`
	VerificationCode string       `json:"verification_code"`
	Priority         string       `json:"priority"`
	Status           TicketStatus `json:"status"`
	AssignedAgent    *UserRef     `json:"assigned_agent,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type Comment struct {
	ID        int       `json:"id"`
	Comment   string    `json:"comment"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubmittedTicket is what the portal returns after a ticket is filed.
type SubmittedTicket struct {
	TicketNumber     string `json:"ticket_number"`
	VerificationCode string `json:"verification_code,omitempty"`
	Message          string `json:"message,omitempty"`
}
