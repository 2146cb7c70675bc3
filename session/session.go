// Package session holds the per-contact dialog state and its persistence.
// One session exists per contact identity (the normalized WhatsApp address);
// it is created on first contact and never deleted.
package session

import "time"

// Dialog states. Every inbound message is interpreted against exactly one of
// these; transitions are total, so unknown input always maps to a reprompt
// rather than an undefined state.
const (
	StateAwaitingName           = "awaiting_name"
	StateMenu                   = "menu"
	StateSubmenu                = "submenu"
	StateAwaitingDesignDecision = "awaiting_design_decision"
	StateAwaitingDesignUpload   = "awaiting_design_upload"
	StateAwaitingDate           = "awaiting_date"
	StateAwaitingDateNoDesign   = "awaiting_date_no_design"
	StateManualReview           = "manual_review"
	StateManualHandoff          = "manual_handoff"
)

// Session is the persisted state record driving one contact's dialog.
type Session struct {
	Identity    string   `json:"identity"`
	State       string   `json:"state"`
	DisplayName string   `json:"display_name,omitempty"`
	Path        []string `json:"path,omitempty"`

	// Labels captured when a terminal menu leaf is reached, kept for
	// confirmation texts.
	SelectedService string `json:"selected_service,omitempty"`
	SelectedOption  string `json:"selected_option,omitempty"`

	// RequestedDateTime is what the contact asked for; ConfirmedDateTime is
	// what an operator proposed. They are distinct on purpose: a proposal may
	// diverge from the request, and only a proposal can be confirmed.
	RequestedDateTime string `json:"requested_date_time,omitempty"`
	ConfirmedDateTime string `json:"confirmed_date_time,omitempty"`

	DesignAttachment string `json:"design_attachment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns a fresh session for an identity, positioned at name capture.
func New(identity string) *Session {
	now := time.Now()
	return &Session{
		Identity:  identity,
		State:     StateAwaitingName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
