package models

import "time"

// Pass administrative statuses.
const (
	PassStatusActive    = "active"
	PassStatusExpired   = "expired"
	PassStatusUsed      = "used"
	PassStatusCancelled = "cancelled"
	PassStatusDeleted   = "deleted"
)

// Physical entry sub-states. A pass cycles at most once:
// unscanned (NULL) → entered → exited.
const (
	EntryStatusEntered = "entered"
	EntryStatusExited  = "exited"
)

// Scan actions reported back to the gate operator.
const (
	ScanActionEntry = "entry"
	ScanActionExit  = "exit"
)

// EntryPass is a time-bounded visitor credential identified by a short code.
type EntryPass struct {
	ID                int        `json:"id"`
	PassID            string     `json:"pass_id"`
	VisitorName       string     `json:"visitor_name"`
	VisitorPhone      *string    `json:"visitor_phone,omitempty"`
	VisitType         *string    `json:"visit_type,omitempty"`
	IDType            *string    `json:"id_type,omitempty"`
	IDNumber          *string    `json:"id_number,omitempty"`
	EventID           *int       `json:"event_id,omitempty"`
	StudentName       *string    `json:"student_name,omitempty"`
	RelationToStudent *string    `json:"relation_to_student,omitempty"`
	Department        *string    `json:"department,omitempty"`
	Purpose           *string    `json:"purpose,omitempty"`
	ValidFrom         time.Time  `json:"valid_from"`
	ValidUntil        time.Time  `json:"valid_until"`
	QRCode            string     `json:"qr_code"`
	Status            string     `json:"status"`
	EntryStatus       *string    `json:"entry_status,omitempty"`
	EntryTime         *time.Time `json:"entry_time,omitempty"`
	ExitTime          *time.Time `json:"exit_time,omitempty"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
	CreatedBy         *int       `json:"created_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Joined fields - populated by certain queries
	EventName *string `json:"event_name,omitempty"`
}

// Entered reports whether the visitor has been recorded as inside or exited.
func (p *EntryPass) Entered() bool {
	return p.EntryStatus != nil && (*p.EntryStatus == EntryStatusEntered || *p.EntryStatus == EntryStatusExited)
}

// Exited reports whether the pass has completed its entry/exit cycle.
func (p *EntryPass) Exited() bool {
	return p.EntryStatus != nil && *p.EntryStatus == EntryStatusExited
}

// CreatePassRequest represents the request body for issuing an entry pass.
// Validity bounds are naive IST wall times ("2006-01-02 15:04:05" or a bare
// date).
type CreatePassRequest struct {
	VisitorName       string `json:"visitor_name"`
	VisitorPhone      string `json:"visitor_phone"`
	VisitType         string `json:"visit_type"`
	IDType            string `json:"id_type"`
	IDNumber          string `json:"id_number"`
	EventID           *int   `json:"event_id"`
	StudentName       string `json:"student_name"`
	RelationToStudent string `json:"relation_to_student"`
	Department        string `json:"department"`
	Purpose           string `json:"purpose"`
	ValidFrom         string `json:"valid_from"`
	ValidUntil        string `json:"valid_until"`
}

// ScanResponse is returned by the combined entry/exit scan endpoint.
type ScanResponse struct {
	Action string     `json:"action"`
	Pass   *EntryPass `json:"pass"`
}

// VerifyResponse is returned by the public validity check.
type VerifyResponse struct {
	Pass              *EntryPass `json:"pass"`
	Status            string     `json:"status"`
	ValidationMessage string     `json:"validation_message"`
}
