package models

import "time"

type AdminActionLog struct {
	ID          int       `json:"id"`
	AdminUserID int       `json:"admin_user_id"`
	ActionType  string    `json:"action_type"` // CREATE, SCAN, SOFT_DELETE, DELETE
	TargetType  string    `json:"target_type"` // entry_pass, event, user
	TargetID    *string   `json:"target_id,omitempty"`
	Description string    `json:"description"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
