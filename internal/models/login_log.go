package models

import "time"

type LoginLog struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
	LoginAt   time.Time  `json:"login_at"`
	LogoutAt  *time.Time `json:"logout_at,omitempty"`

	// Joined fields - populated by certain queries
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}
