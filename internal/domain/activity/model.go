package activity

import "time"

// UserActivity is an audit row for security-relevant actions (logins,
// role changes, destructive deletes). Best-effort: writing it never fails
// the request that triggered it.
type UserActivity struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID    uint    `gorm:"index" json:"user_id"`
	UserEmail *string `json:"user_email,omitempty"`

	Action      string  `gorm:"not null" json:"action"`
	Description string  `json:"description"`
	Details     *string `json:"details,omitempty"`

	// Request context
	IPAddress   *string `json:"ip_address,omitempty"`
	UserAgent   *string `json:"user_agent,omitempty"`
	RequestPath *string `json:"request_path,omitempty"`
	HTTPMethod  *string `json:"http_method,omitempty"`

	IsSuccess    bool    `gorm:"not null;default:true" json:"is_success"`
	ErrorMessage *string `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
