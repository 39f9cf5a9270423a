package newsletter

import "time"

const (
	StatusActive       = "active"
	StatusUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Email     string  `gorm:"not null;uniqueIndex:idx_subscribers_email" json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`

	Status string `gorm:"not null;default:'active'" json:"status"`
	Source string `gorm:"not null;default:'website'" json:"source"`

	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}
