package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Webhook struct {
	gorm.Model
	MerchantID    uint           `gorm:"index;not null"`
	Name          string         `gorm:"not null"`
	URL           string         `gorm:"not null"`
	Secret        string         `gorm:"not null"`
	Events        pq.StringArray `gorm:"type:text[]"`
	IsActive      bool           `gorm:"default:true;index"`
	LastTriggered *time.Time
	SuccessCount  int64 `gorm:"default:0"` // monotonic, never reset
	FailureCount  int64 `gorm:"default:0"` // monotonic, never reset
	Logs          []WebhookLog
}

// SubscribedTo reports whether the webhook subscribes to the given event.
func (w *Webhook) SubscribedTo(event string) bool {
	for _, e := range w.Events {
		if e == event {
			return true
		}
	}
	return false
}

// WebhookLog is an append-only delivery audit row, one per delivery attempt.
type WebhookLog struct {
	ID         uint   `gorm:"primarykey"`
	WebhookID  uint   `gorm:"index;not null"`
	Event      string `gorm:"index"`
	Payload    string
	StatusCode *int
	Response   string
	Error      string
	Success    bool
	CreatedAt  time.Time
}
