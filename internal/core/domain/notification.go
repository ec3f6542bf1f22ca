package domain

import "time"

type Notification struct {
	MessageID  string    `json:"message_id"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Version    string    `json:"version"`
	DetectedAt time.Time `json:"detected_at"`
}
