// File: /ws/event.go
package ws

import (
	"time"

	"chatmini-api/models"
)

type EventType string

const (
	EventJoin  EventType = "JOIN"
	EventLeave EventType = "LEAVE"
	EventTalk  EventType = "TALK"
)

// Event is the envelope broadcast to every subscriber of a room topic.
// Participants is populated for JOIN and LEAVE so clients can refresh the
// member list without an extra read.
type Event struct {
	Type           EventType            `json:"type"`
	RoomID         uint                 `json:"roomId"`
	SenderID       uint                 `json:"senderId"`
	SenderNickname string               `json:"senderNickname"`
	Message        string               `json:"message"`
	CreatedAt      time.Time            `json:"createdAt"`
	Participants   []models.UserProfile `json:"participants,omitempty"`
}
