// File: /models/chat.go
package models

import "time"

type RoomType string

const (
	RoomTypeOne   RoomType = "ONE"
	RoomTypeGroup RoomType = "GROUP"
)

type ChatRoom struct {
	RoomID    uint      `json:"roomId" gorm:"column:room_id;primaryKey"`
	RoomName  string    `json:"roomName" gorm:"size:255"`
	RoomType  RoomType  `json:"roomType" gorm:"not null;size:10"`
	IsActive  string    `json:"isActive" gorm:"size:1;default:'Y'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ChatRoom) TableName() string { return "chat_room" }

// RoomParticipant is one join/quit cycle of a user in a room. QuitAt nil
// means the user is currently in the room; a rejoin after leaving reuses
// the most recent row.
type RoomParticipant struct {
	ParticipantID uint       `json:"participantId" gorm:"column:participant_id;primaryKey"`
	RoomID        uint       `json:"roomId" gorm:"column:room_id;index;not null"`
	UserID        uint       `json:"userId" gorm:"column:user_id;index;not null"`
	JoinedAt      time.Time  `json:"joinedAt" gorm:"not null"`
	QuitAt        *time.Time `json:"quitAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (RoomParticipant) TableName() string { return "room_participants_history" }

// ChatMessage rows are append-only; CreatedAt is assigned by the server on
// insert and never updated.
type ChatMessage struct {
	MessageID      uint      `json:"messageId" gorm:"column:message_id;primaryKey"`
	RoomID         uint      `json:"roomId" gorm:"column:room_id;index;not null"`
	UserID         uint      `json:"senderId" gorm:"column:user_id;index;not null"`
	MessageContent string    `json:"message" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"createdAt" gorm:"<-:create"`
}

func (ChatMessage) TableName() string { return "chat_message" }
