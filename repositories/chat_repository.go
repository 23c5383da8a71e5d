// File: /repositories/chat_repository.go
package repositories

import (
	"time"

	"gorm.io/gorm"

	"chatmini-api/models"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Transaction(fn func(txRepo *ChatRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewChatRepository(tx))
	})
}

func (r *ChatRepository) CreateRoom(room *models.ChatRoom) error {
	return r.db.Create(room).Error
}

func (r *ChatRepository) FindRoomByID(roomID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := r.db.First(&room, roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindRoomsByUserID returns the rooms where the user has an open
// participation row (quit_at IS NULL).
func (r *ChatRepository) FindRoomsByUserID(userID uint) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.
		Joins("JOIN room_participants_history p ON p.room_id = chat_room.room_id").
		Where("p.user_id = ? AND p.quit_at IS NULL", userID).
		Distinct("chat_room.*").
		Find(&rooms).Error
	return rooms, err
}

func (r *ChatRepository) CreateParticipant(participant *models.RoomParticipant) error {
	return r.db.Create(participant).Error
}

func (r *ChatRepository) SaveParticipant(participant *models.RoomParticipant) error {
	return r.db.Save(participant).Error
}

// FindActiveParticipant returns the user's open participation row for the
// room, if any.
func (r *ChatRepository) FindActiveParticipant(roomID, userID uint) (*models.RoomParticipant, error) {
	var participant models.RoomParticipant
	err := r.db.Where("room_id = ? AND user_id = ? AND quit_at IS NULL", roomID, userID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindLatestParticipant returns the most recent participation row for the
// user in the room regardless of quit state. Used to reuse a row on rejoin.
func (r *ChatRepository) FindLatestParticipant(roomID, userID uint) (*models.RoomParticipant, error) {
	var participant models.RoomParticipant
	err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).
		Order("joined_at DESC").First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindActiveParticipantProfiles returns the profiles of everyone currently
// in the room via an explicit join, no association loading.
func (r *ChatRepository) FindActiveParticipantProfiles(roomID uint) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := r.db.Model(&models.UserProfile{}).
		Joins("JOIN room_participants_history p ON p.user_id = user_base.user_id").
		Where("p.room_id = ? AND p.quit_at IS NULL", roomID).
		Find(&profiles).Error
	return profiles, err
}

// ParticipantHistoryRow is a joined projection of a participation record
// and the participant's nickname.
type ParticipantHistoryRow struct {
	ParticipantID uint       `json:"participantId"`
	UserID        uint       `json:"userId"`
	UserNickname  string     `json:"userNickname"`
	JoinedAt      time.Time  `json:"joinedAt"`
	QuitAt        *time.Time `json:"quitAt"`
}

// FindParticipantHistory returns every participation record for the room,
// most recent joins first.
func (r *ChatRepository) FindParticipantHistory(roomID uint) ([]ParticipantHistoryRow, error) {
	var rows []ParticipantHistoryRow
	err := r.db.Model(&models.RoomParticipant{}).
		Select("room_participants_history.participant_id, room_participants_history.user_id, u.user_nickname, room_participants_history.joined_at, room_participants_history.quit_at").
		Joins("JOIN user_base u ON u.user_id = room_participants_history.user_id").
		Where("room_participants_history.room_id = ?", roomID).
		Order("room_participants_history.joined_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ChatRepository) CreateMessage(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// MessageRow is a message joined with its sender's nickname.
type MessageRow struct {
	MessageID      uint      `json:"messageId"`
	RoomID         uint      `json:"roomId"`
	UserID         uint      `json:"senderId"`
	UserNickname   string    `json:"senderNickname"`
	MessageContent string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FindMessagesByRoom returns the room's full message log in ascending
// creation order.
func (r *ChatRepository) FindMessagesByRoom(roomID uint) ([]MessageRow, error) {
	var rows []MessageRow
	err := r.db.Model(&models.ChatMessage{}).
		Select("chat_message.message_id, chat_message.room_id, chat_message.user_id, u.user_nickname, chat_message.message_content, chat_message.created_at").
		Joins("JOIN user_base u ON u.user_id = chat_message.user_id").
		Where("chat_message.room_id = ?", roomID).
		Order("chat_message.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
