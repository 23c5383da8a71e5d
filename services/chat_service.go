// File: /services/chat_service.go
package services

import (
	"time"

	"github.com/rs/zerolog/log"

	"chatmini-api/apperrors"
	"chatmini-api/models"
	"chatmini-api/repositories"
	"chatmini-api/ws"
)

type ChatService struct {
	chatRepo *repositories.ChatRepository
	userRepo *repositories.UserRepository
	hub      *ws.Hub
}

func NewChatService(chatRepo *repositories.ChatRepository, userRepo *repositories.UserRepository, hub *ws.Hub) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo, hub: hub}
}

// RoomDTO is a room plus its current participants.
type RoomDTO struct {
	RoomID       uint                 `json:"roomId"`
	RoomName     string               `json:"roomName"`
	RoomType     models.RoomType      `json:"roomType"`
	IsActive     string               `json:"isActive"`
	CreatedAt    time.Time            `json:"createdAt"`
	Participants []models.UserProfile `json:"participants"`
}

// CreateRoom resolves each nickname to a profile, creates the room with one
// open participation row per user, then broadcasts a JOIN per participant.
func (s *ChatService) CreateRoom(roomName string, roomType models.RoomType, userNicknames []string) (*RoomDTO, error) {
	users := make([]*models.UserProfile, 0, len(userNicknames))
	for _, nickname := range userNicknames {
		user, err := s.userRepo.FindProfileByNickname(nickname)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeUserNotFound, "user not found: "+nickname, err)
		}
		users = append(users, user)
	}

	room := &models.ChatRoom{RoomName: roomName, RoomType: roomType, IsActive: "Y"}
	err := s.chatRepo.Transaction(func(txRepo *repositories.ChatRepository) error {
		if err := txRepo.CreateRoom(room); err != nil {
			return err
		}
		now := time.Now()
		for _, user := range users {
			participant := &models.RoomParticipant{
				RoomID:   room.RoomID,
				UserID:   user.UserID,
				JoinedAt: now,
			}
			if err := txRepo.CreateParticipant(participant); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		s.broadcastJoin(room.RoomID, user)
	}

	return s.FindRoomByID(room.RoomID)
}

// FindRoomsByUserID lists the rooms the user is currently in.
func (s *ChatService) FindRoomsByUserID(userID uint) ([]RoomDTO, error) {
	rooms, err := s.chatRepo.FindRoomsByUserID(userID)
	if err != nil {
		return nil, err
	}
	out := make([]RoomDTO, 0, len(rooms))
	for _, room := range rooms {
		participants, err := s.chatRepo.FindActiveParticipantProfiles(room.RoomID)
		if err != nil {
			return nil, err
		}
		out = append(out, roomDTO(room, participants))
	}
	return out, nil
}

func (s *ChatService) FindRoomByID(roomID uint) (*RoomDTO, error) {
	room, err := s.chatRepo.FindRoomByID(roomID)
	if err != nil {
		return nil, apperrors.ErrChatRoomNotFound
	}
	participants, err := s.chatRepo.FindActiveParticipantProfiles(roomID)
	if err != nil {
		return nil, err
	}
	dto := roomDTO(*room, participants)
	return &dto, nil
}

// FindMessagesByRoom returns the full log in ascending creation order.
func (s *ChatService) FindMessagesByRoom(roomID uint) ([]repositories.MessageRow, error) {
	return s.chatRepo.FindMessagesByRoom(roomID)
}

// SaveMessage persists a TALK message; the stored CreatedAt is the
// authoritative timestamp for the broadcast copy.
func (s *ChatService) SaveMessage(roomID, senderID uint, content string) (*models.ChatMessage, error) {
	if _, err := s.chatRepo.FindRoomByID(roomID); err != nil {
		return nil, apperrors.ErrChatRoomNotFound
	}
	if _, err := s.userRepo.FindProfileByID(senderID); err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	message := &models.ChatMessage{
		RoomID:         roomID,
		UserID:         senderID,
		MessageContent: content,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// LeaveRoom closes the caller's open participation row and broadcasts a
// LEAVE with the refreshed participant list. Leaving a room the user is not
// in is a no-op, matching the upstream behavior.
func (s *ChatService) LeaveRoom(roomID, userID uint) error {
	user, err := s.userRepo.FindProfileByID(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	participant, err := s.chatRepo.FindActiveParticipant(roomID, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil
		}
		return err
	}

	now := time.Now()
	participant.QuitAt = &now
	if err := s.chatRepo.SaveParticipant(participant); err != nil {
		return err
	}

	s.broadcastLeave(roomID, user)
	return nil
}

// InviteUsers adds each nickname that is not already an active participant.
// A user who left before gets their most recent row reset instead of a new
// one; a first-time participant gets a fresh row. All nicknames are
// resolved before anything is written and the row mutations share one
// transaction, so a bad nickname leaves the room untouched. One JOIN
// broadcast per user actually added, after commit.
func (s *ChatService) InviteUsers(roomID uint, userNicknames []string) error {
	if _, err := s.chatRepo.FindRoomByID(roomID); err != nil {
		return apperrors.ErrChatRoomNotFound
	}

	users := make([]*models.UserProfile, 0, len(userNicknames))
	for _, nickname := range userNicknames {
		user, err := s.userRepo.FindProfileByNickname(nickname)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeUserNotFound, "user not found: "+nickname, err)
		}
		users = append(users, user)
	}

	var added []*models.UserProfile
	err := s.chatRepo.Transaction(func(txRepo *repositories.ChatRepository) error {
		added = added[:0]
		now := time.Now()
		for _, user := range users {
			if _, err := txRepo.FindActiveParticipant(roomID, user.UserID); err == nil {
				continue
			}

			participant, err := txRepo.FindLatestParticipant(roomID, user.UserID)
			if err != nil {
				participant = &models.RoomParticipant{RoomID: roomID, UserID: user.UserID}
			}
			participant.JoinedAt = now
			participant.QuitAt = nil
			if err := txRepo.SaveParticipant(participant); err != nil {
				return err
			}
			added = append(added, user)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, user := range added {
		s.broadcastJoin(roomID, user)
	}
	return nil
}

// RoomParticipants returns the profiles currently in the room.
func (s *ChatService) RoomParticipants(roomID uint) ([]models.UserProfile, error) {
	return s.chatRepo.FindActiveParticipantProfiles(roomID)
}

// RoomExists reports whether the room id resolves to a room.
func (s *ChatService) RoomExists(roomID uint) bool {
	_, err := s.chatRepo.FindRoomByID(roomID)
	return err == nil
}

// ParticipantHistory returns every join/quit record for the room, most
// recent joins first.
func (s *ChatService) ParticipantHistory(roomID uint) ([]repositories.ParticipantHistoryRow, error) {
	return s.chatRepo.FindParticipantHistory(roomID)
}

func (s *ChatService) broadcastJoin(roomID uint, user *models.UserProfile) {
	s.broadcastMembership(ws.EventJoin, roomID, user, user.UserNickname+" joined the room")
}

func (s *ChatService) broadcastLeave(roomID uint, user *models.UserProfile) {
	s.broadcastMembership(ws.EventLeave, roomID, user, user.UserNickname+" left the room")
}

func (s *ChatService) broadcastMembership(evtType ws.EventType, roomID uint, user *models.UserProfile, message string) {
	participants, err := s.chatRepo.FindActiveParticipantProfiles(roomID)
	if err != nil {
		log.Error().Err(err).Uint("room_id", roomID).Msg("load participants for broadcast")
		return
	}
	s.hub.Broadcast(roomID, ws.Event{
		Type:           evtType,
		RoomID:         roomID,
		SenderID:       user.UserID,
		SenderNickname: user.UserNickname,
		Message:        message,
		CreatedAt:      time.Now(),
		Participants:   participants,
	})
}

func roomDTO(room models.ChatRoom, participants []models.UserProfile) RoomDTO {
	return RoomDTO{
		RoomID:       room.RoomID,
		RoomName:     room.RoomName,
		RoomType:     room.RoomType,
		IsActive:     room.IsActive,
		CreatedAt:    room.CreatedAt,
		Participants: participants,
	}
}
