// File: /services/friend_service.go
package services

import (
	"chatmini-api/apperrors"
	"chatmini-api/models"
	"chatmini-api/repositories"
)

type FriendService struct {
	friendRepo *repositories.FriendRepository
	userRepo   *repositories.UserRepository
}

func NewFriendService(friendRepo *repositories.FriendRepository, userRepo *repositories.UserRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo}
}

// FriendDTO is a friend entry as returned to clients.
type FriendDTO struct {
	UserID       uint   `json:"userId"`
	UserNickname string `json:"userNickname"`
}

// FriendRequestDTO is a pending incoming request.
type FriendRequestDTO struct {
	FriendID          uint   `json:"friendId"`
	RequesterID       uint   `json:"requesterId"`
	RequesterNickname string `json:"requesterNickname"`
}

// SearchUsers finds profiles by nickname substring, excluding the caller.
func (s *FriendService) SearchUsers(nickname string, currentUserID uint) ([]FriendDTO, error) {
	profiles, err := s.userRepo.SearchByNickname(nickname, currentUserID)
	if err != nil {
		return nil, err
	}
	out := make([]FriendDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, FriendDTO{UserID: p.UserID, UserNickname: p.UserNickname})
	}
	return out, nil
}

// orderPair returns the two ids in canonical (smaller, larger) order.
func orderPair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// SendRequest creates a PENDING row for the pair. Any existing row, pending
// or accepted, blocks a new request.
func (s *FriendService) SendRequest(requesterID, recipientID uint) error {
	if _, err := s.userRepo.FindProfileByID(requesterID); err != nil {
		return apperrors.ErrUserNotFound
	}
	if _, err := s.userRepo.FindProfileByID(recipientID); err != nil {
		return apperrors.ErrUserNotFound
	}

	user1, user2 := orderPair(requesterID, recipientID)
	if _, err := s.friendRepo.FindByPair(user1, user2); err == nil {
		return apperrors.ErrFriendRequestExists
	}

	friend := &models.UserFriend{
		User1ID:     user1,
		User2ID:     user2,
		RequesterID: requesterID,
		Status:      models.FriendStatusPending,
	}
	return s.friendRepo.Create(friend)
}

// AcceptRequest flips PENDING to ACCEPTED.
func (s *FriendService) AcceptRequest(friendID uint) error {
	friend, err := s.friendRepo.FindByID(friendID)
	if err != nil {
		return apperrors.ErrFriendRequestNotFound
	}
	friend.Status = models.FriendStatusAccepted
	return s.friendRepo.Save(friend)
}

// RejectRequest deletes the row outright, leaving the pair free to retry.
func (s *FriendService) RejectRequest(friendID uint) error {
	return s.friendRepo.Delete(friendID)
}

// RemoveFriend deletes the relationship row between the two users.
func (s *FriendService) RemoveFriend(userID, friendUserID uint) error {
	user1, user2 := orderPair(userID, friendUserID)
	friend, err := s.friendRepo.FindByPair(user1, user2)
	if err != nil {
		return apperrors.ErrFriendshipNotFound
	}
	return s.friendRepo.Delete(friend.FriendID)
}

// FriendList returns accepted friends with the counterpart's profile data.
func (s *FriendService) FriendList(userID uint) ([]FriendDTO, error) {
	rows, err := s.friendRepo.FindAcceptedByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]FriendDTO, 0, len(rows))
	for _, row := range rows {
		otherID := row.User1ID
		if otherID == userID {
			otherID = row.User2ID
		}
		profile, err := s.userRepo.FindProfileByID(otherID)
		if err != nil {
			continue
		}
		out = append(out, FriendDTO{UserID: profile.UserID, UserNickname: profile.UserNickname})
	}
	return out, nil
}

// PendingRequests returns incoming PENDING requests for the user.
func (s *FriendService) PendingRequests(userID uint) ([]FriendRequestDTO, error) {
	rows, err := s.friendRepo.FindPendingForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]FriendRequestDTO, 0, len(rows))
	for _, row := range rows {
		requester, err := s.userRepo.FindProfileByID(row.RequesterID)
		if err != nil {
			continue
		}
		out = append(out, FriendRequestDTO{
			FriendID:          row.FriendID,
			RequesterID:       requester.UserID,
			RequesterNickname: requester.UserNickname,
		})
	}
	return out, nil
}
