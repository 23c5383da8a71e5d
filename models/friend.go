// File: /models/friend.go
package models

import "time"

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "PENDING"
	FriendStatusAccepted FriendStatus = "ACCEPTED"
)

// UserFriend stores one row per unordered user pair. User1ID always holds
// the smaller id so the reverse pairing can never create a duplicate row.
type UserFriend struct {
	FriendID    uint         `json:"friendId" gorm:"column:friend_id;primaryKey"`
	User1ID     uint         `json:"user1Id" gorm:"column:user1_id;not null"`
	User2ID     uint         `json:"user2Id" gorm:"column:user2_id;not null"`
	RequesterID uint         `json:"requesterId" gorm:"column:requester_id;not null"`
	Status      FriendStatus `json:"status" gorm:"not null;default:'PENDING';size:20"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (UserFriend) TableName() string { return "user_friend" }
