// File: /models/user.go
package models

import "time"

// UserProfile holds the public profile of an account. Credentials live in
// UserCredential so the hash never travels with profile reads.
type UserProfile struct {
	UserID        uint      `json:"userId" gorm:"column:user_id;primaryKey"`
	UserNickname  string    `json:"userNickname" gorm:"uniqueIndex;not null;size:20"`
	ProfileImgURL *string   `json:"profileImgUrl" gorm:"column:profile_img_url;size:255"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (UserProfile) TableName() string { return "user_base" }

// UserCredential is created once at signup and never updated afterwards.
type UserCredential struct {
	AuthSeq   uint      `json:"-" gorm:"column:auth_seq;primaryKey"`
	LoginID   string    `json:"-" gorm:"column:login_id;uniqueIndex;not null;size:50"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	UserID    uint      `json:"-" gorm:"column:user_base_id;uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (UserCredential) TableName() string { return "user_auth_base" }

// Session maps an opaque token to an authenticated user, with expiry.
// Expired rows are swept by jobs.SessionCleanupJob.
type Session struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null;size:64"`
	UserID    uint      `json:"-" gorm:"index;not null"`
	ExpiresAt time.Time `json:"-" gorm:"index;not null"`
	CreatedAt time.Time `json:"-"`
}
