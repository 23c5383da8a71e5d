// File: /models/board.go
package models

type Board struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Title            string `json:"title" gorm:"size:255"`
	Content          string `json:"content" gorm:"type:text"`
	Author           string `json:"author" gorm:"size:255"`
	AttachedFilename string `json:"attachedFilename" gorm:"size:255"`
}

func (Board) TableName() string { return "board" }
