// File: /repositories/board_repository.go
package repositories

import (
	"gorm.io/gorm"

	"chatmini-api/models"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

func (r *BoardRepository) FindAll() ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Find(&boards).Error
	return boards, err
}

// FindByAuthorSafe uses a bound parameter. This is the search every caller
// outside the training endpoints should use.
func (r *BoardRepository) FindByAuthorSafe(author string) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Where("author = ?", author).Find(&boards).Error
	return boards, err
}

// FindByAuthorVulnerable builds the predicate by string concatenation.
// Training endpoint only: demonstrates injection through the query builder.
func (r *BoardRepository) FindByAuthorVulnerable(author string) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Where("author = '" + author + "'").Find(&boards).Error
	return boards, err
}

// FindByAuthorTrulyVulnerable concatenates raw SQL end to end.
// Training endpoint only: never write queries this way.
func (r *BoardRepository) FindByAuthorTrulyVulnerable(author string) ([]models.Board, error) {
	var boards []models.Board
	sql := "SELECT * FROM board WHERE author = '" + author + "'"
	err := r.db.Raw(sql).Scan(&boards).Error
	return boards, err
}
