// File: /services/board_service.go
package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"chatmini-api/apperrors"
	"chatmini-api/models"
	"chatmini-api/repositories"
)

// contentPolicy permits basic block-level markup only. Script tags, images
// and event handler attributes are stripped before the post is stored.
var contentPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "div", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote", "pre", "br", "hr",
	)
	return p
}()

var allowedBoardExtensions = map[string]bool{
	"txt":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

type BoardService struct {
	boardRepo *repositories.BoardRepository
	uploadDir string
}

func NewBoardService(boardRepo *repositories.BoardRepository, uploadDir string) *BoardService {
	return &BoardService{boardRepo: boardRepo, uploadDir: uploadDir}
}

// Create stores a post with its content run through the HTML sanitizer.
func (s *BoardService) Create(title, content, author string) (*models.Board, error) {
	board := &models.Board{
		Title:   title,
		Content: contentPolicy.Sanitize(content),
		Author:  author,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) FindAll() ([]models.Board, error) {
	return s.boardRepo.FindAll()
}

// SearchByAuthorSafe uses a parameterized query.
func (s *BoardService) SearchByAuthorSafe(author string) ([]models.Board, error) {
	return s.boardRepo.FindByAuthorSafe(author)
}

// SearchByAuthorVulnerable builds the WHERE clause by string concatenation.
// It exists as an injection training target only.
func (s *BoardService) SearchByAuthorVulnerable(author string) ([]models.Board, error) {
	return s.boardRepo.FindByAuthorVulnerable(author)
}

// SearchByAuthorTrulyVulnerable concatenates the full SQL statement from
// user input. Injection training target only.
func (s *BoardService) SearchByAuthorTrulyVulnerable(author string) ([]models.Board, error) {
	return s.boardRepo.FindByAuthorTrulyVulnerable(author)
}

// CreateWithVulnerableUpload stores the attachment under its original
// client-supplied filename with no validation. Upload training target only.
func (s *BoardService) CreateWithVulnerableUpload(title, content, author string, file *multipart.FileHeader) (*models.Board, error) {
	originalFilename := file.Filename
	if err := s.saveUploadedFile(file, originalFilename); err != nil {
		return nil, err
	}

	board := &models.Board{
		Title:            title,
		Content:          content,
		Author:           author,
		AttachedFilename: originalFilename,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, err
	}
	return board, nil
}

// CreateWithSecureUpload validates the extension against the allow-list and
// stores the attachment under a random name.
func (s *BoardService) CreateWithSecureUpload(title, content, author string, file *multipart.FileHeader) (*models.Board, error) {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !allowedBoardExtensions[extension] {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "file extension not allowed")
	}

	safeFilename := uuid.NewString() + "." + extension
	if err := s.saveUploadedFile(file, safeFilename); err != nil {
		return nil, err
	}

	board := &models.Board{
		Title:            title,
		Content:          content,
		Author:           author,
		AttachedFilename: safeFilename,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, err
	}
	return board, nil
}

// ResolveDownloadPath joins the requested filename onto the upload dir with
// no traversal check. Path traversal training target only.
func (s *BoardService) ResolveDownloadPath(filename string) string {
	return filepath.Join(s.uploadDir, filename)
}

// ResolveDownloadPathSecure normalizes the requested filename and rejects
// anything that escapes the upload directory.
func (s *BoardService) ResolveDownloadPathSecure(filename string) (string, error) {
	base, err := filepath.Abs(s.uploadDir)
	if err != nil {
		return "", err
	}
	resolved := filepath.Clean(filepath.Join(base, filename))
	if resolved != base && !strings.HasPrefix(resolved, base+string(os.PathSeparator)) {
		return "", apperrors.New(apperrors.CodeInvalidInput, "invalid file path")
	}
	return resolved, nil
}

func (s *BoardService) saveUploadedFile(file *multipart.FileHeader, filename string) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
