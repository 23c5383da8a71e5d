// File: /services/media_service.go
package services

import (
	"io"
	"mime/multipart"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"chatmini-api/apperrors"
)

var allowedMediaExtensions = map[string]bool{
	"mp4":  true,
	"avi":  true,
	"mov":  true,
	"mkv":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

type MediaService struct {
	uploadDir string
}

func NewMediaService(uploadDir string) *MediaService {
	return &MediaService{uploadDir: uploadDir}
}

// SaveFileVulnerable stores the upload under its original client-supplied
// filename. Command injection training target only.
func (s *MediaService) SaveFileVulnerable(file *multipart.FileHeader) (string, error) {
	return s.saveFile(file, file.Filename)
}

// GenerateThumbnailVulnerable builds the ffmpeg invocation as a single
// shell string that includes the stored filename, then hands it to
// "sh -c". Command injection training target only.
func (s *MediaService) GenerateThumbnailVulnerable(savedPath string) string {
	filename := filepath.Base(savedPath)
	thumbnailFilename := filename + "_thumb.jpg"

	command := "ffmpeg -i " + filename + " -ss 00:00:01 -vframes 1 " + thumbnailFilename

	var output strings.Builder
	output.WriteString("--- executed command ---\n")
	output.WriteString(command)
	output.WriteString("\n\n")

	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = s.uploadDir
	out, err := cmd.CombinedOutput()
	output.Write(out)
	if err != nil {
		output.WriteString("\n[ERROR] " + err.Error())
	}
	return output.String()
}

// SaveFileSecure validates the extension against the allow-list and stores
// the upload under a random name that keeps the original extension.
func (s *MediaService) SaveFileSecure(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !allowedMediaExtensions[extension] {
		return "", apperrors.New(apperrors.CodeInvalidInput, "file extension not allowed")
	}
	return s.saveFile(file, uuid.NewString()+"."+extension)
}

// GenerateThumbnailSecure runs ffmpeg with the path passed as a separate
// argument, so the filename is never interpreted by a shell.
func (s *MediaService) GenerateThumbnailSecure(savedPath string) string {
	thumbnailPath := filepath.Join(s.uploadDir, filepath.Base(savedPath)+"_thumb.jpg")

	cmd := exec.Command(
		"ffmpeg",
		"-i", savedPath,
		"-ss", "00:00:01",
		"-vframes", "1",
		thumbnailPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn().Err(err).Str("path", savedPath).Msg("thumbnail generation failed")
		return string(out) + "\n[ERROR] " + err.Error()
	}
	if len(out) == 0 {
		return "No output"
	}
	return string(out)
}

func (s *MediaService) saveFile(file *multipart.FileHeader, filename string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	target := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return target, nil
}
