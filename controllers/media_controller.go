// File: /controllers/media_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatmini-api/apperrors"
	"chatmini-api/services"
	"chatmini-api/utils"
)

type MediaController struct {
	mediaService *services.MediaService
}

func NewMediaController(mediaService *services.MediaService) *MediaController {
	return &MediaController{mediaService: mediaService}
}

// UploadVulnerable saves the file under its original name and runs the
// shell-string thumbnail command. Command injection training target only.
func (mc *MediaController) UploadVulnerable(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendError(c, apperrors.New(apperrors.CodeInvalidInput, "file is required"))
		return
	}

	savedPath, err := mc.mediaService.SaveFileVulnerable(file)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	result := mc.mediaService.GenerateThumbnailVulnerable(savedPath)
	c.String(http.StatusOK, result)
}

// UploadSecure validates, renames and runs ffmpeg with an argument vector.
func (mc *MediaController) UploadSecure(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendError(c, apperrors.New(apperrors.CodeInvalidInput, "file is required"))
		return
	}

	savedPath, err := mc.mediaService.SaveFileSecure(file)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	result := mc.mediaService.GenerateThumbnailSecure(savedPath)
	c.String(http.StatusOK, "Secure upload successful. Thumbnail generation result:\n"+result)
}
