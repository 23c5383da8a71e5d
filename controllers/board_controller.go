// File: /controllers/board_controller.go
package controllers

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"chatmini-api/apperrors"
	"chatmini-api/services"
	"chatmini-api/utils"
)

type BoardController struct {
	boardService *services.BoardService
}

func NewBoardController(boardService *services.BoardService) *BoardController {
	return &BoardController{boardService: boardService}
}

type CreateBoardRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

func (bc *BoardController) Create(c *gin.Context) {
	var req CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := bc.boardService.Create(req.Title, req.Content, req.Author)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendCreated(c, board)
}

func (bc *BoardController) List(c *gin.Context) {
	boards, err := bc.boardService.FindAll()
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, boards)
}

func (bc *BoardController) SearchSafe(c *gin.Context) {
	boards, err := bc.boardService.SearchByAuthorSafe(c.Query("author"))
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, boards)
}

func (bc *BoardController) SearchVulnerable(c *gin.Context) {
	boards, err := bc.boardService.SearchByAuthorVulnerable(c.Query("author"))
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, boards)
}

func (bc *BoardController) SearchTrulyVulnerable(c *gin.Context) {
	boards, err := bc.boardService.SearchByAuthorTrulyVulnerable(c.Query("author"))
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, boards)
}

func (bc *BoardController) VulnerableUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendError(c, apperrors.New(apperrors.CodeInvalidInput, "file is required"))
		return
	}

	board, err := bc.boardService.CreateWithVulnerableUpload(
		c.PostForm("title"),
		c.PostForm("content"),
		c.PostForm("author"),
		file,
	)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendCreated(c, board)
}

func (bc *BoardController) SecureUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendError(c, apperrors.New(apperrors.CodeInvalidInput, "file is required"))
		return
	}

	board, err := bc.boardService.CreateWithSecureUpload(
		c.PostForm("title"),
		c.PostForm("content"),
		c.PostForm("author"),
		file,
	)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendCreated(c, board)
}

// Download serves the requested filename with no path validation. Path
// traversal training target only.
func (bc *BoardController) Download(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		utils.SendError(c, apperrors.New(apperrors.CodeInvalidInput, "filename is required"))
		return
	}

	path := bc.boardService.ResolveDownloadPath(filename)
	c.FileAttachment(path, filepath.Base(filename))
}

// DownloadSecure serves the file only when the normalized path stays inside
// the upload directory.
func (bc *BoardController) DownloadSecure(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		utils.SendError(c, apperrors.New(apperrors.CodeInvalidInput, "filename is required"))
		return
	}

	path, err := bc.boardService.ResolveDownloadPathSecure(filename)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
