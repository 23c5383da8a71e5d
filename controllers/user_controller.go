// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatmini-api/apperrors"
	"chatmini-api/middleware"
	"chatmini-api/services"
	"chatmini-api/utils"
)

type UserController struct {
	userService    *services.UserService
	sessionService *services.SessionService
}

func NewUserController(userService *services.UserService, sessionService *services.SessionService) *UserController {
	return &UserController{
		userService:    userService,
		sessionService: sessionService,
	}
}

type CreateUserRequest struct {
	UserNickname  string  `json:"userNickname" binding:"required,max=20"`
	ProfileImgURL *string `json:"profileImgUrl" binding:"omitempty,max=255"`
}

type SignUpRequest struct {
	LoginID      string `json:"loginId" binding:"required,max=50"`
	Password     string `json:"password" binding:"required,min=4"`
	UserNickname string `json:"userNickname" binding:"required,max=20"`
}

type LoginRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID                  uint    `json:"userId"`
	UserNickname            string  `json:"userNickname"`
	ProfileImgURL           *string `json:"profileImgUrl"`
	SessionTimeoutInMinutes int     `json:"sessionTimeoutInMinutes"`
}

type UpdateNicknameRequest struct {
	UserNickname string `json:"userNickname" binding:"required,max=20"`
}

func (uc *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := uc.userService.CreateProfile(req.UserNickname, req.ProfileImgURL)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendCreated(c, profile)
}

func (uc *UserController) Get(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := uc.userService.FindByID(userID)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, profile)
}

func (uc *UserController) Update(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := uc.userService.UpdateProfile(userID, req.UserNickname, req.ProfileImgURL)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, profile)
}

func (uc *UserController) Delete(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := uc.userService.Delete(userID); err != nil {
		utils.SendError(c, err)
		return
	}
	// A deleted account must not keep working sessions around.
	if err := uc.sessionService.DestroyForUser(userID); err != nil {
		utils.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (uc *UserController) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := uc.userService.SignUp(req.LoginID, req.Password, req.UserNickname)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendCreated(c, profile)
}

// Login checks credentials, creates a session row and sets the HttpOnly
// SESSION cookie alongside the JSON response.
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := uc.userService.Login(req.LoginID, req.Password)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	session, err := uc.sessionService.Create(profile.UserID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	maxAge := uc.sessionService.TimeoutMinutes() * 60
	c.SetCookie(middleware.SessionCookieName, session.Token, maxAge, "/", "", false, true)

	utils.SendSuccess(c, LoginResponse{
		UserID:                  profile.UserID,
		UserNickname:            profile.UserNickname,
		ProfileImgURL:           profile.ProfileImgURL,
		SessionTimeoutInMinutes: uc.sessionService.TimeoutMinutes(),
	})
}

func (uc *UserController) Logout(c *gin.Context) {
	if token := c.GetString("sessionToken"); token != "" {
		if err := uc.sessionService.Destroy(token); err != nil {
			utils.SendError(c, err)
			return
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	utils.SendSuccess(c, gin.H{"message": "logged out"})
}

// Me returns the profile the session middleware resolved.
func (uc *UserController) Me(c *gin.Context) {
	profile, err := uc.userService.FindByID(c.GetUint("userID"))
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, profile)
}

func (uc *UserController) UpdateNickname(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateNicknameRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := uc.userService.UpdateNickname(userID, req.UserNickname)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, profile)
}

// parseIDParam reads a numeric path parameter, answering C001 when it does
// not parse.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.SendError(c, apperrors.New(apperrors.CodeInvalidInput, "invalid "+name+" parameter"))
		return 0, false
	}
	return uint(id), true
}
