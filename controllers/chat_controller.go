// File: /controllers/chat_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"chatmini-api/models"
	"chatmini-api/services"
	"chatmini-api/utils"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

type CreateRoomRequest struct {
	RoomName      string          `json:"roomName" binding:"required"`
	RoomType      models.RoomType `json:"roomType" binding:"required,oneof=ONE GROUP"`
	UserNicknames []string        `json:"userNicknames" binding:"required,min=1"`
}

type InviteRequest struct {
	UserNicknames []string `json:"userNicknames" binding:"required,min=1"`
}

func (cc *ChatController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := cc.chatService.CreateRoom(req.RoomName, req.RoomType, req.UserNicknames)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendCreated(c, room)
}

func (cc *ChatController) RoomsForUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	rooms, err := cc.chatService.FindRoomsByUserID(userID)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, rooms)
}

func (cc *ChatController) Room(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	room, err := cc.chatService.FindRoomByID(roomID)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, room)
}

func (cc *ChatController) Messages(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	messages, err := cc.chatService.FindMessagesByRoom(roomID)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, messages)
}

func (cc *ChatController) Leave(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	if err := cc.chatService.LeaveRoom(roomID, c.GetUint("userID")); err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"message": "left the room"})
}

func (cc *ChatController) Invite(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	var req InviteRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := cc.chatService.InviteUsers(roomID, req.UserNicknames); err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"message": "invited"})
}

func (cc *ChatController) ParticipantHistory(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	history, err := cc.chatService.ParticipantHistory(roomID)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, history)
}
