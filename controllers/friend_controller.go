// File: /controllers/friend_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatmini-api/services"
	"chatmini-api/utils"
)

type FriendController struct {
	friendService *services.FriendService
}

func NewFriendController(friendService *services.FriendService) *FriendController {
	return &FriendController{friendService: friendService}
}

type SendFriendRequestRequest struct {
	RecipientID uint `json:"recipientId" binding:"required"`
}

func (fc *FriendController) Search(c *gin.Context) {
	nickname := c.Query("nickname")
	results, err := fc.friendService.SearchUsers(nickname, c.GetUint("userID"))
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, results)
}

func (fc *FriendController) SendRequest(c *gin.Context) {
	var req SendFriendRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := fc.friendService.SendRequest(c.GetUint("userID"), req.RecipientID); err != nil {
		utils.SendError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (fc *FriendController) Accept(c *gin.Context) {
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := fc.friendService.AcceptRequest(friendID); err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"message": "friend request accepted"})
}

func (fc *FriendController) Reject(c *gin.Context) {
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := fc.friendService.RejectRequest(friendID); err != nil {
		utils.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (fc *FriendController) Remove(c *gin.Context) {
	friendUserID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := fc.friendService.RemoveFriend(c.GetUint("userID"), friendUserID); err != nil {
		utils.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (fc *FriendController) List(c *gin.Context) {
	friends, err := fc.friendService.FriendList(c.GetUint("userID"))
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, friends)
}

func (fc *FriendController) Pending(c *gin.Context) {
	requests, err := fc.friendService.PendingRequests(c.GetUint("userID"))
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, requests)
}
