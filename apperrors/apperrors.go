package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the stable error code carried to clients in the errCd field.
type Code string

const (
	// Common
	CodeInvalidInput   Code = "C001"
	CodeEntityNotFound Code = "C003"
	CodeInternal       Code = "C004"

	// User
	CodeUserNotFound         Code = "U001"
	CodeDuplicateNickname    Code = "U002"
	CodeDuplicateLoginID     Code = "U003"
	CodeLoginInputInvalid    Code = "U004"
	CodeNicknameUpdateFailed Code = "U005"

	// Friend
	CodeFriendRequestExists   Code = "F001"
	CodeFriendRequestNotFound Code = "F002"
	CodeFriendshipNotFound    Code = "F003"

	// Chat
	CodeChatRoomNotFound Code = "CH001"
)

// AppError is a domain error with a stable code and a client-safe message.
type AppError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// HTTPStatus maps an error code to the response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeEntityNotFound, CodeUserNotFound, CodeFriendRequestNotFound,
		CodeFriendshipNotFound, CodeChatRoomNotFound:
		return http.StatusNotFound
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// As unwraps err into an *AppError if one is in the chain.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Domain errors reused across services.
var (
	ErrUserNotFound          = New(CodeUserNotFound, "user not found")
	ErrDuplicateNickname     = New(CodeDuplicateNickname, "nickname already in use")
	ErrDuplicateLoginID      = New(CodeDuplicateLoginID, "login id already in use")
	ErrLoginInputInvalid     = New(CodeLoginInputInvalid, "login id or password is incorrect")
	ErrNicknameSameAsCurrent = New(CodeNicknameUpdateFailed, "new nickname is identical to the current one")
	ErrFriendRequestExists   = New(CodeFriendRequestExists, "friend request already exists or users are already friends")
	ErrFriendRequestNotFound = New(CodeFriendRequestNotFound, "friend request not found")
	ErrFriendshipNotFound    = New(CodeFriendshipNotFound, "friendship not found")
	ErrChatRoomNotFound      = New(CodeChatRoomNotFound, "chat room not found")
)
