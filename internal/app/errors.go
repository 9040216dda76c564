package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUserNotFound      = errors.New("user not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotParticipant    = errors.New("caller is not a participant of this message")
	ErrNotRecipient      = errors.New("only the recipient may mark a message read")
)
