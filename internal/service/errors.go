package service

import "errors"

// Business errors surfaced to the handler layer.
var (
	ErrItemNotFound         = errors.New("item not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrSelfNegotiation      = errors.New("cannot open a chat on your own item")
	ErrNotParticipant       = errors.New("user is not a participant of this room")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: email already exists")
	ErrInternalServer       = errors.New("internal server error")
)
