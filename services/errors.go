package services

import "errors"

// Sentinel errors returned by the services; controllers translate them
// to HTTP statuses.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrRequestNotFound  = errors.New("join request not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateRequest = errors.New("you have already requested to join this event")
	ErrNotEventCreator  = errors.New("you are not authorized to update this request")
	ErrNotAuthorized    = errors.New("you are not authorized to delete this request")
	ErrInvalidStatus    = errors.New("invalid status")
)
