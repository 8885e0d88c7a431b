package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrPollNotFound       = errors.New("poll not found")
	ErrInvalidPollID      = errors.New("invalid poll id")
	ErrGameNotFound       = errors.New("game not found in this poll")
	ErrGameAlreadyAdded   = errors.New("this game has already been added to the poll")
	ErrVoteExists         = errors.New("vote already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidUsername    = errors.New("username must be 3-20 characters (letters, digits, underscore)")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrCatalogUnavailable = errors.New("game catalog unavailable")
	ErrInternal           = errors.New("internal server error")
)
