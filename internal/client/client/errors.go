package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrBadRequest         = errors.New("bad request")
	ErrServer             = errors.New("server error")
)
