package services

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnprocessable      = errors.New("unprocessable")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
