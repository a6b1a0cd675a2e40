package service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrMissingFile  = errors.New("upload file missing")
)
