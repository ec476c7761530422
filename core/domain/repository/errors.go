package repository

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrMongodb        = errors.New("mongodb operation failed")
)
