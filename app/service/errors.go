package service

import "errors"

var (
	ErrInvalidRequest          = errors.New("invalid request")
	ErrDescriptorNotFound      = errors.New("descriptor not found")
	ErrDescriptorAlreadyExists = errors.New("descriptor already exists")
)
