package domain

import "errors"

var (
	ErrPlatformNotFound = errors.New("platform_not_found")
	ErrInvalidConfig    = errors.New("invalid_adapter_config")
)
