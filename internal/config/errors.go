package config

import "errors"

var (
	ErrMissingGitBinary = errors.New("git binary is required")
	ErrInvalidTimeout   = errors.New("git timeout must be positive")
	ErrInvalidOutput    = errors.New("output format must be text or yaml")
	ErrInvalidLogLevel  = errors.New("invalid log level")
)
