package core

import (
	"errors"
	"time"
)

// Engine defaults
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// Error definitions
var (
	ErrAlreadyServing = errors.New("engine is already serving")
)
