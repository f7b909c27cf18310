package cubeview

import "errors"

// Sentinel errors for the cubeview package.
var (
	// Connection errors
	ErrNotConnected     = errors.New("cubeview: not connected to device")
	ErrAlreadyConnected = errors.New("cubeview: already connected")
	ErrDeviceNotFound   = errors.New("cubeview: device not found")
	ErrTimeout          = errors.New("cubeview: operation timed out")

	// Token errors
	ErrInvalidToken = errors.New("cubeview: token does not map to a face turn")

	// Decode errors (strict mode only; lenient decode never errors)
	ErrNoStrategy = errors.New("cubeview: payload matched no decode strategy")
)
