package profile

import "errors"

var (
	// ErrDeviceNotFound indicates no loaded profile has the requested name
	ErrDeviceNotFound = errors.New("device not found")

	// ErrAlreadyWatching indicates the reload manager is already running
	ErrAlreadyWatching = errors.New("already watching device directories")
)
