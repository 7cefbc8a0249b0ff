package simulation

import "errors"

var (
	// ErrNoProfile indicates a simulation was requested without a device
	ErrNoProfile = errors.New("no device profile")

	// ErrNoScreen indicates the device profile has no screen to simulate
	ErrNoScreen = errors.New("device profile has no screen")
)
