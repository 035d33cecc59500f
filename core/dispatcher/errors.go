package dispatcher

import "errors"

var (
	// ErrAlreadyStarted is returned by Start when the dispatcher's replay
	// loop is already running.
	ErrAlreadyStarted = errors.New("dispatcher: already started")
	// ErrNotStarted is returned by Stop when the dispatcher was never
	// started.
	ErrNotStarted = errors.New("dispatcher: not started")
	// ErrAlreadyRegistered is returned by RegisterNetworkJob when typeName
	// already has a factory registered.
	ErrAlreadyRegistered = errors.New("dispatcher: type already registered")
	// ErrOffline is the terminal error a JobHandle completes with when a
	// NetworkAction job with no optimistic result is dispatched while
	// disconnected.
	ErrOffline = errors.New("dispatcher: offline, job queued for replay")
)
