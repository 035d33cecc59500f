package bus

import "errors"

// ErrBusDisposed is returned by Subscribe once the bus has been disposed.
var ErrBusDisposed = errors.New("bus: disposed")
