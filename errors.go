package ggwin

import (
	"errors"
	"fmt"
	"os"
)

// Common errors returned by App and Window operations.
var (
	// ErrNoGPUDevice is returned when the shared GPU device cannot be opened.
	ErrNoGPUDevice = errors.New("ggwin: no usable GPU device")

	// ErrNoPlatform is returned when no native backend can be opened.
	ErrNoPlatform = errors.New("ggwin: no windowing platform")

	// ErrAlreadyRunning is returned by Run when the loop is already running.
	ErrAlreadyRunning = errors.New("ggwin: application loop already running")

	// ErrAppClosed is returned when the App has been closed.
	ErrAppClosed = errors.New("ggwin: application closed")

	// ErrInvalidDimensions is returned when a window size is negative.
	ErrInvalidDimensions = errors.New("ggwin: invalid dimensions")
)

// FatalHandler handles startup failures that leave nothing able to
// render. The default handler logs the error and exits the process.
type FatalHandler func(err error)

func defaultFatal(err error) {
	Logger().Error("ggwin: fatal", "err", err)
	fmt.Fprintln(os.Stderr, "ggwin:", err)
	os.Exit(1)
}
