package platform

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/gogpu/gpucontext"
)

// EnvPlatform names the environment variable that selects a backend.
const EnvPlatform = "GGWIN_PLATFORM"

// Registry errors.
var (
	// ErrNoPlatform is returned when no backend is registered.
	ErrNoPlatform = errors.New("platform: no backend registered")

	// ErrUnknownPlatform is returned when the requested backend is not
	// registered.
	ErrUnknownPlatform = errors.New("platform: unknown backend")
)

// Opener creates a backend instance.
type Opener func() (Platform, error)

// priority lists backends from most to least preferred.
var priority = []string{"sdl", "term", "headless"}

var registry = gpucontext.NewRegistry[Opener](gpucontext.WithPriority(priority...))

// Register makes a backend available under name. Backends call it from
// init.
func Register(name string, open Opener) {
	registry.Register(name, func() Opener { return open })
}

// Registered reports whether a backend named name is available.
func Registered(name string) bool {
	return registry.Has(name)
}

// Open opens the named backend. An empty name selects the backend named
// by GGWIN_PLATFORM; if that is unset too, registered backends are tried
// from most to least preferred and the first that opens wins.
func Open(name string) (Platform, error) {
	if name == "" {
		name = os.Getenv(EnvPlatform)
	}
	if name != "" {
		return open(name)
	}
	if registry.Count() == 0 {
		return nil, ErrNoPlatform
	}

	var errs []error
	for _, name := range candidates() {
		p, err := open(name)
		if err == nil {
			return p, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// candidates returns registered backend names in preference order.
func candidates() []string {
	var names []string
	for _, name := range priority {
		if registry.Has(name) {
			names = append(names, name)
		}
	}
	var rest []string
	for _, name := range registry.Available() {
		if !slices.Contains(priority, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

func open(name string) (Platform, error) {
	opener := registry.Get(name)
	if opener == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
	}
	p, err := opener()
	if err != nil {
		return nil, fmt.Errorf("platform: open %s: %w", name, err)
	}
	return p, nil
}
