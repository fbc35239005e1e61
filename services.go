package ggwin

import (
	"os"
	"path/filepath"

	"github.com/gogpu/ggwin/platform"
)

// OpenLink opens url with the system handler.
func (a *App) OpenLink(url string) error {
	return a.platform.OpenURL(url)
}

// ClipboardRead returns the clipboard text. Failures are logged and
// read as an empty clipboard.
func (a *App) ClipboardRead() string {
	text, err := a.platform.ClipboardRead()
	if err != nil {
		Logger().Warn("ggwin: clipboard read failed", "err", err)
		return ""
	}
	return text
}

// ClipboardWrite replaces the clipboard text. Failures are logged.
func (a *App) ClipboardWrite(text string) {
	if err := a.platform.ClipboardWrite(text); err != nil {
		Logger().Warn("ggwin: clipboard write failed", "err", err)
	}
}

// ClipboardReadAsync reads the clipboard on the loop goroutine. The
// returned channel receives the text once the next PollEvents runs.
// Safe for concurrent use.
func (a *App) ClipboardReadAsync() <-chan string {
	ch := make(chan string, 1)
	a.Post(func() {
		ch <- a.ClipboardRead()
	})
	return ch
}

// ClipboardWriteAsync writes the clipboard on the loop goroutine. The
// returned channel is closed once the write has happened.
func (a *App) ClipboardWriteAsync(text string) <-chan struct{} {
	done := make(chan struct{})
	a.Post(func() {
		a.ClipboardWrite(text)
		close(done)
	})
	return done
}

// SetAppearance overrides the system color scheme.
func (a *App) SetAppearance(ap platform.Appearance) {
	if err := a.platform.SetAppearance(ap); err != nil {
		Logger().Warn("ggwin: set appearance failed", "appearance", ap, "err", err)
	}
}

// DarkMode reports whether the platform uses a dark color scheme.
func (a *App) DarkMode() bool { return a.platform.DarkMode() }

// SupportDir returns the per-user application support directory for
// name, creating it if needed. It returns "" if the directory cannot be
// determined or created.
func (a *App) SupportDir(name string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		Logger().Warn("ggwin: no user config dir", "err", err)
		return ""
	}
	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Warn("ggwin: create support dir failed", "dir", dir, "err", err)
		return ""
	}
	return dir
}
