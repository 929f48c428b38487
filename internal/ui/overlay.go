package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/soyeahso/sasagent/internal/format"
)

// Default messages for the loading indicators.
const (
	DefaultLoaderMessage  = "Loading..."
	DefaultOverlayMessage = "Processing..."
)

// Loader returns the markup of an inline loading spinner. An empty message
// becomes DefaultLoaderMessage.
func Loader(message string) string {
	if message == "" {
		message = DefaultLoaderMessage
	}
	return fmt.Sprintf(`<div class="loader"><div class="spinner"></div><div class="loading-text">%s</div></div>`,
		format.EscapeHTML(message))
}

// LoadingOverlay is a single blocking progress indicator. Callers hold the
// reference; there is no global instance.
type LoadingOverlay struct {
	w io.Writer

	mu      sync.Mutex
	visible bool
	message string
}

// NewLoadingOverlay creates a hidden overlay. Each Show prints its message
// to w; a nil w keeps the overlay silent.
func NewLoadingOverlay(w io.Writer) *LoadingOverlay {
	return &LoadingOverlay{w: w}
}

// Show makes the overlay visible with message, replacing any previous one.
// An empty message becomes DefaultOverlayMessage.
func (o *LoadingOverlay) Show(message string) {
	if message == "" {
		message = DefaultOverlayMessage
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = true
	o.message = message
	if o.w != nil {
		fmt.Fprintln(o.w, message)
	}
}

// Hide hides the overlay. Hiding a hidden overlay is a no-op.
func (o *LoadingOverlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = false
}

// Visible reports whether the overlay is showing.
func (o *LoadingOverlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Message returns the last message shown.
func (o *LoadingOverlay) Message() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.message
}

// Markup renders the overlay, or "" when hidden.
func (o *LoadingOverlay) Markup() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.visible {
		return ""
	}
	return fmt.Sprintf(`<div class="loading-overlay"><div class="loading-content"><div class="spinner"></div><div class="loading-message">%s</div></div></div>`,
		format.EscapeHTML(o.message))
}
