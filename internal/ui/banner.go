// Package ui holds the presentation state shared by the command-line front
// end: the status banner, the loading overlay, the theme surface and the
// keyboard shortcuts that act on them.
package ui

import (
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Kind is the severity of a status message.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// AutoHideDelay is how long a success message stays visible.
const AutoHideDelay = 3 * time.Second

var kindColors = map[Kind]color.Attribute{
	KindInfo:    color.FgCyan,
	KindSuccess: color.FgGreen,
	KindError:   color.FgRed,
	KindWarning: color.FgYellow,
}

// StatusBanner shows one message at a time. Each Show prints the message
// to the writer in the kind's color.
type StatusBanner struct {
	w        io.Writer
	colored  bool
	autoHide time.Duration

	mu      sync.Mutex
	visible bool
	kind    Kind
	message string
	timer   *time.Timer
}

// NewStatusBanner creates a hidden banner writing to w. colored toggles
// ANSI colors regardless of whether w is a terminal.
func NewStatusBanner(w io.Writer, colored bool) *StatusBanner {
	return &StatusBanner{w: w, colored: colored, autoHide: AutoHideDelay}
}

// SetAutoHideDelay overrides AutoHideDelay.
func (b *StatusBanner) SetAutoHideDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.autoHide = d
}

// Show displays message. Unknown kinds are shown as info. Success messages
// hide themselves after the auto-hide delay unless replaced first.
func (b *StatusBanner) Show(kind Kind, message string) {
	if _, ok := kindColors[kind]; !ok {
		kind = KindInfo
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopTimerLocked()
	b.visible = true
	b.kind = kind
	b.message = message

	if kind == KindSuccess {
		var t *time.Timer
		t = time.AfterFunc(b.autoHide, func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.timer == t {
				b.visible = false
				b.timer = nil
			}
		})
		b.timer = t
	}

	if b.w != nil {
		c := color.New(kindColors[kind])
		if b.colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		c.Fprintf(b.w, "[%s] %s\n", kind, message)
	}
}

// Hide hides the banner and cancels any pending auto-hide.
func (b *StatusBanner) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopTimerLocked()
	b.visible = false
}

// Visible reports whether a message is showing.
func (b *StatusBanner) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Current returns the last message shown and its kind.
func (b *StatusBanner) Current() (Kind, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kind, b.message
}

func (b *StatusBanner) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
