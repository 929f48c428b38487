package ui

// KeyEscape closes open overlays.
const KeyEscape = "Escape"

// Shortcuts routes key presses to the elements they act on. Nil fields are
// skipped.
type Shortcuts struct {
	Overlay *LoadingOverlay
	Upload  *Section
}

// HandleKey applies the shortcut bound to key and reports whether one was.
// Escape hides the upload section and the loading overlay.
func (s Shortcuts) HandleKey(key string) bool {
	if key != KeyEscape {
		return false
	}
	if s.Upload != nil {
		s.Upload.Hide()
	}
	if s.Overlay != nil {
		s.Overlay.Hide()
	}
	return true
}
