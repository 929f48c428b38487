package ui

import "sync"

// Themes a Surface accepts.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Surface is the root element whose theme attribute styles everything
// beneath it.
type Surface struct {
	mu    sync.Mutex
	theme string
}

// NewSurface creates a surface with the given theme.
func NewSurface(theme string) *Surface {
	return &Surface{theme: theme}
}

// Theme returns the theme attribute.
func (s *Surface) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme sets the theme attribute.
func (s *Surface) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

// Section is a collapsible region such as the upload form.
type Section struct {
	mu      sync.Mutex
	visible bool
}

// NewSection creates a section with the given visibility.
func NewSection(visible bool) *Section {
	return &Section{visible: visible}
}

func (s *Section) Show() { s.set(true) }
func (s *Section) Hide() { s.set(false) }

// Visible reports whether the section is shown.
func (s *Section) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Section) set(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = v
}
