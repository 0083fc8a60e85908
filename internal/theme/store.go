package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Store holds the dark-mode preference for the process. Toggling mirrors
// the preference onto the lipgloss renderer so styled output follows, and
// notifies subscribers.
type Store struct {
	mu          sync.RWMutex
	dark        bool
	renderer    *lipgloss.Renderer
	subscribers []func(dark bool)
}

// NewStore builds a theme store seeded from the renderer's detected
// background. A nil renderer falls back to the lipgloss default.
func NewStore(renderer *lipgloss.Renderer) *Store {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &Store{
		dark:     renderer.HasDarkBackground(),
		renderer: renderer,
	}
}

// Dark reports whether dark mode is active.
func (s *Store) Dark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// Toggle flips the preference and returns the new state.
func (s *Store) Toggle() bool {
	s.mu.Lock()
	s.dark = !s.dark
	dark := s.dark
	s.renderer.SetHasDarkBackground(dark)
	subscribers := make([]func(bool), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(dark)
	}
	return dark
}

// OnChange registers fn to run after every toggle.
func (s *Store) OnChange(fn func(dark bool)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Styles are the lipgloss styles the CLI renders with, built for the
// current preference.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Error  lipgloss.Style
	Accent lipgloss.Style
}

// Styles builds the style set for the active theme.
func (s *Store) Styles() Styles {
	r := s.renderer
	accent := lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	muted := lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	return Styles{
		Title:  r.NewStyle().Bold(true).Foreground(accent),
		Label:  r.NewStyle().Foreground(muted),
		Value:  r.NewStyle(),
		Error:  r.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		Accent: r.NewStyle().Foreground(accent),
	}
}
