package theme

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func newTestRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard)
}

func TestToggleFlipsPreference(t *testing.T) {
	renderer := newTestRenderer()
	renderer.SetHasDarkBackground(false)
	store := NewStore(renderer)

	if store.Dark() {
		t.Fatal("expected light start")
	}
	if !store.Toggle() {
		t.Fatal("first toggle should enable dark mode")
	}
	if !renderer.HasDarkBackground() {
		t.Fatal("renderer should follow the preference")
	}
	if store.Toggle() {
		t.Fatal("second toggle should disable dark mode")
	}
	if renderer.HasDarkBackground() {
		t.Fatal("renderer should follow the preference back")
	}
}

func TestToggleNotifiesSubscribers(t *testing.T) {
	renderer := newTestRenderer()
	renderer.SetHasDarkBackground(false)
	store := NewStore(renderer)

	var seen []bool
	store.OnChange(func(dark bool) { seen = append(seen, dark) })

	store.Toggle()
	store.Toggle()
	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Fatalf("unexpected notifications %v", seen)
	}
}

func TestStylesRenderThroughOwnRenderer(t *testing.T) {
	store := NewStore(newTestRenderer())
	styles := store.Styles()
	if got := styles.Value.Render("plain"); got == "" {
		t.Fatalf("unexpected render %q", got)
	}
}
