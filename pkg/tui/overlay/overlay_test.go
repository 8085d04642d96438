package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
)

func TestComposeCentersForeground(t *testing.T) {
	bg := strings.Repeat("..........\n", 5)
	out := Strip(Compose(bg, 10, 5, "ab\ncd", Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}))
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), out)
	}
	if lines[1] != "....ab...." {
		t.Fatalf("unexpected row 1: %q", lines[1])
	}
	if lines[2] != "....cd...." {
		t.Fatalf("unexpected row 2: %q", lines[2])
	}
	if lines[0] != ".........." || lines[4] != ".........." {
		t.Fatalf("rows outside the overlay changed: %q", out)
	}
}

func TestComposeTopLeftWithMargins(t *testing.T) {
	bg := strings.Repeat("xxxxxx\n", 3)
	out := Strip(Compose(bg, 6, 3, "ok", Placement{MarginX: 1, MarginY: 1}))
	lines := strings.Split(out, "\n")
	if lines[1] != "xokxxx" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestComposeOffsetScrollsForeground(t *testing.T) {
	out := Strip(Compose("", 4, 2, "l1\nl2\nl3", Placement{Offset: 1}))
	lines := strings.Split(out, "\n")
	if strings.TrimSpace(lines[0]) != "l2" || strings.TrimSpace(lines[1]) != "l3" {
		t.Fatalf("unexpected scrolled overlay: %q", out)
	}
}

func TestComposeStripsStyledBackground(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("abcdefgh")
	out := Strip(Compose(styled, 8, 1, "ZZ", Placement{Horizontal: lipgloss.Center}))
	if out != "abcZZfgh" {
		t.Fatalf("unexpected composition: %q", out)
	}
}

func TestComposeEmptyForegroundPadsBackground(t *testing.T) {
	out := Compose("a\nb\nc", 2, 2, "", Placement{})
	if out != "a \nb " {
		t.Fatalf("unexpected background: %q", out)
	}
}
