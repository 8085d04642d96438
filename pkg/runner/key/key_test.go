package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestKeyPrintsLegend(t *testing.T) {
	var out bytes.Buffer
	if err := (&Key{Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("key: %v", err)
	}
	got := out.String()
	for _, want := range []string{"W··", "·H·", "··F", "already watched", ":)", "sleeping", ">:("} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}
