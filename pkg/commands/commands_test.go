package commands

import (
	"reflect"
	"testing"
	"time"

	"tableflip.dev/filmdeck/pkg/store"
)

func TestNewRegistersCommands(t *testing.T) {
	root := New()
	want := []string{"comment", "completion", "import", "info", "key", "list", "seed", "toggle", "ui", "version"}
	var got []string
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			continue
		}
		got = append(got, c.Name())
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCommentHasSubcommands(t *testing.T) {
	cmd, _, err := New().Find([]string{"comment", "add"})
	if err != nil || cmd.Name() != "add" {
		t.Fatalf("comment add not found: %v", err)
	}
	cmd, _, err = New().Find([]string{"comment", "rm"})
	if err != nil || cmd.Name() != "delete" {
		t.Fatalf("comment delete alias not found: %v", err)
	}
}

func TestMovieCompletionsMatchPrefix(t *testing.T) {
	all := store.Sample(12, time.Now())
	got := movieCompletions(all, "1")
	want := []string{"1\t" + all[1].Info.Title, "10\t" + all[10].Info.Title, "11\t" + all[11].Info.Title}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
