package main

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestNewWatchCmd(t *testing.T) {
	cmd := newWatchCmd(&globalOptions{})

	if cmd.Use != "watch" {
		t.Errorf("Use = %q, want 'watch'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	for _, name := range []string{"debounce", "format", "output"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}

func TestDebounceDefault(t *testing.T) {
	cmd := newWatchCmd(&globalOptions{})

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("missing --debounce flag")
	}

	if flag.DefValue != "500ms" {
		t.Errorf("debounce default = %q, want '500ms'", flag.DefValue)
	}
}

func TestWatchTargets(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "frontend.yaml")
	contextFile := filepath.Join(dir, "lookup.context.json")

	targets, err := watchTargets(configFile, "", contextFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if !targets[configFile] || !targets[contextFile] {
		t.Errorf("targets = %v, want config and context file", targets)
	}

	dirs := watchDirs(targets)
	if len(dirs) != 1 || dirs[0] != dir {
		t.Errorf("watchDirs() = %v, want [%s]", dirs, dir)
	}
}

func TestIsWatched(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "frontend.yaml")
	targets, err := watchTargets(configFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to config", fsnotify.Event{Name: configFile, Op: fsnotify.Write}, true},
		{"config replaced", fsnotify.Event{Name: configFile, Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: configFile, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, false},
		{"editor swap file", fsnotify.Event{Name: configFile + ".swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWatched(targets, tt.event); got != tt.want {
				t.Errorf("isWatched(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
