package preset_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xtding233/equity-backend/internal/equity"
	"github.com/xtding233/equity-backend/internal/preset"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultsMissingFile(t *testing.T) {
	l := preset.NewLoader(t.TempDir())
	d, err := l.Defaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != equity.SystemDefaults() {
		t.Fatalf("got %+v want system defaults", d)
	}
}

func TestDefaultsOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "defaults.yaml"), "iterations: 5000\nhandSize: 4\n")

	d, err := preset.NewLoader(dir).Defaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := equity.SystemDefaults()
	want.Iterations = 5000
	want.HandSize = 4
	if d != want {
		t.Fatalf("got %+v want %+v", d, want)
	}
}

func TestDefaultsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "defaults.yaml"), "numDecks: 0\nboard: As\n")
	if _, err := preset.NewLoader(dir).Defaults(); err == nil {
		t.Fatalf("expected error for invalid defaults")
	}

	writeFile(t, filepath.Join(dir, "defaults.yaml"), "iterations: [\n")
	if _, err := preset.NewLoader(dir).Defaults(); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestPreset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "presets", "omaha.yaml"), "handSize: 4\nhands:\n  - As,Kd,Qh,Jc\n")
	l := preset.NewLoader(dir)

	raw, err := l.Preset("omaha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := equity.Raw{"handSize": 4, "hands": []any{"As,Kd,Qh,Jc"}}
	if !reflect.DeepEqual(raw, want) {
		t.Fatalf("got %#v want %#v", raw, want)
	}

	// callers get their own copy
	raw["handSize"] = 9
	again, _ := l.Preset("omaha")
	if again["handSize"] != 4 {
		t.Fatalf("cached preset mutated: %v", again)
	}

	if _, err := l.Preset("holdem"); !errors.Is(err, preset.ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
	for _, bad := range []string{"", "../defaults", "Omaha", "a/b", ".hidden"} {
		if _, err := l.Preset(bad); !errors.Is(err, preset.ErrBadName) {
			t.Fatalf("%q: expected ErrBadName, got %v", bad, err)
		}
	}
}

func TestApplyRequestWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "presets", "deep.yaml"), "iterations: 1000000\nnumDecks: 2\n")
	l := preset.NewLoader(dir)

	req := equity.Raw{"numPlayers": 3, "iterations": 10}
	got, err := l.Apply("deep", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := equity.Raw{"numPlayers": 3, "iterations": 10, "numDecks": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if len(req) != 2 {
		t.Fatalf("request mutated: %v", req)
	}

	plain, err := l.Apply("", req)
	if err != nil || !reflect.DeepEqual(plain, req) {
		t.Fatalf("empty preset: got %v, %v", plain, err)
	}

	if _, err := l.Apply("missing", req); !errors.Is(err, preset.ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
}

func TestInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets", "p.yaml")
	writeFile(t, path, "iterations: 1\n")
	writeFile(t, filepath.Join(dir, "defaults.yaml"), "iterations: 7\n")
	l := preset.NewLoader(dir)

	if raw, _ := l.Preset("p"); raw["iterations"] != 1 {
		t.Fatalf("got %v", raw)
	}
	if d, _ := l.Defaults(); d.Iterations != 7 {
		t.Fatalf("got %+v", d)
	}

	writeFile(t, path, "iterations: 2\n")
	writeFile(t, filepath.Join(dir, "defaults.yaml"), "iterations: 8\n")
	if raw, _ := l.Preset("p"); raw["iterations"] != 1 {
		t.Fatalf("expected cached value, got %v", raw)
	}

	l.Invalidate()
	if raw, _ := l.Preset("p"); raw["iterations"] != 2 {
		t.Fatalf("expected reloaded value, got %v", raw)
	}
	if d, _ := l.Defaults(); d.Iterations != 8 {
		t.Fatalf("expected reloaded defaults, got %+v", d)
	}
}

func TestNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "presets", "omaha.yaml"), "handSize: 4\n")
	writeFile(t, filepath.Join(dir, "presets", "deep.yaml"), "iterations: 5\n")
	writeFile(t, filepath.Join(dir, "presets", "notes.txt"), "x")

	names, err := preset.NewLoader(dir).Names()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"deep", "omaha"}) {
		t.Fatalf("got %v", names)
	}
}

func TestPresetResolves(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "presets", "omaha.yaml"), "handSize: 4\n")
	l := preset.NewLoader(dir)

	raw, err := l.Apply("omaha", equity.Raw{"hands": []any{"As,Kd,Qh,Jc"}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	d, _ := l.Defaults()
	got, err := equity.Resolve(equity.NewValidator(nil, d), equity.NewNormalizer(d), raw)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.HandSize != 4 || got.NumPlayers != 1 {
		t.Fatalf("got %+v", got)
	}
}
