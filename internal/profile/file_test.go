package profile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewFileStore_UsesEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)

	store, err := NewFileStore("")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if store.BaseDir() != dir {
		t.Errorf("BaseDir: expected %q, got %q", dir, store.BaseDir())
	}
}

func TestNewFileStore_ExplicitDirWins(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if store.BaseDir() != dir {
		t.Errorf("BaseDir: expected %q, got %q", dir, store.BaseDir())
	}
}

func TestFileStore_Path_NormalizesName(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir)

	got := store.Path("My Board")
	want := filepath.Join(dir, "my-board.layout")
	if got != want {
		t.Errorf("Path: expected %q, got %q", want, got)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(filepath.Join(t.TempDir(), "nested", "profiles"))

	desc := "{Dh30%(clock:)(text:hi)}"
	if err := store.Save(ctx, "Kitchen Wall", desc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx, "kitchen-wall")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != desc {
		t.Errorf("Load: expected %q, got %q", desc, got)
	}

	if err := store.Save(ctx, "kitchen wall", "(dummy:)"); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, _ = store.Load(ctx, "Kitchen Wall")
	if got != "(dummy:)" {
		t.Errorf("Load after overwrite: got %q", got)
	}
}

func TestFileStore_Load_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "hand-edited.layout"), []byte("  (text:x)\n\n"), 0644)
	store, _ := NewFileStore(dir)

	got, err := store.Load(context.Background(), "hand-edited")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "(text:x)" {
		t.Errorf("Load: expected trimmed descriptor, got %q", got)
	}
}

func TestFileStore_Missing(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	if _, err := store.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing: expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, _ := NewFileStore(dir)

	names, err := listDir(t, filepath.Join(dir, "absent"))
	if err != nil || len(names) != 0 {
		t.Fatalf("List on missing dir: expected empty, got %v, %v", names, err)
	}

	for _, n := range []string{"b", "a", "c"} {
		if err := store.Save(ctx, n, "(dummy:)"); err != nil {
			t.Fatalf("Save %s: %v", n, err)
		}
	}
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644)
	_ = os.Mkdir(filepath.Join(dir, "sub.layout"), 0755)

	names, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List: expected %v, got %v", want, names)
	}

	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	names, _ = store.List(ctx)
	if want := []string{"a", "c"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List after delete: expected %v, got %v", want, names)
	}
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	for _, name := range []string{"", "  ", "..", "../escape", `a\b`} {
		if err := store.Save(context.Background(), name, "(dummy:)"); err == nil {
			t.Errorf("Save %q: expected error", name)
		}
	}
}

func listDir(t *testing.T, dir string) ([]string, error) {
	t.Helper()
	store, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return store.List(context.Background())
}
