// Package profile persists layout descriptors under user-chosen names.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no profile exists under a name.
var ErrNotFound = errors.New("profile not found")

// Store saves and loads descriptors by profile name. Names are normalized
// with Normalize, so "My Board" and "my-board" are the same profile.
type Store interface {
	Load(ctx context.Context, name string) (string, error)
	Save(ctx context.Context, name, descriptor string) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Normalize lowercases name and replaces spaces with hyphens.
func Normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

func validName(name string) (string, error) {
	n := Normalize(name)
	if n == "" || n == "." || n == ".." || strings.ContainsAny(n, `/\`) {
		return "", fmt.Errorf("invalid profile name %q", name)
	}
	return n, nil
}
