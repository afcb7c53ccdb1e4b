// Package pty spawns commands attached to a pseudo-terminal for the cmd pane.
package pty

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a pane area in terminal rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// SizeOf converts a pane's cell area to a Size. Zero dimensions become 1;
// some programs refuse to start on a 0x0 terminal.
func SizeOf(width, height int) Size {
	return Size{Rows: clamp(height), Cols: clamp(width)}
}

func clamp(v int) uint16 {
	switch {
	case v < 1:
		return 1
	case v > 0xffff:
		return 0xffff
	}
	return uint16(v)
}

// Runner spawns and resizes PTY-backed processes. Tests swap in a pipe-backed fake.
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start spawns cmd in a PTY of the given size. Cancelling ctx kills the process;
// closing the returned handle hangs up the terminal.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, err
	}
	if ctx != nil {
		go func() {
			<-ctx.Done()
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
		}()
	}
	return f, nil
}

// Resize changes the PTY window size. Handles not returned by Start are ignored.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}
