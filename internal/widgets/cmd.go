package widgets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"

	"paneboard/internal/module"
	"paneboard/internal/pty"
)

// maxScrollback bounds the output kept per cmd pane.
const maxScrollback = 64 << 10

var errNoPTY = errors.New("cmd panes are disabled: no pty runner")

// CmdPane runs a shell command line in a pseudo-terminal and shows its output.
// The process starts on the first Update and is killed by Destroy.
type CmdPane struct {
	module.Base
	line   string
	runner pty.Runner
	shell  string
	logger *slog.Logger

	mu     sync.Mutex
	output bytes.Buffer
	dirty  bool

	vp      viewport.Model
	size    pty.Size
	ptmx    io.ReadWriteCloser
	cancel  context.CancelFunc
	started bool
	err     error
}

func newCmd(fragment string, deps Deps) (module.Content, error) {
	if fragment == "" {
		return nil, errors.New("cmd: empty command line")
	}
	return &CmdPane{
		line:   fragment,
		runner: deps.PTY,
		shell:  deps.Shell,
		logger: deps.Logger,
		vp:     viewport.New(0, 0),
	}, nil
}

func (c *CmdPane) Serialize() (string, error) { return module.Escape(c.line), nil }

// Copy returns a fresh, unstarted pane for the same command line.
func (c *CmdPane) Copy() (module.Content, error) {
	return &CmdPane{line: c.line, runner: c.runner, shell: c.shell, logger: c.logger, vp: viewport.New(0, 0)}, nil
}

func (c *CmdPane) Update() {
	if !c.started {
		c.start()
	}
}

func (c *CmdPane) start() {
	c.started = true
	if c.runner == nil {
		c.err = errNoPTY
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.Command(c.shell, "-c", c.line)
	size := c.size
	if size.Rows == 0 {
		size = pty.SizeOf(80, 24)
	}
	ptmx, err := c.runner.Start(ctx, cmd, size)
	if err != nil {
		cancel()
		c.err = err
		c.logger.Warn("cmd pane failed to start", "line", c.line, "err", err)
		return
	}
	c.ptmx, c.cancel = ptmx, cancel
	c.logger.Debug("cmd pane started", "line", c.line)
	go c.pump(ptmx)
}

func (c *CmdPane) pump(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.output.Write(buf[:n])
			if over := c.output.Len() - maxScrollback; over > 0 {
				c.output.Next(over)
			}
			c.dirty = true
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Write forwards input to the running process.
func (c *CmdPane) Write(p []byte) (int, error) {
	if c.ptmx == nil {
		return 0, io.ErrClosedPipe
	}
	return c.ptmx.Write(p)
}

// Output returns a copy of the captured output.
func (c *CmdPane) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output.String()
}

func (c *CmdPane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if c.err != nil {
		return place(width, height, mutedStyle.Render(c.line+": "+c.err.Error()))
	}
	resized := false
	if size := pty.SizeOf(width, height); size != c.size {
		c.size, resized = size, true
		c.vp.Width, c.vp.Height = width, height
		if c.ptmx != nil {
			if err := c.runner.Resize(c.ptmx, size); err != nil {
				c.logger.Debug("cmd pane resize failed", "err", err)
			}
		}
	}
	c.mu.Lock()
	if c.dirty || resized {
		c.vp.SetContent(c.output.String())
		c.vp.GotoBottom()
		c.dirty = false
	}
	c.mu.Unlock()
	return c.vp.View()
}

func (c *CmdPane) Destroy() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.ptmx != nil {
		_ = c.ptmx.Close()
		c.ptmx = nil
	}
}
