package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paneboard/internal/config"
	"paneboard/internal/layout"
	"paneboard/internal/profile"
)

// isolate points config and profile lookups at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PANEBOARD_CONFIG", "")
	t.Setenv(profile.DirEnv, "")
	t.Setenv("PANEBOARD_PROFILE_DIR", filepath.Join(dir, "profiles"))
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidate_OK(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "validate", "{Dh50%(text:a)[(text:b)(dummy:)]}")
	require.NoError(t, err)
	assert.Equal(t, "ok: 3 panes\n", out)
}

func TestValidate_PointsAtSyntaxError(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "validate", "{Dq50%(text:a)(text:b)}")
	require.Error(t, err)

	var syn *layout.SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, 2, syn.Offset)
	assert.Equal(t, "  {Dq50%(text:a)(text:b)}\n    ^\n", out)
}

func TestValidate_PointsAtEmptyTabs(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "validate", "[]")
	require.Error(t, err)

	var syn *layout.SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, "  []\n   ^\n", out)
}

func TestValidate_SuggestsModule(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "validate", "(txt:a)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "text"?`)
}

func TestFmt_Canonical(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "fmt", "{Dh50.0%(text:a)(text:b)}")
	require.NoError(t, err)
	assert.Equal(t, "{Dh50%(text:a)(text:b)}\n", out)
}

func TestFmt_ReadsStdin(t *testing.T) {
	isolate(t)
	out, err := execute(t, "{dv3p(text:a)(text:b)}\n", "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, "{dv3p(text:a)(text:b)}\n", out)
}

func TestFmt_FallsBackToDefaultLayout(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "fmt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{Dh30%(clock:"), out)
	assert.Contains(t, out, "(md:# paneboard")
}

func TestFmt_MissingNamedProfile(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "fmt", "--profile", "nope")
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestFmt_LoadsConfiguredProfile(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "profiles", "save", "default", "(text:saved)")
	require.NoError(t, err)

	out, err := execute(t, "", "fmt")
	require.NoError(t, err)
	assert.Equal(t, "(text:saved)\n", out)
}

func TestInspect_JSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "inspect", "--format", "json", "{Dh40p(text:a)[(dummy:)(clock:)]}")
	require.NoError(t, err)

	var snap layout.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "split", snap.Kind)
	assert.Equal(t, "px", snap.Unit)
	assert.Equal(t, 40.0, snap.Size)
	require.Len(t, snap.Children, 2)
	assert.Equal(t, "text", snap.Children[0].Module)
	assert.Equal(t, "a", snap.Children[0].Fragment)
	assert.Equal(t, "tabs", snap.Children[1].Kind)
	require.Len(t, snap.Children[1].Children, 2)
	assert.True(t, snap.Children[1].Children[0].Selected)
}

func TestInspect_YAML(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "inspect", "(text:hi)")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: leaf")
	assert.Contains(t, out, "module: text")
}

func TestInspect_RejectsFormat(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "inspect", "--format", "xml", "(text:hi)")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestRender_Size(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "render", "--width", "30", "--height", "6", "{Dh50%(text:hello)(text:world)}")
	require.NoError(t, err)

	frame := strings.TrimSuffix(out, "\n")
	assert.Equal(t, 30, lipgloss.Width(frame))
	assert.Equal(t, 6, lipgloss.Height(frame))
	assert.Contains(t, frame, "hello")
	assert.Contains(t, frame, "world")
}

func TestModules_ListsSummaries(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "modules")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "clock"))
	assert.Contains(t, out, "state  value of a device-state key")
}

func TestProfiles_RoundTrip(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "profiles", "save", "Hall Panel", "[(clock:)(text:x)]")
	require.NoError(t, err)
	assert.Equal(t, "saved hall-panel\n", out)

	out, err = execute(t, "", "profiles", "list")
	require.NoError(t, err)
	assert.Equal(t, "hall-panel\n", out)

	out, err = execute(t, "", "profiles", "show", "hall panel")
	require.NoError(t, err)
	assert.Equal(t, "[(clock:)(text:x)]\n", out)

	out, err = execute(t, "", "profiles", "rm", "hall-panel")
	require.NoError(t, err)
	assert.Equal(t, "deleted hall-panel\n", out)

	out, err = execute(t, "", "profiles", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestProfiles_SaveRejectsInvalid(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "profiles", "save", "desk", "(nope:)")
	require.Error(t, err)

	out, err := execute(t, "", "profiles", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestProfiles_RedisStore(t *testing.T) {
	isolate(t)
	mr := miniredis.RunT(t)
	cfg := writeConfig(t, `
[profile]
store = "redis"
redis_addr = "`+mr.Addr()+`"
`)

	_, err := execute(t, "", "--config", cfg, "profiles", "save", "Desk", "(text:x)")
	require.NoError(t, err)
	assert.Equal(t, "(text:x)", mr.HGet(profile.DefaultRedisKey, "desk"))

	out, err := execute(t, "", "--config", cfg, "fmt", "--profile", "desk")
	require.NoError(t, err)
	assert.Equal(t, "(text:x)\n", out)
}

func TestStartSession_WiresStatusServerAndState(t *testing.T) {
	isolate(t)
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(statePath, []byte("door: open\n"), 0o644))

	cfg, err := config.Load(writeConfig(t, `
[http]
addr = "127.0.0.1:0"

[state]
file = "`+statePath+`"
`))
	require.NoError(t, err)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(io.Discard)
	s, err := startSession(cmd, &rootOptions{cfg: cfg}, []string{"{Dh50%(state:door)(text:b)}"}, "", nil)
	require.NoError(t, err)
	defer s.Close()

	require.NotNil(t, s.Model)
	v, ok := s.State.Lookup("door")
	assert.True(t, ok)
	assert.Equal(t, "open", v)
	assert.Equal(t, "default", s.Model.Profile)

	resp, err := http.Get("http://" + s.Server.Addr() + "/layout?format=descriptor")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "{Dh50%(state:door)(text:b)}\n", string(body))
}

func TestStartSession_MountErrorReleasesEverything(t *testing.T) {
	isolate(t)
	cfg, err := config.Load("")
	require.NoError(t, err)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	_, err = startSession(cmd, &rootOptions{cfg: cfg}, []string{"(nope:)"}, "", nil)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "^")
}
