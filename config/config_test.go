package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "game.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad_RequiresPath(t *testing.T) {
	path := writeConfig(t, `active = "main"`)

	_, err := Load(path)
	assert.Error(t, err, "expected error for missing path key")
}

func TestLoad_Basic(t *testing.T) {
	path := writeConfig(t, `
path = "/games/skyrim"
active = "main"
mod_root_path = "/mods/skyrim"
writable = true

[main]
mods = ["a", "b"]
`)

	gc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/games/skyrim", gc.Path)
	assert.Equal(t, "main", gc.Active)
	assert.True(t, gc.Writable)
}

func TestLoad_RunPreCommandSynonym(t *testing.T) {
	path := writeConfig(t, `
path = "/games/skyrim"
run_pre_commands = true
`)
	gc, err := Load(path)
	require.NoError(t, err)
	assert.True(t, gc.RunPreCommand, "expected run_pre_commands to set RunPreCommand")
}

func TestLoad_RunPreCommandPrecedence(t *testing.T) {
	path := writeConfig(t, `
path = "/games/skyrim"
run_pre_command = false
run_pre_commands = true
`)
	gc, err := Load(path)
	require.NoError(t, err)
	assert.False(t, gc.RunPreCommand, "run_pre_command present should win over run_pre_commands")
}

func TestParseSetSpec_MissingTable(t *testing.T) {
	path := writeConfig(t, `path = "/games/g"`)
	gc, err := Load(path)
	require.NoError(t, err)

	_, err = gc.ParseSetSpec("missing")
	assert.Error(t, err, "expected error for missing set table")
}

func TestParseSetSpec_EmptyMods(t *testing.T) {
	path := writeConfig(t, `
path = "/games/g"

[s]
mods = []
`)
	gc, err := Load(path)
	require.NoError(t, err)

	_, err = gc.ParseSetSpec("s")
	assert.Error(t, err, "expected error for empty mods array")
}

func TestParseSetSpec_WithCommandRef(t *testing.T) {
	path := writeConfig(t, `
path = "/games/g"

[s]
mods = ["a"]
writable = true
command = "launch"

[launch]
command = ["/usr/bin/echo", "hi"]
wait_for_exit = false
delay_after = 3
`)
	gc, err := Load(path)
	require.NoError(t, err)

	spec, err := gc.ParseSetSpec("s")
	require.NoError(t, err)
	assert.Equal(t, "launch", spec.Command)

	cs, err := gc.ParseCommandSpec(spec.Command)
	require.NoError(t, err)
	require.Len(t, cs.Command, 2)
	assert.Equal(t, "/usr/bin/echo", cs.Command[0])
	assert.False(t, cs.WaitForExit)
	assert.Equal(t, 3, cs.DelayAfter)
}

func TestParseCommandSpec_EmptyArgvRejected(t *testing.T) {
	path := writeConfig(t, `
path = "/games/g"

[launch]
command = []
`)
	gc, err := Load(path)
	require.NoError(t, err)

	_, err = gc.ParseCommandSpec("launch")
	assert.Error(t, err, "expected error for empty command array")
}

func TestLoad_GlobalPreCommands(t *testing.T) {
	path := writeConfig(t, `
path = "/games/g"

[[pre_command]]
command = ["/usr/bin/true"]

[[pre_command]]
command = ["/usr/bin/false"]
wait_for_exit = false
`)
	gc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, gc.GlobalPreCommands, 2)
	assert.True(t, gc.GlobalPreCommands[0].WaitForExit, "first command should default WaitForExit=true")
	assert.False(t, gc.GlobalPreCommands[1].WaitForExit, "second command should have WaitForExit=false")
}
