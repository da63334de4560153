// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/pairer/pkg/common"
	"laptudirm.com/x/pairer/pkg/pairing"
	"laptudirm.com/x/pairer/pkg/settings"
)

func init() {
	color.NoColor = true
}

// run executes pairer with the given arguments against a temporary state
// directory and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := Root()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()
	return out.String(), err
}

func useTempState(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	directory, file := common.Directory, settings.File
	common.Directory = filepath.Join(dir, "pairer")
	settings.File = filepath.Join(common.Directory, "settings.yaml")

	t.Cleanup(func() {
		common.Directory, settings.File = directory, file
	})
}

func TestScheduleCommand(t *testing.T) {
	useTempState(t)

	out, err := run(t, "", "schedule", "--players", "4", "--rounds", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "║ 1.   1-2, 3-4 ║")
	assert.Contains(t, out, "║ 2.   1-3, 4-2 ║")
	assert.NotContains(t, out, "Excluded")
}

func TestScheduleCommandDefaultsToSettings(t *testing.T) {
	useTempState(t)

	out, err := run(t, "", "schedule")
	require.NoError(t, err)

	assert.Contains(t, out, "║ 1.   1-2, 3-4, 5-6, 7-8, 9-10 ║")
	assert.Contains(t, out, "║ 3.")
	assert.NotContains(t, out, "║ 4.")
}

func TestScheduleCommandRejectsInvalidCounts(t *testing.T) {
	useTempState(t)

	for _, args := range [][]string{
		{"schedule", "--players", "21"},
		{"schedule", "--players", "1"},
		{"schedule", "--rounds", "11"},
		{"schedule", "--rounds", "0"},
		{"schedule", "--rotation", "sideways"},
		{"schedule", "-p", "4", "-r", "2", "--exclude", "3:1"},
		{"schedule", "-p", "4", "-r", "2", "--exclude", "1:5"},
		{"schedule", "-p", "4", "-r", "2", "--exclude", "1-2"},
	} {
		out, err := run(t, "", args...)
		assert.ErrorIs(t, err, pairing.ErrInvalidInput, strings.Join(args, " "))
		assert.Empty(t, out, strings.Join(args, " "))
	}
}

func TestScheduleCommandExclude(t *testing.T) {
	useTempState(t)

	out, err := run(t, "", "schedule", "-p", "6", "-r", "3", "-x", "2:6")
	require.NoError(t, err)

	assert.Contains(t, out, "Excluded")
	assert.Contains(t, out, "║ 2.   1-3, 4-5, 2 (bye)   6")
	assert.Contains(t, out, "║ 1.   1-2, 3-4, 5-6       -        ║")
}

func TestScheduleCommandSave(t *testing.T) {
	useTempState(t)

	_, err := run(t, "", "schedule", "-p", "8", "-r", "2")
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), settings.NewStore(settings.File).Load())

	_, err = run(t, "", "schedule", "-p", "8", "-r", "2", "--save")
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{Players: 8, Rounds: 2}, settings.NewStore(settings.File).Load())
}

func TestScheduleCommandEnvironment(t *testing.T) {
	useTempState(t)
	t.Setenv("PAIRER_PLAYERS", "4")
	t.Setenv("PAIRER_ROTATION", "right")

	out, err := run(t, "", "schedule", "-r", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "║ 2.   1-4, 2-3 ║")
}

func TestSettingsCommand(t *testing.T) {
	useTempState(t)

	out, err := run(t, "", "settings")
	require.NoError(t, err)
	assert.Equal(t, "players: 10\nrounds: 3\n", out)

	_, err = run(t, "", "settings", "players", "12")
	require.NoError(t, err)

	out, err = run(t, "", "settings", "players")
	require.NoError(t, err)
	assert.Equal(t, "12\n", out)

	_, err = run(t, "", "settings", "rounds", "11")
	assert.ErrorIs(t, err, pairing.ErrInvalidInput)

	_, err = run(t, "", "settings", "rounds", "three")
	assert.ErrorIs(t, err, pairing.ErrInvalidInput)

	_, err = run(t, "", "settings", "theme")
	assert.ErrorIs(t, err, pairing.ErrInvalidInput)

	out, err = run(t, "", "settings")
	require.NoError(t, err)
	assert.Equal(t, "players: 12\nrounds: 3\n", out)
}

func TestShellCommand(t *testing.T) {
	useTempState(t)

	out, err := run(t, "players 4\nrounds 2\nexclude 2 4\nquit\n", "shell", "--debounce", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "║ 2.   1-3, 2 (bye)   4        ║")
	assert.Equal(t, settings.Settings{Players: 4, Rounds: 2}, settings.NewStore(settings.File).Load())
}

func TestCompletionCommand(t *testing.T) {
	useTempState(t)

	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "pairer")

	_, err = run(t, "", "completion", "tcsh")
	assert.Error(t, err)
}
