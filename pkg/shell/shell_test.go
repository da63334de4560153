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

package shell

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/pairer/pkg/pairing"
	"laptudirm.com/x/pairer/pkg/settings"
)

func init() {
	color.NoColor = true
}

// countingScheduler counts full regenerations.
type countingScheduler struct {
	*pairing.Scheduler
	generated atomic.Int32
}

func (c *countingScheduler) Generate(players, rounds int) (pairing.Schedule, error) {
	c.generated.Add(1)
	return c.Scheduler.Generate(players, rounds)
}

type memoryStore struct {
	saved []settings.Settings
}

func (m *memoryStore) Save(s settings.Settings) error {
	m.saved = append(m.saved, s)
	return nil
}

func newSession(delay time.Duration) (*Session, *countingScheduler, *memoryStore, *strings.Builder) {
	scheduler := &countingScheduler{Scheduler: pairing.NewScheduler(pairing.Config{})}
	store := &memoryStore{}
	out := &strings.Builder{}

	return &Session{
		Controller: scheduler,
		Settings:   settings.Settings{Players: 10, Rounds: 3},
		Limits:     pairing.DefaultLimits,
		Store:      store,
		Delay:      delay,
		Out:        out,
	}, scheduler, store, out
}

func TestSessionAdjustsCounts(t *testing.T) {
	session, scheduler, store, _ := newSession(0)

	input := "players 4\nrounds 2\nplayers +1\nrounds -1\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, settings.Settings{Players: 5, Rounds: 1}, session.Settings)
	assert.Equal(t, []settings.Settings{
		{Players: 4, Rounds: 3},
		{Players: 4, Rounds: 2},
		{Players: 5, Rounds: 2},
		{Players: 5, Rounds: 1},
	}, store.saved)

	assert.EqualValues(t, 5, scheduler.generated.Load())

	schedule := scheduler.Schedule()
	require.Len(t, schedule, 1)
	assert.Equal(t, []pairing.Pair{{1, 2}, {3, 4}}, schedule[0].Pairs)
	assert.Equal(t, pairing.Player(5), schedule[0].Bye)
}

func TestSessionRejectsInvalidCounts(t *testing.T) {
	session, scheduler, store, out := newSession(0)

	input := "players 21\nrounds 0\nplayers +15\nplayers many\nrounds\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, settings.Settings{Players: 10, Rounds: 3}, session.Settings)
	assert.Empty(t, store.saved)
	assert.EqualValues(t, 1, scheduler.generated.Load())

	output := out.String()
	assert.Contains(t, output, "allowed number of players: 2 - 20, got 21")
	assert.Contains(t, output, "allowed number of rounds: 1 - 10, got 0")
	assert.Contains(t, output, "allowed number of players: 2 - 20, got 25")
	assert.Contains(t, output, `"many" is not a number`)
	assert.Contains(t, output, "usage: rounds N|+N|-N")
}

func TestSessionExcludeRebuildsOneRound(t *testing.T) {
	session, scheduler, _, out := newSession(0)
	session.Settings = settings.Settings{Players: 6, Rounds: 3}

	input := "exclude 2 6\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.EqualValues(t, 1, scheduler.generated.Load())
	assert.Equal(t, []pairing.Player{6}, scheduler.Exclusions(1))

	schedule := scheduler.Schedule()
	assert.NotContains(t, schedule[1].Players(), pairing.Player(6))
	assert.Contains(t, schedule[0].Players(), pairing.Player(6))
	assert.Contains(t, schedule[2].Players(), pairing.Player(6))

	assert.Contains(t, out.String(), "1-3, 4-5, 2 (bye)")
}

func TestSessionExcludeTwiceRestoresRound(t *testing.T) {
	session, scheduler, _, _ := newSession(0)
	session.Settings = settings.Settings{Players: 6, Rounds: 3}

	reference, err := pairing.NewScheduler(pairing.Config{}).Generate(6, 3)
	require.NoError(t, err)

	input := "exclude 2 6\nexclude 2 6\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, reference, scheduler.Schedule())
	assert.Empty(t, scheduler.Exclusions(1))
}

func TestSessionExcludeInvalid(t *testing.T) {
	session, scheduler, _, out := newSession(0)

	input := "exclude 4 1\nexclude 1 11\nexclude one 1\nexclude 1\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.Empty(t, scheduler.Exclusions(0))

	output := out.String()
	assert.Contains(t, output, "no round #4, the schedule has 3 rounds")
	assert.Contains(t, output, "invalid player 11")
	assert.Contains(t, output, `"one" is not a number`)
	assert.Contains(t, output, "usage: exclude ROUND PLAYER")
}

func TestSessionExclusionsSurviveRegeneration(t *testing.T) {
	session, scheduler, _, _ := newSession(0)
	session.Settings = settings.Settings{Players: 6, Rounds: 3}

	input := "exclude 1 3\nrounds 4\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	schedule := scheduler.Schedule()
	require.Len(t, schedule, 4)
	assert.NotContains(t, schedule[0].Players(), pairing.Player(3))
}

func TestSessionClear(t *testing.T) {
	session, scheduler, _, _ := newSession(0)

	input := "exclude 1 3\nclear\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.Empty(t, scheduler.Exclusions(0))
	assert.Contains(t, scheduler.Schedule()[0].Players(), pairing.Player(3))
}

func TestSessionCoalescesChanges(t *testing.T) {
	session, scheduler, store, _ := newSession(time.Hour)

	input := "players +1\nplayers +1\nrounds +1\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	// the initial schedule, and one for the three changes once input ends
	assert.EqualValues(t, 2, scheduler.generated.Load())
	assert.Len(t, store.saved, 3)
	assert.Len(t, scheduler.Schedule(), 4)
	assert.Len(t, scheduler.Schedule()[0].Players(), 12)
}

func TestSessionFlushesBeforeExclude(t *testing.T) {
	session, scheduler, _, _ := newSession(time.Hour)

	input := "rounds 5\nexclude 5 1\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.EqualValues(t, 2, scheduler.generated.Load())
	assert.Equal(t, []pairing.Player{1}, scheduler.Exclusions(4))
}

func TestSessionDebounceFires(t *testing.T) {
	session, scheduler, _, _ := newSession(10 * time.Millisecond)

	reader, writer := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- session.Run(context.Background(), reader)
	}()

	_, err := io.WriteString(writer, "players 4\n")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return scheduler.generated.Load() == 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, writer.Close())
	require.NoError(t, <-done)
	assert.EqualValues(t, 2, scheduler.generated.Load())
}

func TestSessionQuit(t *testing.T) {
	session, scheduler, _, _ := newSession(time.Hour)

	input := "players 4\nquit\nplayers 8\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, 4, session.Settings.Players)
	assert.EqualValues(t, 2, scheduler.generated.Load())
}

func TestSessionCancelled(t *testing.T) {
	session, _, _, _ := newSession(0)

	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, session.Run(ctx, reader), context.Canceled)
}

func TestSessionHelpAndUnknown(t *testing.T) {
	session, _, _, out := newSession(0)

	input := "help\ndance\n\n"
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	output := out.String()
	assert.Contains(t, output, "exclude ROUND PLAYER")
	assert.Contains(t, output, `unknown command "dance", try help`)
}
