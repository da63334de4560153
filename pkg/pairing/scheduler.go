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

package pairing

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// Config changes how a Scheduler lays out its roster.
type Config struct {
	// Shuffle randomizes the initial roster order. When false the roster
	// is 1..P and schedules are reproducible.
	Shuffle bool

	// Seed seeds the shuffle. Zero seeds it from the current time.
	Seed int64

	// Rotation is the direction the roster is rotated between rounds.
	Rotation Rotation
}

// Scheduler owns the state of one schedule: the roster, the pairing
// history, the generated rounds and the per-round exclusions. A
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	Config Config

	roster  []Player
	history History

	schedule Schedule

	// bases[i] is what round i was built from, for rebuilds.
	bases []base

	exclusions map[int]map[Player]struct{}
}

type base struct {
	roster  []Player
	history History
}

// NewScheduler returns a Scheduler with no schedule and no exclusions.
// The zero Scheduler is also ready to use.
func NewScheduler(config Config) *Scheduler {
	return &Scheduler{
		Config:     config,
		exclusions: make(map[int]map[Player]struct{}),
	}
}

// Generate builds a fresh schedule of the given number of rounds. The
// roster and history are reset, while exclusions are kept and applied.
// On invalid input the previous schedule is left untouched.
func (scheduler *Scheduler) Generate(players, rounds int) (Schedule, error) {
	if players < 2 {
		return nil, fmt.Errorf("generate schedule: need at least 2 players, got %d: %w", players, ErrInvalidInput)
	}

	if rounds < 1 {
		return nil, fmt.Errorf("generate schedule: need at least 1 round, got %d: %w", rounds, ErrInvalidInput)
	}

	scheduler.roster = scheduler.newRoster(players)
	scheduler.history = NewHistory(scheduler.roster)
	scheduler.schedule = make(Schedule, 0, rounds)
	scheduler.bases = make([]base, 0, rounds)

	logrus.WithFields(logrus.Fields{
		"players":  players,
		"rounds":   rounds,
		"roster":   scheduler.roster,
		"rotation": scheduler.Config.Rotation,
	}).Debug("Generating schedule")

	for index := 0; index < rounds; index++ {
		snapshot := base{
			roster:  slices.Clone(scheduler.roster),
			history: scheduler.history.Clone(),
		}

		round := BuildRound(scheduler.available(index, scheduler.roster), scheduler.history)
		logrus.WithField("round", index+1).Tracef("Built round: %v", round.Labels())

		scheduler.schedule = append(scheduler.schedule, round)
		scheduler.bases = append(scheduler.bases, snapshot)

		scheduler.Config.Rotation.Rotate(scheduler.roster)
	}

	return scheduler.Schedule(), nil
}

// RebuildRound re-pairs a single round after its exclusions changed. The
// round is built against a private copy of the history as it stood before
// the round was first generated, so neither the live history nor any
// other round is affected.
func (scheduler *Scheduler) RebuildRound(index int) (Round, error) {
	if index < 0 || index >= len(scheduler.schedule) {
		return Round{}, fmt.Errorf("rebuild round: no round #%d in schedule: %w", index+1, ErrInvalidInput)
	}

	snapshot := scheduler.bases[index]
	round := BuildRound(scheduler.available(index, snapshot.roster), snapshot.history.Clone())
	scheduler.schedule[index] = round

	logrus.WithFields(logrus.Fields{
		"round":    index + 1,
		"excluded": scheduler.Exclusions(index),
	}).Tracef("Rebuilt round: %v", round.Labels())

	return round, nil
}

// Schedule returns a copy of the current schedule.
func (scheduler *Scheduler) Schedule() Schedule {
	schedule := make(Schedule, len(scheduler.schedule))
	for i, round := range scheduler.schedule {
		schedule[i] = Round{
			Pairs: slices.Clone(round.Pairs),
			Bye:   round.Bye,
		}
	}

	return schedule
}

// Roster returns a copy of the roster in its current rotation.
func (scheduler *Scheduler) Roster() []Player {
	return slices.Clone(scheduler.roster)
}

// History returns a copy of the pairing history of the last generation.
func (scheduler *Scheduler) History() History {
	return scheduler.history.Clone()
}

// Players returns the number of players in the current roster.
func (scheduler *Scheduler) Players() int {
	return len(scheduler.roster)
}

func (scheduler *Scheduler) newRoster(players int) []Player {
	roster := make([]Player, players)
	for i := range roster {
		roster[i] = Player(i + 1)
	}

	if scheduler.Config.Shuffle {
		seed := scheduler.Config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		random := rand.New(rand.NewSource(seed))
		random.Shuffle(len(roster), func(i, j int) {
			roster[i], roster[j] = roster[j], roster[i]
		})
	}

	return roster
}
