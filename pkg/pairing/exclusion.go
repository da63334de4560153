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
	"slices"
)

// ToggleExclusion flips whether the player sits out the given round. It
// only changes the exclusion set: call RebuildRound to re-pair the round.
func (scheduler *Scheduler) ToggleExclusion(index int, player Player) error {
	if index < 0 {
		return fmt.Errorf("toggle exclusion: invalid round #%d: %w", index+1, ErrInvalidInput)
	}

	if player < 1 || (scheduler.roster != nil && int(player) > len(scheduler.roster)) {
		return fmt.Errorf("toggle exclusion: invalid player %d: %w", player, ErrInvalidInput)
	}

	if scheduler.exclusions == nil {
		scheduler.exclusions = make(map[int]map[Player]struct{})
	}

	set, found := scheduler.exclusions[index]
	if !found {
		set = make(map[Player]struct{})
		scheduler.exclusions[index] = set
	}

	if _, excluded := set[player]; excluded {
		delete(set, player)
	} else {
		set[player] = struct{}{}
	}

	return nil
}

// Excluded reports whether the player sits out the given round.
func (scheduler *Scheduler) Excluded(index int, player Player) bool {
	_, excluded := scheduler.exclusions[index][player]
	return excluded
}

// Exclusions returns the players sitting out the given round, sorted.
func (scheduler *Scheduler) Exclusions(index int) []Player {
	set := scheduler.exclusions[index]
	players := make([]Player, 0, len(set))
	for player := range set {
		players = append(players, player)
	}

	slices.Sort(players)
	return players
}

// ClearExclusions drops every exclusion of every round.
func (scheduler *Scheduler) ClearExclusions() {
	scheduler.exclusions = make(map[int]map[Player]struct{})
}

// available filters the round's exclusions out of the roster, keeping the
// roster's order.
func (scheduler *Scheduler) available(index int, roster []Player) []Player {
	set := scheduler.exclusions[index]
	if len(set) == 0 {
		return slices.Clone(roster)
	}

	players := make([]Player, 0, len(roster))
	for _, player := range roster {
		if _, excluded := set[player]; !excluded {
			players = append(players, player)
		}
	}

	return players
}
