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

// Package pairing assigns players into pairs over a sequence of rounds,
// steering away from repeated partners and giving a bye to the odd
// player out.
package pairing

import (
	"fmt"
	"strconv"
)

// Player identifies a participant. Valid players are numbered from 1.
type Player int

// NoPlayer is the zero Player, used to mark the absence of a bye.
const NoPlayer Player = 0

func (player Player) String() string {
	return strconv.Itoa(int(player))
}

// Pair is an unordered pairing of two distinct players. The order of the
// two elements is the order in which they were selected.
type Pair [2]Player

func (pair Pair) String() string {
	return fmt.Sprintf("%d-%d", pair[0], pair[1])
}

// Has reports whether the given player is part of the pair.
func (pair Pair) Has(player Player) bool {
	return pair[0] == player || pair[1] == player
}

// Round is one complete assignment of the round's available players.
type Round struct {
	Pairs []Pair

	// Bye is the player left without a partner, or NoPlayer.
	Bye Player
}

// HasBye reports whether some player rests this round.
func (round Round) HasBye() bool {
	return round.Bye != NoPlayer
}

// ByeLabel is the display label of the round's bye.
func (round Round) ByeLabel() string {
	if !round.HasBye() {
		return ""
	}

	return fmt.Sprintf("%d (bye)", round.Bye)
}

// Labels returns the display labels of the round: every pair in order,
// followed by the bye if there is one.
func (round Round) Labels() []string {
	labels := make([]string, 0, len(round.Pairs)+1)
	for _, pair := range round.Pairs {
		labels = append(labels, pair.String())
	}

	if round.HasBye() {
		labels = append(labels, round.ByeLabel())
	}

	return labels
}

// Players returns every player assigned in the round, pairs first.
func (round Round) Players() []Player {
	players := make([]Player, 0, 2*len(round.Pairs)+1)
	for _, pair := range round.Pairs {
		players = append(players, pair[0], pair[1])
	}

	if round.HasBye() {
		players = append(players, round.Bye)
	}

	return players
}

// Schedule is the ordered list of rounds produced by a Scheduler.
type Schedule []Round
