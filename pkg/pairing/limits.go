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
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error caused by an out of range or
// malformed player count, round count, round index or player.
var ErrInvalidInput = errors.New("invalid input")

// Limits are the bounds accepted for the player and round counts.
type Limits struct {
	MinPlayers, MaxPlayers int
	MinRounds, MaxRounds   int
}

// DefaultLimits are the bounds of the user facing controls.
var DefaultLimits = Limits{
	MinPlayers: 2,
	MaxPlayers: 20,
	MinRounds:  1,
	MaxRounds:  10,
}

// ValidatePlayers checks that the player count is within the limits.
func (limits Limits) ValidatePlayers(players int) error {
	if players < limits.MinPlayers || players > limits.MaxPlayers {
		return fmt.Errorf(
			"allowed number of players: %d - %d, got %d: %w",
			limits.MinPlayers, limits.MaxPlayers, players, ErrInvalidInput,
		)
	}

	return nil
}

// ValidateRounds checks that the round count is within the limits.
func (limits Limits) ValidateRounds(rounds int) error {
	if rounds < limits.MinRounds || rounds > limits.MaxRounds {
		return fmt.Errorf(
			"allowed number of rounds: %d - %d, got %d: %w",
			limits.MinRounds, limits.MaxRounds, rounds, ErrInvalidInput,
		)
	}

	return nil
}

// Validate checks both counts, reporting the player count first.
func (limits Limits) Validate(players, rounds int) error {
	if err := limits.ValidatePlayers(players); err != nil {
		return err
	}

	return limits.ValidateRounds(rounds)
}
