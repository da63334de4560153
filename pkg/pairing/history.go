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

// History records, for every player, the partners they have already been
// paired with. Recording a pairing always updates both players, so the
// relation is symmetric.
type History map[Player]map[Player]struct{}

// NewHistory creates an empty partner set for each of the given players.
func NewHistory(players []Player) History {
	history := make(History, len(players))
	for _, player := range players {
		history[player] = make(map[Player]struct{})
	}

	return history
}

// Score returns 1 if a and b have already been paired, and 0 otherwise.
func (history History) Score(a, b Player) int {
	if _, seen := history[a][b]; seen {
		return 1
	}

	return 0
}

// Record adds a and b to each other's partner sets.
func (history History) Record(a, b Player) {
	history.partners(a)[b] = struct{}{}
	history.partners(b)[a] = struct{}{}
}

// Partners returns the number of distinct partners of the given player.
func (history History) Partners(player Player) int {
	return len(history[player])
}

// Clone returns a deep copy of the history.
func (history History) Clone() History {
	clone := make(History, len(history))
	for player, partners := range history {
		set := make(map[Player]struct{}, len(partners))
		for partner := range partners {
			set[partner] = struct{}{}
		}

		clone[player] = set
	}

	return clone
}

func (history History) partners(player Player) map[Player]struct{} {
	set, found := history[player]
	if !found {
		set = make(map[Player]struct{})
		history[player] = set
	}

	return set
}
