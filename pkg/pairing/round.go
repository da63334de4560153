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

import "slices"

// SelectPair scans every candidate pair (i, j) of the pool, i before j,
// and returns the one with the lowest history score. Ties go to the pair
// encountered first. The pool must hold at least two players.
func SelectPair(pool []Player, history History) Pair {
	var best Pair
	lowest := -1

	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			score := history.Score(pool[i], pool[j])
			if lowest == -1 || score < lowest {
				best = Pair{pool[i], pool[j]}
				lowest = score
			}
		}
	}

	return best
}

// BuildRound exhausts the available players into pairs, recording each
// committed pair in the history before selecting the next one. A single
// player left over gets the bye. The available slice is not modified.
func BuildRound(available []Player, history History) Round {
	var round Round
	pool := slices.Clone(available)

	for len(pool) >= 2 {
		pair := SelectPair(pool, history)
		round.Pairs = append(round.Pairs, pair)
		history.Record(pair[0], pair[1])

		// players are unique within a round, so remove by value
		pool = remove(pool, pair[0])
		pool = remove(pool, pair[1])
	}

	if len(pool) == 1 {
		round.Bye = pool[0]
	}

	return round
}

func remove(pool []Player, player Player) []Player {
	if i := slices.Index(pool, player); i >= 0 {
		return slices.Delete(pool, i, i+1)
	}

	return pool
}
