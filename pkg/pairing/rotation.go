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

import "fmt"

// Rotation is the direction in which the roster's tail is shifted
// between rounds. The first player always stays in place, as in the
// circle method.
type Rotation int

const (
	// RotateLeft moves the second player to the end of the roster.
	RotateLeft Rotation = iota

	// RotateRight moves the last player to the second position.
	RotateRight
)

// NewRotation parses a rotation name. The empty name selects RotateLeft.
func NewRotation(name string) (Rotation, error) {
	switch name {
	case "left", "":
		return RotateLeft, nil
	case "right":
		return RotateRight, nil
	default:
		return 0, fmt.Errorf("new rotation: invalid direction %q: %w", name, ErrInvalidInput)
	}
}

func (rotation Rotation) String() string {
	switch rotation {
	case RotateLeft:
		return "left"
	case RotateRight:
		return "right"
	default:
		return "unknown"
	}
}

// Rotate shifts the roster's tail by one position in place. Rosters of
// two or fewer players are left unchanged.
func (rotation Rotation) Rotate(roster []Player) {
	if len(roster) <= 2 {
		return
	}

	tail := roster[1:]
	last := len(tail) - 1

	switch rotation {
	case RotateRight:
		moved := tail[last]
		copy(tail[1:], tail[:last])
		tail[0] = moved
	default:
		moved := tail[0]
		copy(tail, tail[1:])
		tail[last] = moved
	}
}
