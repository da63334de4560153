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

// Package render draws a pairing.Schedule as a table for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"laptudirm.com/x/pairer/pkg/pairing"
)

// ExclusionView exposes the players sitting out each round.
type ExclusionView interface {
	Exclusions(round int) []pairing.Player
}

type Options struct {
	// Exclusions adds an "Excluded" column when not nil.
	Exclusions ExclusionView
}

var (
	headerColor  = color.New(color.Bold)
	byeColor     = color.New(color.FgYellow)
	excludeColor = color.New(color.FgRed)
)

type cell struct {
	plain   string
	colored string
}

func plainCell(text string) cell {
	return cell{plain: text, colored: text}
}

func (c cell) pad(width int) string {
	return c.colored + strings.Repeat(" ", width-len(c.plain))
}

// Table writes the schedule to w, one round per row.
func Table(w io.Writer, schedule pairing.Schedule, options Options) error {
	header := []cell{
		{plain: "#", colored: headerColor.Sprint("#")},
		{plain: "Pairs", colored: headerColor.Sprint("Pairs")},
	}

	if options.Exclusions != nil {
		header = append(header, cell{plain: "Excluded", colored: headerColor.Sprint("Excluded")})
	}

	rows := [][]cell{header}
	for index, round := range schedule {
		row := []cell{plainCell(fmt.Sprintf("%d.", index+1)), pairsCell(round)}
		if options.Exclusions != nil {
			row = append(row, excludedCell(options.Exclusions.Exclusions(index)))
		}

		rows = append(rows, row)
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], len(c.plain))
		}
	}

	inner := 2
	for i, width := range widths {
		inner += width
		if i > 0 {
			inner += 3
		}
	}

	var sb strings.Builder
	rule := strings.Repeat("═", inner)

	sb.WriteString("╔" + rule + "╗\n")
	for i, row := range rows {
		sb.WriteString("║ ")
		for j, c := range row {
			if j > 0 {
				sb.WriteString("   ")
			}
			sb.WriteString(c.pad(widths[j]))
		}
		sb.WriteString(" ║\n")

		if i == 0 {
			sb.WriteString("╠" + rule + "╣\n")
		}
	}
	sb.WriteString("╚" + rule + "╝\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func pairsCell(round pairing.Round) cell {
	labels := make([]string, 0, len(round.Pairs)+1)
	for _, pair := range round.Pairs {
		labels = append(labels, pair.String())
	}

	if len(labels) == 0 && !round.HasBye() {
		return plainCell("-")
	}

	plain := strings.Join(round.Labels(), ", ")
	if !round.HasBye() {
		return plainCell(plain)
	}

	colored := byeColor.Sprint(round.ByeLabel())
	if len(labels) > 0 {
		colored = strings.Join(labels, ", ") + ", " + colored
	}

	return cell{plain: plain, colored: colored}
}

func excludedCell(players []pairing.Player) cell {
	if len(players) == 0 {
		return plainCell("-")
	}

	names := make([]string, len(players))
	for i, player := range players {
		names[i] = player.String()
	}

	plain := strings.Join(names, ", ")
	return cell{plain: plain, colored: excludeColor.Sprint(plain)}
}
