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
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"laptudirm.com/x/pairer/pkg/pairing"
	"laptudirm.com/x/pairer/pkg/render"
	"laptudirm.com/x/pairer/pkg/settings"
)

// pairer schedule
func Schedule() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print a schedule of pairings",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`schedule pairs up the players for every round, preferring
			partners that have not yet played together. With an odd number
			of players one of them gets a bye each round.

			The player and round counts default to the stored settings and
			can be overridden with --players and --rounds, which are saved
			as the new defaults when --save is given.

			A player can be taken out of a single round with
			--exclude ROUND:PLAYER. Only that round is paired again.`),
		Example: heredoc.Doc(`
			$ pairer schedule --players 6 --rounds 3
			$ pairer schedule -p 9 -r 4 --exclude 2:9 --exclude 3:1
			$ pairer schedule --shuffle --seed 7 --rotation right
		`),

		RunE: func(cmd *cobra.Command, args []string) error {
			store := settings.NewStore(settings.File)
			chosen, err := resolveCounts(cmd.Flags(), store.Load())
			if err != nil {
				return err
			}

			config, err := schedulerConfig(cmd.Flags())
			if err != nil {
				return err
			}

			entries, _ := cmd.Flags().GetStringSlice("exclude")
			exclusions := make([]exclusion, 0, len(entries))
			for _, entry := range entries {
				excluded, err := parseExclusion(entry, chosen)
				if err != nil {
					return err
				}

				exclusions = append(exclusions, excluded)
			}

			scheduler := pairing.NewScheduler(config)
			if _, err := scheduler.Generate(chosen.Players, chosen.Rounds); err != nil {
				return err
			}

			var view render.ExclusionView
			if len(exclusions) > 0 {
				if err := applyExclusions(scheduler, exclusions); err != nil {
					return err
				}

				view = scheduler
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				if err := store.Save(chosen); err != nil {
					return err
				}

				logrus.WithFields(logrus.Fields{
					"players": chosen.Players,
					"rounds":  chosen.Rounds,
				}).Debug("Saved settings")
			}

			return render.Table(cmd.OutOrStdout(), scheduler.Schedule(), render.Options{
				Exclusions: view,
			})
		},
	}

	flags := cmd.Flags()
	flags.IntP("players", "p", 0, "Number of players (default: stored setting)")
	flags.IntP("rounds", "r", 0, "Number of rounds (default: stored setting)")
	flags.StringSliceP("exclude", "x", nil, "Take PLAYER out of ROUND, given as ROUND:PLAYER")
	flags.Bool("save", false, "Store the player and round counts as the new defaults")
	addSchedulerFlags(flags)

	return cmd
}

func addSchedulerFlags(flags *pflag.FlagSet) {
	flags.Bool("shuffle", false, "Randomize the initial order of the players")
	flags.Int64("seed", 0, "Seed used by --shuffle, 0 seeds from the clock")
	flags.String("rotation", "left", "Direction the player order rotates between rounds: left or right")
}

func schedulerConfig(flags *pflag.FlagSet) (pairing.Config, error) {
	shuffle, _ := flags.GetBool("shuffle")
	seed, _ := flags.GetInt64("seed")
	name, _ := flags.GetString("rotation")

	rotation, err := pairing.NewRotation(name)
	if err != nil {
		return pairing.Config{}, err
	}

	return pairing.Config{
		Shuffle:  shuffle,
		Seed:     seed,
		Rotation: rotation,
	}, nil
}

// resolveCounts takes the player and round counts from the flags that were
// given and from the stored settings otherwise, and checks their bounds.
func resolveCounts(flags *pflag.FlagSet, stored settings.Settings) (settings.Settings, error) {
	chosen := stored

	if flags.Changed("players") {
		chosen.Players, _ = flags.GetInt("players")
	}

	if flags.Changed("rounds") {
		chosen.Rounds, _ = flags.GetInt("rounds")
	}

	if err := pairing.DefaultLimits.Validate(chosen.Players, chosen.Rounds); err != nil {
		return settings.Settings{}, err
	}

	return chosen, nil
}

type exclusion struct {
	round  int // index
	player pairing.Player
}

func parseExclusion(entry string, chosen settings.Settings) (exclusion, error) {
	roundStr, playerStr, found := strings.Cut(entry, ":")
	if !found {
		return exclusion{}, fmt.Errorf("exclusion %q: expected ROUND:PLAYER: %w", entry, pairing.ErrInvalidInput)
	}

	round, err := strconv.Atoi(strings.TrimSpace(roundStr))
	if err != nil || round < 1 || round > chosen.Rounds {
		return exclusion{}, fmt.Errorf("exclusion %q: round must be between 1 and %d: %w", entry, chosen.Rounds, pairing.ErrInvalidInput)
	}

	player, err := strconv.Atoi(strings.TrimSpace(playerStr))
	if err != nil || player < 1 || player > chosen.Players {
		return exclusion{}, fmt.Errorf("exclusion %q: player must be between 1 and %d: %w", entry, chosen.Players, pairing.ErrInvalidInput)
	}

	return exclusion{round: round - 1, player: pairing.Player(player)}, nil
}

// applyExclusions toggles every exclusion and then rebuilds each affected
// round once.
func applyExclusions(scheduler *pairing.Scheduler, exclusions []exclusion) error {
	affected := make(map[int]bool)
	for _, excluded := range exclusions {
		if err := scheduler.ToggleExclusion(excluded.round, excluded.player); err != nil {
			return err
		}

		affected[excluded.round] = true
	}

	for round := range affected {
		if _, err := scheduler.RebuildRound(round); err != nil {
			return err
		}
	}

	return nil
}
