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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pairer/internal/util"
	"laptudirm.com/x/pairer/pkg/pairing"
	"laptudirm.com/x/pairer/pkg/settings"
	"laptudirm.com/x/pairer/pkg/shell"
)

// pairer shell
func Shell() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Adjust a schedule interactively",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`shell prints a schedule for the stored player and round
			counts and then reads commands from standard input to change
			it. Changing a count regenerates every round once no further
			change has arrived for the --debounce interval, and stores the
			new count. Excluding a player from a round pairs only that
			round again.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := schedulerConfig(cmd.Flags())
			if err != nil {
				return err
			}

			delay, _ := cmd.Flags().GetDuration("debounce")
			store := settings.NewStore(settings.File)
			out := cmd.OutOrStdout()

			session := &shell.Session{
				Controller: pairing.NewScheduler(config),
				Settings:   store.Load(),
				Limits:     store.Limits,
				Store:      store,
				Delay:      delay,
				Out:        out,
			}

			if util.IsTerminal(out) {
				session.Spinner = util.NewSpinner(out, " rebuilding schedule")
				fmt.Fprintln(out, shell.Help)
			}

			err = session.Run(cmd.Context(), cmd.InOrStdin())
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	cmd.Flags().Duration("debounce", 300*time.Millisecond, "Quiet time before a changed count regenerates the schedule")
	addSchedulerFlags(cmd.Flags())

	return cmd
}
