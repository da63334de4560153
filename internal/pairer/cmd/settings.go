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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pairer/pkg/pairing"
	"laptudirm.com/x/pairer/pkg/settings"
)

// pairer settings
func Settings() *cobra.Command {
	return &cobra.Command{
		Use:       "settings [ players | rounds ] [value]",
		Short:     "Show or change the stored player and round counts",
		Args:      cobra.RangeArgs(0, 2),
		ValidArgs: settings.Keys,
		Long: heredoc.Doc(`settings shows the player and round counts used when
			no --players or --rounds flag is given. Given a key it shows
			only that value, and given a key and a value it stores the
			new value if it is within bounds.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			store := settings.NewStore(settings.File)
			current := store.Load()
			out := cmd.OutOrStdout()

			switch len(args) {
			case 0:
				for _, key := range settings.Keys {
					value, _ := current.Get(key)
					fmt.Fprintf(out, "%s: %d\n", key, value)
				}

			case 1:
				value, err := current.Get(args[0])
				if err != nil {
					return err
				}

				fmt.Fprintln(out, value)

			case 2:
				value, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("settings: %q is not a number: %w", args[1], pairing.ErrInvalidInput)
				}

				if err := current.Set(args[0], value, store.Limits); err != nil {
					return err
				}

				return store.Save(current)
			}

			return nil
		},
	}
}
