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

// Package shell implements an interactive pairing session driven by line
// commands: adjusting the player and round counts regenerates the whole
// schedule, while toggling an exclusion re-pairs a single round.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pairer/pkg/pairing"
	"laptudirm.com/x/pairer/pkg/render"
	"laptudirm.com/x/pairer/pkg/settings"
)

// Controller is the scheduling side of a session. *pairing.Scheduler
// implements it.
type Controller interface {
	Generate(players, rounds int) (pairing.Schedule, error)
	ToggleExclusion(round int, player pairing.Player) error
	RebuildRound(round int) (pairing.Round, error)
	ClearExclusions()
	Schedule() pairing.Schedule

	render.ExclusionView
}

// Saver persists the player and round counts.
type Saver interface {
	Save(settings.Settings) error
}

// Session holds the state of one interactive session. Every field is
// read and written by the goroutine calling Run.
type Session struct {
	Controller Controller
	Settings   settings.Settings
	Limits     pairing.Limits

	// Store is optional.
	Store Saver

	// Delay coalesces rapid count changes into one regeneration. Changes
	// are applied immediately if it is not positive.
	Delay time.Duration

	// Spinner is shown while a regeneration is pending. Optional.
	Spinner *spinner.Spinner

	Out io.Writer

	pending bool
	fire    <-chan time.Time
}

var Help = heredoc.Doc(`
	Commands:
	  players N|+N|-N        set or adjust the number of players
	  rounds N|+N|-N         set or adjust the number of rounds
	  exclude ROUND PLAYER   toggle a player sitting out a round
	  clear                  remove every exclusion
	  show                   print the schedule
	  help                   print this message
	  quit                   leave the session
`)

var errQuit = errors.New("quit")

// Run generates the initial schedule and then executes commands read
// line by line from in, until in is exhausted, a quit command is read or
// the context is cancelled. A pending regeneration is applied before Run
// returns normally.
func (session *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := session.regenerate(); err != nil {
		return err
	}

	lines := make(chan string)
	var scanErr error

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr = scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			session.stopSpinner()
			return ctx.Err()

		case <-session.fire:
			if err := session.flush(); err != nil {
				return err
			}

		case line, ok := <-lines:
			if !ok {
				if err := session.flush(); err != nil {
					return err
				}

				return scanErr
			}

			err := session.Execute(line)
			switch {
			case errors.Is(err, errQuit):
				return session.flush()
			case err != nil:
				return err
			}
		}
	}
}

// Execute runs a single command line. Invalid input is reported to the
// session's output and does not change any state; only failures to
// render are returned.
func (session *Session) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	logrus.WithField("command", line).Trace("Executing shell command")

	switch command, args := strings.ToLower(fields[0]), fields[1:]; command {
	case "players", "p":
		return session.adjust(settings.KeyPlayers, args)

	case "rounds", "r":
		return session.adjust(settings.KeyRounds, args)

	case "exclude", "x":
		return session.exclude(args)

	case "clear":
		if err := session.flush(); err != nil {
			return err
		}

		session.Controller.ClearExclusions()
		return session.regenerate()

	case "show", "s":
		if err := session.flush(); err != nil {
			return err
		}

		return session.render()

	case "help", "h", "?":
		return session.println(Help)

	case "quit", "exit", "q":
		return errQuit

	default:
		return session.println(fmt.Sprintf("unknown command %q, try help", command))
	}
}

func (session *Session) adjust(key string, args []string) error {
	if len(args) != 1 {
		return session.println(fmt.Sprintf("usage: %s N|+N|-N", key))
	}

	current, _ := session.Settings.Get(key)
	value, err := parseValue(current, args[0])
	if err != nil {
		return session.println(err.Error())
	}

	if err := session.Settings.Set(key, value, session.Limits); err != nil {
		return session.println(err.Error())
	}

	if session.Store != nil {
		if err := session.Store.Save(session.Settings); err != nil {
			logrus.WithError(err).Warn("Unable to save settings")
		}
	}

	return session.request()
}

func (session *Session) exclude(args []string) error {
	if len(args) != 2 {
		return session.println("usage: exclude ROUND PLAYER")
	}

	// the schedule has to be current before a single round is touched
	if err := session.flush(); err != nil {
		return err
	}

	round, err := parseNumber(args[0])
	if err != nil {
		return session.println(err.Error())
	}

	player, err := parseNumber(args[1])
	if err != nil {
		return session.println(err.Error())
	}

	if rounds := len(session.Controller.Schedule()); round < 1 || round > rounds {
		return session.println(fmt.Sprintf("no round #%d, the schedule has %d rounds", round, rounds))
	}

	if err := session.Controller.ToggleExclusion(round-1, pairing.Player(player)); err != nil {
		return session.println(err.Error())
	}

	if _, err := session.Controller.RebuildRound(round - 1); err != nil {
		return session.println(err.Error())
	}

	return session.render()
}

// request asks for a regeneration, either now or once no further change
// has arrived for the session's delay.
func (session *Session) request() error {
	if session.Delay <= 0 {
		return session.regenerate()
	}

	if !session.pending && session.Spinner != nil {
		session.Spinner.Start()
	}

	session.pending = true
	session.fire = time.After(session.Delay)
	return nil
}

// flush applies a pending regeneration, if any.
func (session *Session) flush() error {
	if !session.pending {
		return nil
	}

	return session.regenerate()
}

func (session *Session) regenerate() error {
	session.stopSpinner()
	session.pending = false
	session.fire = nil

	_, err := session.Controller.Generate(session.Settings.Players, session.Settings.Rounds)
	if err != nil {
		return session.println(err.Error())
	}

	return session.render()
}

func (session *Session) stopSpinner() {
	if session.Spinner != nil && session.Spinner.Active() {
		session.Spinner.Stop()
	}
}

func (session *Session) render() error {
	return render.Table(session.Out, session.Controller.Schedule(), render.Options{
		Exclusions: session.Controller,
	})
}

func (session *Session) println(message string) error {
	_, err := fmt.Fprintln(session.Out, strings.TrimRight(message, "\n"))
	return err
}

// parseValue parses an absolute value, or a change of the current value
// when prefixed with a sign.
func parseValue(current int, arg string) (int, error) {
	delta := strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-")

	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", arg, pairing.ErrInvalidInput)
	}

	if delta {
		return current + value, nil
	}

	return value, nil
}

func parseNumber(arg string) (int, error) {
	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", arg, pairing.ErrInvalidInput)
	}

	return value, nil
}
