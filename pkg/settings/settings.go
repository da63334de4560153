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

// Package settings persists the player and round counts between sessions.
// Nothing else about a schedule is stored.
package settings

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/pairer/pkg/common"
	"laptudirm.com/x/pairer/pkg/pairing"
)

//go:embed settings.yaml
var BaseSettingsFile []byte

// File is the path of the settings file used by the command line.
var File = filepath.Join(common.Directory, "settings.yaml")

const (
	KeyPlayers = "players"
	KeyRounds  = "rounds"
)

// Keys lists the persisted keys in display order.
var Keys = []string{KeyPlayers, KeyRounds}

type Settings struct {
	Players int `yaml:"players"`
	Rounds  int `yaml:"rounds"`
}

// Default returns the settings of the embedded base file.
func Default() Settings {
	var settings Settings
	if err := yaml.Unmarshal(BaseSettingsFile, &settings); err != nil {
		panic(err)
	}

	return settings
}

// Get returns the value stored under the given key.
func (settings Settings) Get(key string) (int, error) {
	switch key {
	case KeyPlayers:
		return settings.Players, nil
	case KeyRounds:
		return settings.Rounds, nil
	default:
		return 0, fmt.Errorf("settings: unknown key %q: %w", key, pairing.ErrInvalidInput)
	}
}

// Set checks the value against the limits and stores it under the key.
// The settings are left unchanged on error.
func (settings *Settings) Set(key string, value int, limits pairing.Limits) error {
	switch key {
	case KeyPlayers:
		if err := limits.ValidatePlayers(value); err != nil {
			return err
		}
		settings.Players = value
	case KeyRounds:
		if err := limits.ValidateRounds(value); err != nil {
			return err
		}
		settings.Rounds = value
	default:
		return fmt.Errorf("settings: unknown key %q: %w", key, pairing.ErrInvalidInput)
	}

	return nil
}

// Store reads and writes Settings from a YAML file.
type Store struct {
	Path   string
	Limits pairing.Limits
}

// NewStore returns a Store for the given path using the default limits.
func NewStore(path string) *Store {
	return &Store{Path: path, Limits: pairing.DefaultLimits}
}

// Load reads the stored settings, creating the file with the defaults
// if it is missing. Values that cannot be read or are out of bounds are
// replaced by their defaults.
func (store *Store) Load() Settings {
	defaults := Default()

	common.TryMkdir(filepath.Dir(store.Path))
	common.TryCreate(store.Path, BaseSettingsFile)

	file, err := os.ReadFile(store.Path)
	if err != nil {
		logrus.WithError(err).Warn("Unable to read settings, using defaults")
		return defaults
	}

	var stored Settings
	if err := yaml.Unmarshal(file, &stored); err != nil {
		logrus.WithError(err).Warn("Malformed settings file, using defaults")
		return defaults
	}

	settings := defaults
	if err := settings.Set(KeyPlayers, stored.Players, store.Limits); err != nil {
		logrus.WithError(err).Warn("Ignoring stored player count")
	}

	if err := settings.Set(KeyRounds, stored.Rounds, store.Limits); err != nil {
		logrus.WithError(err).Warn("Ignoring stored round count")
	}

	logrus.WithFields(logrus.Fields{
		"path":    store.Path,
		"players": settings.Players,
		"rounds":  settings.Rounds,
	}).Debug("Loaded settings")

	return settings
}

// Save writes the settings to the store's file after checking them
// against the store's limits.
func (store *Store) Save(settings Settings) error {
	if err := store.Limits.Validate(settings.Players, settings.Rounds); err != nil {
		return err
	}

	file, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	common.TryMkdir(filepath.Dir(store.Path))
	return os.WriteFile(store.Path, file, common.FilePermissions)
}
