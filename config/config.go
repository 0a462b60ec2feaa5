// Copyright (C) 2023 Wattson Exchange Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"os"
	"path/filepath"
	"time"

	"code.wattson.exchange/watt/core/broker"
	"code.wattson.exchange/watt/core/fee"
	"code.wattson.exchange/watt/core/ledger"
	"code.wattson.exchange/watt/core/matching"
	"code.wattson.exchange/watt/core/metrics"
	"code.wattson.exchange/watt/core/oracle"
	"code.wattson.exchange/watt/core/registry"
	"code.wattson.exchange/watt/libs/config/encoding"
	"code.wattson.exchange/watt/logging"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const configFile = "config.toml"

// Config aggregates every engine's configuration into the node's single
// TOML file.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// UpkeepInterval is how often the node polls the engines for due
	// maintenance work. UpkeepParty must hold the backend role, with no
	// party configured the node never performs upkeep itself.
	UpkeepInterval encoding.Duration `long:"upkeep-interval"`
	UpkeepParty    string            `long:"upkeep-party"`

	Broker   broker.Config
	Fee      fee.Config
	Ledger   ledger.Config
	Matching matching.Config
	Metrics  metrics.Config
	Oracle   oracle.Config
	Registry registry.Config
}

// NewDefaultConfig returns the venue's out of the box configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		UpkeepInterval: encoding.Duration{Duration: 10 * time.Second},
		Broker:         broker.NewDefaultConfig(),
		Fee:            fee.NewDefaultConfig(),
		Ledger:         ledger.NewDefaultConfig(),
		Matching:       matching.NewDefaultConfig(),
		Metrics:        metrics.NewDefaultConfig(),
		Oracle:         oracle.NewDefaultConfig(),
		Registry:       registry.NewDefaultConfig(),
	}
}

// Read loads the node configuration from dir.
func Read(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read configuration")
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, errors.Wrap(err, "unable to parse configuration")
	}
	return &cfg, nil
}

// Write saves the configuration to dir, refusing to clobber an existing
// file unless forced.
func Write(dir string, cfg Config, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create configuration directory")
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("configuration already exists at %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to write configuration")
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
