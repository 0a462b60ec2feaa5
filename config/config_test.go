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

package config_test

import (
	"testing"
	"time"

	"code.wattson.exchange/watt/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := config.NewDefaultConfig()
	cfg.UpkeepParty = "keeper"
	cfg.Ledger.Issuers = []string{"wind-co", "solar-co"}
	cfg.Matching.PromiseCooldown.Duration = 48 * time.Hour
	require.NoError(t, config.Write(dir, cfg, false))

	got, err := config.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "keeper", got.UpkeepParty)
	assert.Equal(t, []string{"wind-co", "solar-co"}, got.Ledger.Issuers)
	assert.Equal(t, 48*time.Hour, got.Matching.PromiseCooldown.Get())
	assert.Equal(t, 10*time.Second, got.UpkeepInterval.Get())
}

func TestConfigWriteNoClobber(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewDefaultConfig()

	require.NoError(t, config.Write(dir, cfg, false))
	assert.Error(t, config.Write(dir, cfg, false))
	assert.NoError(t, config.Write(dir, cfg, true))
}

func TestConfigReadMissing(t *testing.T) {
	_, err := config.Read(t.TempDir())
	assert.Error(t, err)
}
