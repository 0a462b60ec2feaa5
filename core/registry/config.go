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

package registry

import (
	"time"

	"code.wattson.exchange/watt/libs/config/encoding"
	"code.wattson.exchange/watt/logging"
)

const namedLogger = "registry"

// Config represents the configuration of the commitment registry.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// ExpiryWindow is how far ahead of validTo a commitment becomes
	// eligible for the expiration upkeep.
	ExpiryWindow encoding.Duration `long:"expiry-window"`

	// InsurancePool is the account receiving mint collateral.
	InsurancePool string `long:"insurance-pool"`

	// FirstTimeCollateralRateBips applies to issuers without an explicit
	// per-issuer rate.
	FirstTimeCollateralRateBips uint64 `long:"first-time-collateral-rate-bips"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:                       encoding.LogLevel{Level: logging.InfoLevel},
		ExpiryWindow:                encoding.Duration{Duration: 24 * time.Hour},
		InsurancePool:               "insurance-pool",
		FirstTimeCollateralRateBips: 100,
	}
}
