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

package matching

import (
	"time"

	"code.wattson.exchange/watt/libs/config/encoding"
	"code.wattson.exchange/watt/logging"
)

const namedLogger = "matching"

// Config represents the configuration of the matching engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	// EscrowAccount holds traders' funds and tokens while their orders rest.
	EscrowAccount string `long:"escrow-account"`
	// PromiseCooldown is how long a promise to pay must age before the
	// issuer may fulfil it.
	PromiseCooldown encoding.Duration `long:"promise-cooldown"`
	// LogOrderSubmitDebug enables full order dumps on submission.
	LogOrderSubmitDebug bool `long:"log-order-submit-debug"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration, given a pointer to a logger instance to be used for
// logging within the package.
func NewDefaultConfig() Config {
	return Config{
		Level:           encoding.LogLevel{Level: logging.InfoLevel},
		EscrowAccount:   "order-escrow",
		PromiseCooldown: encoding.Duration{Duration: 24 * time.Hour},
	}
}
