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

package ledger

import (
	"code.wattson.exchange/watt/libs/config/encoding"
	"code.wattson.exchange/watt/logging"
)

const namedLogger = "ledger"

// Config represents the configuration of the in-process ledgers and the
// role store.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// Parties granted each role at start-up.
	Issuers  []string `long:"issuer"`
	Backends []string `long:"backend"`
	Admins   []string `long:"admin"`
	Feeders  []string `long:"feeder"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration, given a pointer to a logger instance to be used for
// logging within the package.
func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
	}
}
