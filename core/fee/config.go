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

package fee

import (
	"code.wattson.exchange/watt/libs/config/encoding"
	"code.wattson.exchange/watt/logging"
)

const namedLogger = "fee"

// Config represents the configuration of the fee engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// BuyFeeBips and SellFeeBips are the starting basis-point rates per
	// side, adjustable at runtime by an administrator.
	BuyFeeBips  uint64 `long:"buy-fee-bips"`
	SellFeeBips uint64 `long:"sell-fee-bips"`

	// Treasury receives the fee cut of every trade.
	Treasury string `long:"treasury"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:       encoding.LogLevel{Level: logging.InfoLevel},
		BuyFeeBips:  30,
		SellFeeBips: 30,
		Treasury:    "treasury",
	}
}
