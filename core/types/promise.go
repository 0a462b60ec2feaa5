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

package types

import (
	"time"

	"code.wattson.exchange/watt/libs/num"
)

// PromiseToPay is a deferred payment obligation created when a sell order
// finds no matching liquidity. The unmatched units move to the
// commitment's issuer, who owes the holder Amount in stable value. It is
// discharged by the issuer, once, after a cooldown.
type PromiseToPay struct {
	ID           uint64
	Holder       string
	CommitmentID uint64
	// Quantity is the number of commitment units handed over.
	Quantity uint64
	// Amount is the stable value owed, the quantity priced at creation.
	Amount    *num.Uint
	CreatedAt time.Time
	Fulfilled bool
}

func (p *PromiseToPay) Clone() *PromiseToPay {
	cpy := *p
	cpy.Amount = p.Amount.Clone()
	return &cpy
}
