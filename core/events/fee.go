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

package events

import (
	"context"
)

// FeeUpdated - the administrator changed the buy/sell fee factors.
type FeeUpdated struct {
	Base
	buyBips  uint64
	sellBips uint64
}

func NewFeeUpdatedEvent(ctx context.Context, buyBips, sellBips uint64) *FeeUpdated {
	return &FeeUpdated{
		Base:     newBase(ctx, FeeUpdatedEvent),
		buyBips:  buyBips,
		sellBips: sellBips,
	}
}

func (f FeeUpdated) BuyBips() uint64  { return f.buyBips }
func (f FeeUpdated) SellBips() uint64 { return f.sellBips }

// TreasuryUpdated - the administrator changed the treasury account.
type TreasuryUpdated struct {
	Base
	treasury string
}

func NewTreasuryUpdatedEvent(ctx context.Context, treasury string) *TreasuryUpdated {
	return &TreasuryUpdated{
		Base:     newBase(ctx, TreasuryUpdatedEvent),
		treasury: treasury,
	}
}

func (t TreasuryUpdated) Treasury() string { return t.treasury }
