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

	"code.wattson.exchange/watt/core/types"
)

// TradeExecuted - one fill between an aggressive and a passive order.
type TradeExecuted struct {
	Base
	trade types.Trade
}

func NewTradeExecutedEvent(ctx context.Context, t *types.Trade) *TradeExecuted {
	cpy := *t
	cpy.Price = t.Price.Clone()
	cpy.Value = t.Value.Clone()
	return &TradeExecuted{
		Base:  newBase(ctx, TradeExecutedEvent),
		trade: cpy,
	}
}

func (t TradeExecuted) Trade() types.Trade {
	return t.trade
}
