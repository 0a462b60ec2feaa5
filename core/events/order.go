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
	"code.wattson.exchange/watt/libs/num"
)

// OrderCancelled - a trader pulled a resting order, remaining escrow
// refunded.
type OrderCancelled struct {
	Base
	orderID  uint64
	trader   string
	refunded *num.Uint
}

func NewOrderCancelledEvent(ctx context.Context, orderID uint64, trader string, refunded *num.Uint) *OrderCancelled {
	return &OrderCancelled{
		Base:     newBase(ctx, OrderCancelledEvent),
		orderID:  orderID,
		trader:   trader,
		refunded: refunded.Clone(),
	}
}

func (o OrderCancelled) OrderID() uint64     { return o.orderID }
func (o OrderCancelled) Trader() string      { return o.trader }
func (o OrderCancelled) Refunded() *num.Uint { return o.refunded.Clone() }

// NoLiquidityCreated - sell liquidity found no counterparty and was
// routed to a promise-to-pay instead.
type NoLiquidityCreated struct {
	Base
	promise types.PromiseToPay
}

func NewNoLiquidityCreatedEvent(ctx context.Context, p *types.PromiseToPay) *NoLiquidityCreated {
	return &NoLiquidityCreated{
		Base:    newBase(ctx, NoLiquidityCreatedEvent),
		promise: *p.Clone(),
	}
}

func (n NoLiquidityCreated) Promise() types.PromiseToPay {
	return n.promise
}
