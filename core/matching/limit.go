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
	"context"
	"time"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/metrics"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

// SubmitLimitOrder places an order at a desired price with an expiry.
// The full notional (stable for buys, units for sells) is escrowed up
// front, the order matches immediately against resting prices at least
// as favourable and the remainder rests in the bucket's book. Sell limit
// orders are reserved for issuers.
func (e *Engine) SubmitLimitOrder(
	ctx context.Context,
	trader string,
	commitmentID uint64,
	bucket types.BucketKey,
	side types.Side,
	price *num.Uint,
	size uint64,
	validTo time.Time,
) (*types.Order, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.exit()

	timer := metrics.NewTimeCounter(bucket.String(), "matching", "SubmitLimitOrder")
	defer timer.EngineTimeCounterAdd()

	if side != types.SideBuy && side != types.SideSell {
		return nil, types.ErrInvalidSide
	}
	if size == 0 {
		return nil, types.ErrSizeZero
	}
	if price == nil || price.IsZero() {
		return nil, types.ErrInvalidPrice
	}
	now := e.timeService.GetTimeNow()
	if !validTo.After(now) {
		return nil, types.ErrInvalidExpiry
	}

	var escrow *num.Uint
	switch side {
	case types.SideBuy:
		escrow = num.UintZero().Mul(num.NewUint(size), price)
		if !e.stable.TransferFrom(trader, e.EscrowAccount, escrow) {
			return nil, types.ErrTransferFailed
		}
	case types.SideSell:
		// resting sell liquidity is an issuer privilege
		if !e.capabilities.IsIssuer(trader) {
			return nil, types.ErrUnauthorised
		}
		if _, err := e.registry.IssuerOf(commitmentID); err != nil {
			return nil, err
		}
		escrow = num.NewUint(size)
		if !e.registry.TransferCommitment(trader, e.EscrowAccount, commitmentID, size) {
			return nil, types.ErrTransferFailed
		}
	}

	order := e.newOrder(trader, commitmentID, bucket, side, types.OrderTypeLimit,
		price, size, escrow, validTo, now)

	book := e.book(bucket)
	var err error
	if side == types.SideBuy {
		err = e.crossLimitBuy(ctx, book, order, now)
	} else {
		err = e.crossLimitSell(ctx, book, order, now)
	}
	if err != nil {
		return nil, err
	}

	if order.Remaining > 0 {
		book.sideFor(side).addOrder(order)
	} else {
		order.Status = types.OrderStatusFilled
		e.retire(order)
	}

	if e.LogOrderSubmitDebug && e.log.IsDebug() {
		e.log.Debug("limit order placed",
			logging.Uint64("order-id", order.ID),
			logging.Uint64("remaining", order.Remaining),
			logging.Time("valid-to", validTo),
		)
	}
	return order.Clone(), nil
}

// crossLimitBuy fills the aggressive buy against sell levels asking no
// more than its limit, then returns the escrow saved by fills at better
// prices.
func (e *Engine) crossLimitBuy(ctx context.Context, book *OrderBook, order *types.Order, now time.Time) error {
	bought := map[uint64]uint64{}
	for order.Remaining > 0 {
		level := book.sell.bestLevel()
		if level == nil || !book.sell.crosses(level, order.Price) {
			break
		}
		fills := level.uncrossQuantity(now, order.Remaining)
		if len(fills) == 0 {
			break
		}
		for _, f := range fills {
			value := num.UintZero().Mul(num.NewUint(f.size), level.price)
			f.order.RemainingEscrow.Sub(f.order.RemainingEscrow, num.NewUint(f.size))
			// payouts draw on escrow collected up front, so the escrow
			// account always covers them; a refusal here means the ledger
			// itself is broken and the walk aborts mid state
			if !e.stable.Transfer(e.EscrowAccount, f.order.Trader, value) {
				return types.ErrTransferFailed
			}
			bought[f.order.CommitmentID] += f.size
			order.Remaining -= f.size
			order.RemainingEscrow.Sub(order.RemainingEscrow, value)
			order.LastTradedAt = now
			e.emitTrade(ctx, order, f.order, f.order.CommitmentID, f.size, level.price, now)
			if f.order.Status == types.OrderStatusFilled {
				e.retire(f.order)
			}
		}
	}

	for cid, qty := range bought {
		real, feeCut := e.fees.SplitQuantity(qty, types.SideBuy)
		if !e.registry.TransferCommitment(e.EscrowAccount, order.Trader, cid, real) {
			return types.ErrTransferFailed
		}
		if feeCut > 0 && !e.registry.TransferCommitment(e.EscrowAccount, e.fees.Treasury(), cid, feeCut) {
			return types.ErrTransferFailed
		}
	}

	// escrow beyond what the remainder needs at the limit price goes back
	needed := num.UintZero().Mul(num.NewUint(order.Remaining), order.Price)
	if order.RemainingEscrow.GT(needed) {
		surplus := num.UintZero().Sub(order.RemainingEscrow, needed)
		if !e.stable.Transfer(e.EscrowAccount, order.Trader, surplus) {
			return types.ErrTransferFailed
		}
		order.RemainingEscrow.Set(needed)
	}
	return nil
}

// crossLimitSell fills the aggressive sell against buy levels bidding at
// least its limit and pays the proceeds net of the sell side fee.
func (e *Engine) crossLimitSell(ctx context.Context, book *OrderBook, order *types.Order, now time.Time) error {
	proceeds := num.UintZero()
	for order.Remaining > 0 {
		level := book.buy.bestLevel()
		if level == nil || !book.buy.crosses(level, order.Price) {
			break
		}
		fills := level.uncrossQuantity(now, order.Remaining)
		if len(fills) == 0 {
			break
		}
		for _, f := range fills {
			value := num.UintZero().Mul(num.NewUint(f.size), level.price)
			f.order.RemainingEscrow.Sub(f.order.RemainingEscrow, value)
			// escrowed units always cover the delivery, a refusal means a
			// broken ledger and aborts the walk mid state
			if !e.registry.TransferCommitment(e.EscrowAccount, f.order.Trader, order.CommitmentID, f.size) {
				return types.ErrTransferFailed
			}
			proceeds.AddSum(value)
			order.Remaining -= f.size
			order.RemainingEscrow.Sub(order.RemainingEscrow, num.NewUint(f.size))
			order.LastTradedAt = now
			e.emitTrade(ctx, order, f.order, order.CommitmentID, f.size, level.price, now)
			if f.order.Status == types.OrderStatusFilled {
				e.retire(f.order)
			}
		}
	}

	if !proceeds.IsZero() {
		real, feeCut := e.fees.SplitAmount(proceeds, types.SideSell)
		if !e.stable.Transfer(e.EscrowAccount, order.Trader, real) {
			return types.ErrTransferFailed
		}
		if !feeCut.IsZero() && !e.stable.Transfer(e.EscrowAccount, e.fees.Treasury(), feeCut) {
			return types.ErrTransferFailed
		}
	}
	return nil
}

// CancelOrder cancels a resting order owned by the caller and returns
// exactly the unconsumed escrow. The book entry is invalidated in place,
// tail entries are swept into the historical list on the way out.
func (e *Engine) CancelOrder(ctx context.Context, trader string, orderID uint64) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	o, ok := e.orders[orderID]
	if !ok {
		return types.ErrOrderNotFound
	}
	if o.Trader != trader {
		return types.ErrUnauthorised
	}
	if !o.Valid() {
		return types.ErrOrderFinal
	}

	refunded := o.RemainingEscrow.Clone()
	if o.Side == types.SideBuy {
		if !e.stable.Transfer(e.EscrowAccount, trader, refunded) {
			return types.ErrTransferFailed
		}
	} else {
		if !e.registry.TransferCommitment(e.EscrowAccount, trader, o.CommitmentID, o.Remaining) {
			return types.ErrTransferFailed
		}
	}
	o.Status = types.OrderStatusCancelled
	o.RemainingEscrow = num.UintZero()
	e.retire(o)

	if book, ok := e.books[o.Bucket]; ok {
		book.sideFor(o.Side).sweepTail()
	}

	e.broker.Send(events.NewOrderCancelledEvent(ctx, o.ID, trader, refunded))
	if e.log.IsDebug() {
		e.log.Debug("order cancelled",
			logging.Uint64("order-id", o.ID),
			logging.BigUint("refunded", refunded),
		)
	}
	return nil
}
