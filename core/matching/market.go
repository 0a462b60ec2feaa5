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

	"code.wattson.exchange/watt/core/metrics"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

// SubmitBuyMarketOrder spends up to escrow stable value against the
// bucket's resting sells, best prices first, shares within a level
// allocated by time weight. Commitments within a bucket are fungible, so
// commitmentID names the commitment the buyer asked for while the fills
// deliver whichever commitments the resting sellers escrowed. The order
// is refused before any escrow moves when the bucket has no sell
// liquidity, and whatever part of the escrow the walk could not consume
// is returned in the same call. The filled quantity is delivered net of
// the buy side fee.
func (e *Engine) SubmitBuyMarketOrder(
	ctx context.Context,
	trader string,
	escrow *num.Uint,
	commitmentID uint64,
	bucket types.BucketKey,
) (*types.Order, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.exit()

	timer := metrics.NewTimeCounter(bucket.String(), "matching", "SubmitBuyMarketOrder")
	defer timer.EngineTimeCounterAdd()

	if escrow == nil || escrow.IsZero() {
		return nil, types.ErrAmountZero
	}
	book := e.book(bucket)
	if book.sell.empty() {
		// refuse before pulling any escrow
		return nil, types.ErrNoLiquidity
	}
	if bestAsk := book.sell.bestLevel(); bestAsk != nil && escrow.LT(bestAsk.price) {
		// cannot afford a single unit at the best ask
		return nil, types.ErrEscrowTooSmall
	}
	if _, err := e.registry.IssuerOf(commitmentID); err != nil {
		return nil, err
	}
	if !e.stable.TransferFrom(trader, e.EscrowAccount, escrow) {
		return nil, types.ErrTransferFailed
	}

	now := e.timeService.GetTimeNow()
	order := e.newOrder(trader, commitmentID, bucket, types.SideBuy, types.OrderTypeMarket,
		num.UintZero(), 0, escrow, now, now)

	// walk the sell side with the remaining budget
	budget := escrow.Clone()
	bought := map[uint64]uint64{}
	for {
		level := book.sell.bestLevel()
		if level == nil || budget.LT(level.price) {
			break
		}
		fills, spent := level.uncrossValue(now, budget)
		budget.Sub(budget, spent)
		order.RemainingEscrow.Set(budget)
		for _, f := range fills {
			value := num.UintZero().Mul(num.NewUint(f.size), level.price)
			f.order.RemainingEscrow.Sub(f.order.RemainingEscrow, num.NewUint(f.size))
			// payouts draw on escrow collected up front, so the escrow
			// account always covers them; a refusal here means the ledger
			// itself is broken and the walk aborts mid state
			if !e.stable.Transfer(e.EscrowAccount, f.order.Trader, value) {
				return nil, types.ErrTransferFailed
			}
			bought[f.order.CommitmentID] += f.size
			order.Size += f.size
			order.LastTradedAt = now
			e.emitTrade(ctx, order, f.order, f.order.CommitmentID, f.size, level.price, now)
			if f.order.Status == types.OrderStatusFilled {
				e.retire(f.order)
			}
		}
		if len(fills) == 0 {
			break
		}
	}

	// deliver per commitment, net of the buy side fee. escrowed units
	// always cover the delivery, a refusal means a broken ledger and
	// aborts the walk mid state
	for cid, qty := range bought {
		real, feeCut := e.fees.SplitQuantity(qty, types.SideBuy)
		if !e.registry.TransferCommitment(e.EscrowAccount, trader, cid, real) {
			return nil, types.ErrTransferFailed
		}
		if feeCut > 0 && !e.registry.TransferCommitment(e.EscrowAccount, e.fees.Treasury(), cid, feeCut) {
			return nil, types.ErrTransferFailed
		}
	}

	// unconsumed escrow always comes back
	if !budget.IsZero() {
		if !e.stable.Transfer(e.EscrowAccount, trader, budget) {
			return nil, types.ErrTransferFailed
		}
	}
	order.RemainingEscrow = num.UintZero()
	order.Status = types.OrderStatusFilled
	e.retire(order)

	if e.log.IsDebug() {
		e.log.Debug("buy market order done",
			logging.Uint64("order-id", order.ID),
			logging.Uint64("filled", order.Size),
			logging.BigUint("refunded", budget),
		)
	}
	return order.Clone(), nil
}

// SubmitSellMarketOrder sells size units of a commitment against the
// bucket's resting buys, best prices first. Whatever the books cannot
// absorb is handed to the commitment's issuer against a promise to pay
// valued at the bucket's current price. Proceeds are paid net of the
// sell side fee.
func (e *Engine) SubmitSellMarketOrder(
	ctx context.Context,
	trader string,
	commitmentID uint64,
	bucket types.BucketKey,
	size uint64,
) (*types.Order, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.exit()

	timer := metrics.NewTimeCounter(bucket.String(), "matching", "SubmitSellMarketOrder")
	defer timer.EngineTimeCounterAdd()

	if size == 0 {
		return nil, types.ErrSizeZero
	}
	issuer, err := e.registry.IssuerOf(commitmentID)
	if err != nil {
		return nil, err
	}
	if !e.registry.TransferCommitment(trader, e.EscrowAccount, commitmentID, size) {
		return nil, types.ErrTransferFailed
	}

	now := e.timeService.GetTimeNow()
	book := e.book(bucket)
	order := e.newOrder(trader, commitmentID, bucket, types.SideSell, types.OrderTypeMarket,
		num.UintZero(), size, num.NewUint(size), now, now)

	proceeds := num.UintZero()
	for order.Remaining > 0 {
		level := book.buy.bestLevel()
		if level == nil {
			break
		}
		fills := level.uncrossQuantity(now, order.Remaining)
		if len(fills) == 0 {
			break
		}
		for _, f := range fills {
			value := num.UintZero().Mul(num.NewUint(f.size), level.price)
			f.order.RemainingEscrow.Sub(f.order.RemainingEscrow, value)
			// the resting buyer takes delivery in full. escrowed units
			// always cover it, a refusal means a broken ledger and
			// aborts the walk mid state
			if !e.registry.TransferCommitment(e.EscrowAccount, f.order.Trader, commitmentID, f.size) {
				return nil, types.ErrTransferFailed
			}
			proceeds.AddSum(value)
			order.Remaining -= f.size
			order.RemainingEscrow.Sub(order.RemainingEscrow, num.NewUint(f.size))
			order.LastTradedAt = now
			e.emitTrade(ctx, order, f.order, commitmentID, f.size, level.price, now)
			if f.order.Status == types.OrderStatusFilled {
				e.retire(f.order)
			}
		}
	}

	if !proceeds.IsZero() {
		real, feeCut := e.fees.SplitAmount(proceeds, types.SideSell)
		if !e.stable.Transfer(e.EscrowAccount, trader, real) {
			return nil, types.ErrTransferFailed
		}
		if !feeCut.IsZero() && !e.stable.Transfer(e.EscrowAccount, e.fees.Treasury(), feeCut) {
			return nil, types.ErrTransferFailed
		}
	}

	// leftover liquidity the books could not absorb goes to the issuer
	if order.Remaining > 0 {
		if _, err := e.createPromise(ctx, trader, issuer, commitmentID, bucket, order.Remaining, now); err != nil {
			return nil, err
		}
		order.Remaining = 0
	}
	order.RemainingEscrow = num.UintZero()
	order.Status = types.OrderStatusFilled
	e.retire(order)

	if e.log.IsDebug() {
		e.log.Debug("sell market order done",
			logging.Uint64("order-id", order.ID),
			logging.BigUint("proceeds", proceeds),
		)
	}
	return order.Clone(), nil
}
