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
	"encoding/binary"
	"time"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

// CheckUpkeep scans the books for the first resting order whose validity
// has lapsed and returns it encoded for the follow-up call. One order per
// round, the scheduler keeps calling while work remains.
func (e *Engine) CheckUpkeep() (bool, []byte) {
	now := e.timeService.GetTimeNow()
	for _, key := range e.bucketKeys {
		book := e.books[key]
		if o := firstLapsed(book.sell, now); o != nil {
			return true, upkeepPayload(o.ID)
		}
		if o := firstLapsed(book.buy, now); o != nil {
			return true, upkeepPayload(o.ID)
		}
	}
	return false, nil
}

func firstLapsed(side *BookSide, now time.Time) *types.Order {
	var found *types.Order
	side.forEach(func(o *types.Order) {
		if found != nil || !o.Valid() {
			return
		}
		if !o.ValidTo.IsZero() && !o.ValidTo.After(now) {
			found = o
		}
	})
	return found
}

func upkeepPayload(id uint64) []byte {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, id)
	return payload
}

// PerformUpkeep retires the single lapsed order named in the payload.
// A lapsed buy is cancelled with its escrow returned to the trader, a
// lapsed sell hands its escrow to the issuer against a promise to pay,
// same as any other liquidity the books could not absorb.
func (e *Engine) PerformUpkeep(ctx context.Context, caller string, payload []byte) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	if !e.capabilities.IsBackend(caller) {
		return types.ErrUnauthorised
	}
	if len(payload) != 8 {
		return types.ErrBadUpkeepData
	}
	id := binary.BigEndian.Uint64(payload)
	o, ok := e.orders[id]
	if !ok {
		return types.ErrOrderNotFound
	}
	now := e.timeService.GetTimeNow()
	if !o.Valid() || o.ValidTo.IsZero() || o.ValidTo.After(now) {
		return types.ErrNoUpkeepNeeded
	}

	status := types.OrderStatusFilled
	if o.Side == types.SideBuy {
		// a lapsed buy is cancelled with its escrow returned
		refunded := o.RemainingEscrow.Clone()
		if !e.stable.Transfer(e.EscrowAccount, o.Trader, refunded) {
			return types.ErrTransferFailed
		}
		e.broker.Send(events.NewOrderCancelledEvent(ctx, o.ID, o.Trader, refunded))
		status = types.OrderStatusCancelled
	} else {
		issuer, err := e.registry.IssuerOf(o.CommitmentID)
		if err != nil {
			return err
		}
		if _, err := e.createPromise(ctx, o.Trader, issuer, o.CommitmentID, o.Bucket, o.Remaining, now); err != nil {
			return err
		}
	}

	o.Status = status
	o.Remaining = 0
	o.RemainingEscrow = num.UintZero()
	e.retire(o)

	if book, ok := e.books[o.Bucket]; ok {
		book.sideFor(o.Side).sweepTail()
	}

	e.log.Info("lapsed order retired",
		logging.Uint64("order-id", o.ID),
		logging.Time("valid-to", o.ValidTo),
	)
	return nil
}
