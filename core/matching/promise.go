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

// createPromise hands qty escrowed units back to the commitment's issuer
// and records a promise to pay the holder the quantity valued at the
// bucket's price at creation time.
func (e *Engine) createPromise(
	ctx context.Context,
	holder, issuer string,
	commitmentID uint64,
	bucket types.BucketKey,
	qty uint64,
	now time.Time,
) (*types.PromiseToPay, error) {
	price, err := e.registry.CurrentPrice(bucket)
	if err != nil {
		return nil, err
	}
	if !e.registry.TransferCommitment(e.EscrowAccount, issuer, commitmentID, qty) {
		return nil, types.ErrTransferFailed
	}

	e.nextPromiseID++
	p := &types.PromiseToPay{
		ID:           e.nextPromiseID,
		Holder:       holder,
		CommitmentID: commitmentID,
		Quantity:     qty,
		Amount:       num.UintZero().Mul(num.NewUint(qty), price),
		CreatedAt:    now,
	}
	e.promises[p.ID] = p
	metrics.PromiseCounterInc()
	e.broker.Send(events.NewNoLiquidityCreatedEvent(ctx, p))

	e.log.Info("promise to pay created",
		logging.Uint64("promise-id", p.ID),
		logging.String("holder", holder),
		logging.Uint64("quantity", qty),
		logging.BigUint("amount", p.Amount),
	)
	return p, nil
}

// FulfillPromiseToPay settles a promise in full. Only the addressed
// commitment's issuer may pay, only after the cooldown has elapsed, only
// once and only for the exact recorded amount.
func (e *Engine) FulfillPromiseToPay(ctx context.Context, caller string, promiseID uint64, amount *num.Uint) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	p, ok := e.promises[promiseID]
	if !ok {
		return types.ErrPromiseNotFound
	}
	if p.Fulfilled {
		return types.ErrPromiseFulfilled
	}
	issuer, err := e.registry.IssuerOf(p.CommitmentID)
	if err != nil {
		return err
	}
	if caller != issuer {
		return types.ErrUnauthorised
	}
	now := e.timeService.GetTimeNow()
	if now.Before(p.CreatedAt.Add(e.PromiseCooldown.Get())) {
		return types.ErrPromiseCooldown
	}
	if amount == nil || amount.NEQ(p.Amount) {
		return types.ErrPromiseAmountMismatch
	}
	if !e.stable.TransferFrom(caller, p.Holder, amount) {
		return types.ErrTransferFailed
	}

	p.Fulfilled = true
	e.broker.Send(events.NewPromiseToPayFulfilledEvent(ctx, p))

	e.log.Info("promise to pay fulfilled",
		logging.Uint64("promise-id", p.ID),
		logging.String("issuer", issuer),
		logging.BigUint("amount", amount),
	)
	return nil
}
