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

package registry

import (
	"context"
	"encoding/binary"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/metrics"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

// maxSettlementRetries is the shared retry budget for backend settlement
// runs, once exhausted the issuer is permanently in default for that
// commitment.
const maxSettlementRetries = 3

// CheckUpkeep scans commitments and returns the first one entering its
// expiry window (validTo - now <= window, inclusive) that is not yet
// expired. At most one commitment per invocation, callers poll
// repeatedly. The payload feeds PerformUpkeep.
func (e *Engine) CheckUpkeep() (bool, []byte) {
	now := e.timeService.GetTimeNow()
	deadline := now.Add(e.Config.ExpiryWindow.Get())
	for id := uint64(1); id <= e.nextID; id++ {
		cs, ok := e.commitments[id]
		if !ok || cs.commitment.Expired {
			continue
		}
		if !cs.commitment.ValidTo.After(deadline) {
			payload := make([]byte, 8)
			binary.BigEndian.PutUint64(payload, id)
			return true, payload
		}
	}
	return false, nil
}

// PerformUpkeep flags exactly the commitment named in the payload as
// expired and opens its settlement obligation. Backend capability only.
func (e *Engine) PerformUpkeep(ctx context.Context, backend string, payload []byte) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	if !e.capabilities.IsBackend(backend) {
		return types.ErrUnauthorised
	}
	if len(payload) != 8 {
		return types.ErrBadUpkeepData
	}
	id := binary.BigEndian.Uint64(payload)
	cs, ok := e.commitments[id]
	if !ok {
		return types.ErrCommitmentNotFound
	}
	if cs.commitment.Expired {
		return types.ErrCommitmentExpired
	}
	now := e.timeService.GetTimeNow()
	if cs.commitment.ValidTo.After(now.Add(e.Config.ExpiryWindow.Get())) {
		return types.ErrNoUpkeepNeeded
	}

	cs.commitment.Expired = true
	cs.defaults.PendingSettlement = true

	e.log.Info("commitment expired",
		logging.Uint64("id", id),
		logging.String("issuer", cs.commitment.Issuer),
	)
	e.broker.Send(events.NewExpirationRequestedEvent(ctx, id, cs.commitment.Issuer))
	return nil
}

// SettleDebts is the backend settlement path. Per-holder transfer
// failures are non-fatal to the batch and recorded via distinct events,
// but burn the shared retry budget: at three failed runs the issuer is
// permanently in default for the commitment.
func (e *Engine) SettleDebts(ctx context.Context, backend string, id uint64, holders []string, owed []*num.Uint) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	if !e.capabilities.IsBackend(backend) {
		return types.ErrUnauthorised
	}
	cs, ok := e.commitments[id]
	if !ok {
		return types.ErrCommitmentNotFound
	}
	if !cs.commitment.Expired {
		return types.ErrCommitmentNotExpired
	}
	if cs.defaults.RetryAttempts >= maxSettlementRetries {
		return types.ErrRetryBudgetExhausted
	}
	if !cs.defaults.PendingSettlement {
		return types.ErrNothingOutstanding
	}

	allSettled, err := e.settleHolders(ctx, cs, holders, owed)
	if err != nil {
		return err
	}
	if allSettled {
		cs.defaults.PendingSettlement = false
		cs.defaults.Defaulted = false
		e.honoredCredits[cs.commitment.Issuer] = true
		e.broker.Send(events.NewAllDebtsSettledEvent(ctx, id, cs.commitment.Issuer))
		return nil
	}

	cs.defaults.RetryAttempts++
	if cs.defaults.RetryAttempts >= maxSettlementRetries {
		// terminal, the pending flag stays set
		cs.defaults.Defaulted = true
		e.log.Warn("issuer defaulted on commitment",
			logging.Uint64("id", id),
			logging.String("issuer", cs.commitment.Issuer),
		)
		e.broker.Send(events.NewIssuerDefaultedEvent(ctx, id, cs.commitment.Issuer))
	}
	return nil
}

// ManualSettle is the issuer-initiated equivalent of SettleDebts, with
// the same per-holder success/failure semantics but no retry cap and no
// default escalation. A fully successful run clears the pending flag, a
// declared default stays sticky until externally cleared.
func (e *Engine) ManualSettle(ctx context.Context, issuer string, id uint64, holders []string, owed []*num.Uint) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	cs, ok := e.commitments[id]
	if !ok {
		return types.ErrCommitmentNotFound
	}
	if cs.commitment.Issuer != issuer {
		return types.ErrUnauthorised
	}
	if !cs.commitment.Expired {
		return types.ErrCommitmentNotExpired
	}
	if !cs.defaults.PendingSettlement {
		return types.ErrNothingOutstanding
	}

	allSettled, err := e.settleHolders(ctx, cs, holders, owed)
	if err != nil {
		return err
	}
	if allSettled {
		cs.defaults.PendingSettlement = false
		e.honoredCredits[issuer] = true
		e.broker.Send(events.NewAllDebtsSettledEvent(ctx, id, issuer))
	}
	return nil
}

// settleHolders attempts one push transfer from issuer funds per holder,
// emitting a Settled or SettlementFailed event per item.
func (e *Engine) settleHolders(ctx context.Context, cs *commitmentState, holders []string, owed []*num.Uint) (bool, error) {
	if len(holders) == 0 || len(holders) != len(owed) {
		return false, types.ErrMismatchedLengths
	}
	for _, amount := range owed {
		if amount == nil || amount.IsZero() {
			return false, types.ErrAmountZero
		}
	}

	id := cs.commitment.ID
	issuer := cs.commitment.Issuer
	allSettled := true
	for i, holder := range holders {
		ok := e.stable.Transfer(issuer, holder, owed[i])
		metrics.SettlementTransferInc(ok)
		if ok {
			e.broker.Send(events.NewSettledEvent(ctx, id, holder, owed[i]))
			continue
		}
		allSettled = false
		e.broker.Send(events.NewSettlementFailedEvent(ctx, id, holder, owed[i]))
	}
	return allSettled, nil
}
