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

package matching_test

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutUpkeep(t *testing.T) {
	t.Run("Flags exactly one lapsed order per round", testUpkeepOneAtATime)
	t.Run("Nothing flagged while orders are in validity", testUpkeepNothingToDo)
	t.Run("Perform is backend only and re-validates", testUpkeepPerformGuards)
	t.Run("Lapsed buy escrow is returned to its trader", testUpkeepBuyRefund)
}

func testUpkeepOneAtATime(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	s1 := te.restingSell(t, "issuer", 1, 2, 50, te.now.Add(10*time.Second))
	s2 := te.restingSell(t, "issuer", 1, 2, 40, te.now.Add(20*time.Second))

	te.now = te.now.Add(15 * time.Second)
	needed, payload := te.CheckUpkeep()
	require.True(t, needed)
	require.Len(t, payload, 8)
	assert.Equal(t, s1.ID, binary.BigEndian.Uint64(payload))

	// the lapsed sell is handed to the issuer against a promise
	te.caps.EXPECT().IsBackend("backend").Return(true)
	te.registry.EXPECT().IssuerOf(uint64(1)).Return("issuer", nil)
	te.registry.EXPECT().CurrentPrice(testBucket).Return(num.NewUint(3), nil)
	te.registry.EXPECT().TransferCommitment(escrowAccount, "issuer", uint64(1), uint64(50)).Return(true)
	require.NoError(t, te.PerformUpkeep(context.Background(), "backend", payload))

	p, err := te.Promise(1)
	require.NoError(t, err)
	assert.Equal(t, "issuer", p.Holder)
	assert.Equal(t, uint64(50), p.Quantity)
	assert.True(t, p.Amount.EQ(num.NewUint(150)))

	// the second order is still live, nothing more to do yet
	needed, _ = te.CheckUpkeep()
	assert.False(t, needed)

	te.now = te.now.Add(10 * time.Second)
	needed, payload = te.CheckUpkeep()
	require.True(t, needed)
	assert.Equal(t, s2.ID, binary.BigEndian.Uint64(payload))
}

func testUpkeepNothingToDo(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	te.restingSell(t, "issuer", 1, 2, 50, te.now.Add(time.Hour))
	needed, payload := te.CheckUpkeep()
	assert.False(t, needed)
	assert.Nil(t, payload)
}

func testUpkeepPerformGuards(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	ctx := context.Background()
	o := te.restingSell(t, "issuer", 1, 2, 50, te.now.Add(10*time.Second))

	te.caps.EXPECT().IsBackend("random").Return(false)
	err := te.PerformUpkeep(ctx, "random", upkeepPayloadFor(o.ID))
	assert.ErrorIs(t, err, types.ErrUnauthorised)

	te.caps.EXPECT().IsBackend("backend").Return(true)
	err = te.PerformUpkeep(ctx, "backend", []byte{1, 2, 3})
	assert.ErrorIs(t, err, types.ErrBadUpkeepData)

	// still within validity, the call must refuse
	te.caps.EXPECT().IsBackend("backend").Return(true)
	err = te.PerformUpkeep(ctx, "backend", upkeepPayloadFor(o.ID))
	assert.ErrorIs(t, err, types.ErrNoUpkeepNeeded)

	te.caps.EXPECT().IsBackend("backend").Return(true)
	err = te.PerformUpkeep(ctx, "backend", upkeepPayloadFor(999))
	assert.ErrorIs(t, err, types.ErrOrderNotFound)
}

func testUpkeepBuyRefund(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	o := te.restingBuy(t, "buyer", 5, 10, te.now.Add(10*time.Second))
	te.now = te.now.Add(11 * time.Second)

	needed, payload := te.CheckUpkeep()
	require.True(t, needed)
	assert.Equal(t, o.ID, binary.BigEndian.Uint64(payload))

	te.caps.EXPECT().IsBackend("backend").Return(true)
	te.stable.EXPECT().Transfer(escrowAccount, "buyer", num.NewUint(50)).Return(true)
	require.NoError(t, te.PerformUpkeep(context.Background(), "backend", payload))

	got, _ := te.Order(o.ID)
	assert.Equal(t, types.OrderStatusCancelled, got.Status)

	// the retirement is evented like any other cancellation
	var cancelled *events.OrderCancelled
	for _, e := range te.evts {
		if c, ok := e.(*events.OrderCancelled); ok {
			cancelled = c
		}
	}
	require.NotNil(t, cancelled)
	assert.Equal(t, o.ID, cancelled.OrderID())
	assert.Equal(t, "buyer", cancelled.Trader())
	assert.Equal(t, num.NewUint(50), cancelled.Refunded())
}

func upkeepPayloadFor(id uint64) []byte {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, id)
	return payload
}

func TestFulfillPromiseToPay(t *testing.T) {
	t.Run("Only the addressed issuer, after cooldown, in full, once", testPromiseLifecycle)
	t.Run("Unknown promise", testPromiseUnknown)
}

func testPromiseLifecycle(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	// seed one promise through an unmatched market sell
	te.registry.EXPECT().IssuerOf(uint64(1)).Return("issuer", nil)
	te.registry.EXPECT().TransferCommitment("seller", escrowAccount, uint64(1), uint64(50)).Return(true)
	te.registry.EXPECT().CurrentPrice(testBucket).Return(num.NewUint(7), nil)
	te.registry.EXPECT().TransferCommitment(escrowAccount, "issuer", uint64(1), uint64(50)).Return(true)
	_, err := te.SubmitSellMarketOrder(ctx, "seller", 1, testBucket, 50)
	require.NoError(t, err)
	amount := num.NewUint(350)

	te.registry.EXPECT().IssuerOf(uint64(1)).Return("issuer", nil).AnyTimes()

	err = te.FulfillPromiseToPay(ctx, "stranger", 1, amount)
	assert.ErrorIs(t, err, types.ErrUnauthorised)

	err = te.FulfillPromiseToPay(ctx, "issuer", 1, amount)
	assert.ErrorIs(t, err, types.ErrPromiseCooldown)

	te.now = te.now.Add(24 * time.Hour)
	err = te.FulfillPromiseToPay(ctx, "issuer", 1, num.NewUint(349))
	assert.ErrorIs(t, err, types.ErrPromiseAmountMismatch)

	te.stable.EXPECT().TransferFrom("issuer", "seller", amount).Return(true)
	require.NoError(t, te.FulfillPromiseToPay(ctx, "issuer", 1, amount))

	p, _ := te.Promise(1)
	assert.True(t, p.Fulfilled)

	err = te.FulfillPromiseToPay(ctx, "issuer", 1, amount)
	assert.ErrorIs(t, err, types.ErrPromiseFulfilled)
}

func testPromiseUnknown(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	err := te.FulfillPromiseToPay(context.Background(), "issuer", 7, num.NewUint(1))
	assert.ErrorIs(t, err, types.ErrPromiseNotFound)
}
