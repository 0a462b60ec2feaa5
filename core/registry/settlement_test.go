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

package registry_test

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expire mints a commitment and drives it through the upkeep pair into
// the pending-settlement state.
func (te *testEngine) expire(t *testing.T, issuer string) uint64 {
	t.Helper()
	id := te.mint(t, issuer, 1000, 100, 1000, te.now.Add(time.Hour), te.now.Add(36*time.Hour))

	// not in the expiry window yet
	needed, _ := te.CheckUpkeep()
	require.False(t, needed)

	te.now = te.now.Add(13 * time.Hour)
	needed, payload := te.CheckUpkeep()
	require.True(t, needed)
	require.Equal(t, id, binary.BigEndian.Uint64(payload))

	te.caps.EXPECT().IsBackend("backend").Return(true)
	require.NoError(t, te.PerformUpkeep(context.Background(), "backend", payload))
	return id
}

func TestExpiryUpkeep(t *testing.T) {
	t.Run("Commitments entering the expiry window are flagged once", testUpkeepFlagsAndSettlesPending)
	t.Run("Perform is backend only and re-validates the window", testUpkeepGuards)
}

func testUpkeepFlagsAndSettlesPending(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	id := te.expire(t, "issuer")

	c, err := te.Commitment(id)
	require.NoError(t, err)
	assert.True(t, c.Expired)

	ds, err := te.DefaultState(id)
	require.NoError(t, err)
	assert.True(t, ds.PendingSettlement)
	assert.False(t, ds.Defaulted)

	// already expired, not flagged again
	needed, _ := te.CheckUpkeep()
	assert.False(t, needed)

	// an open obligation blocks further minting
	te.caps.EXPECT().IsIssuer("issuer").Return(true)
	_, err = te.Mint(context.Background(), "issuer", 10, num.NewUint(1),
		te.now.Add(time.Hour), te.now.Add(2*time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrSettlementPending)
}

func testUpkeepGuards(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.mint(t, "issuer", 1000, 100, 1000, te.now.Add(time.Hour), te.now.Add(36*time.Hour))
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, id)

	te.caps.EXPECT().IsBackend("random").Return(false)
	assert.ErrorIs(t, te.PerformUpkeep(ctx, "random", payload), types.ErrUnauthorised)

	te.caps.EXPECT().IsBackend("backend").Return(true)
	assert.ErrorIs(t, te.PerformUpkeep(ctx, "backend", []byte{1}), types.ErrBadUpkeepData)

	// still outside the expiry window
	te.caps.EXPECT().IsBackend("backend").Return(true)
	assert.ErrorIs(t, te.PerformUpkeep(ctx, "backend", payload), types.ErrNoUpkeepNeeded)
}

func TestSettleDebts(t *testing.T) {
	t.Run("A fully successful run clears the obligation", testSettleSuccess)
	t.Run("Three failed runs exhaust the budget and default the issuer", testSettleRetryCapDefaults)
	t.Run("Batch validation happens before any transfer", testSettleValidation)
	t.Run("Partial failure burns one retry but settles the rest", testSettlePartialFailure)
}

func testSettleSuccess(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.expire(t, "issuer")

	holders := []string{"h1", "h2"}
	owed := []*num.Uint{num.NewUint(100), num.NewUint(50)}
	te.caps.EXPECT().IsBackend("backend").Return(true)
	te.stable.EXPECT().Transfer("issuer", "h1", num.NewUint(100)).Return(true)
	te.stable.EXPECT().Transfer("issuer", "h2", num.NewUint(50)).Return(true)
	require.NoError(t, te.SettleDebts(ctx, "backend", id, holders, owed))

	ds, _ := te.DefaultState(id)
	assert.False(t, ds.PendingSettlement)
	assert.False(t, ds.Defaulted)

	// nothing left to settle
	te.caps.EXPECT().IsBackend("backend").Return(true)
	err := te.SettleDebts(ctx, "backend", id, holders, owed)
	assert.ErrorIs(t, err, types.ErrNothingOutstanding)
}

func testSettleRetryCapDefaults(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.expire(t, "issuer")
	holders := []string{"h1"}
	owed := []*num.Uint{num.NewUint(100)}

	for i := 0; i < 3; i++ {
		te.caps.EXPECT().IsBackend("backend").Return(true)
		te.stable.EXPECT().Transfer("issuer", "h1", num.NewUint(100)).Return(false)
		require.NoError(t, te.SettleDebts(ctx, "backend", id, holders, owed))
	}

	ds, _ := te.DefaultState(id)
	assert.True(t, ds.Defaulted)
	assert.True(t, ds.PendingSettlement)
	assert.Equal(t, uint32(3), ds.RetryAttempts)

	// the budget is shared and exhausted
	te.caps.EXPECT().IsBackend("backend").Return(true)
	err := te.SettleDebts(ctx, "backend", id, holders, owed)
	assert.ErrorIs(t, err, types.ErrRetryBudgetExhausted)

	// a defaulted issuer cannot mint
	te.caps.EXPECT().IsIssuer("issuer").Return(true)
	_, err = te.Mint(ctx, "issuer", 10, num.NewUint(1),
		te.now.Add(time.Hour), te.now.Add(2*time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrIssuerInDefault)

	// manual settlement can still clear the debt, the default is sticky
	te.stable.EXPECT().Transfer("issuer", "h1", num.NewUint(100)).Return(true)
	require.NoError(t, te.ManualSettle(ctx, "issuer", id, holders, owed))

	ds, _ = te.DefaultState(id)
	assert.False(t, ds.PendingSettlement)
	assert.True(t, ds.Defaulted)
}

func testSettleValidation(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.expire(t, "issuer")

	te.caps.EXPECT().IsBackend("backend").Return(true)
	err := te.SettleDebts(ctx, "backend", id, []string{"h1", "h2"}, []*num.Uint{num.NewUint(1)})
	assert.ErrorIs(t, err, types.ErrMismatchedLengths)

	// a zero amount anywhere in the batch stops it before any transfer
	te.caps.EXPECT().IsBackend("backend").Return(true)
	err = te.SettleDebts(ctx, "backend", id, []string{"h1", "h2"},
		[]*num.Uint{num.NewUint(1), num.UintZero()})
	assert.ErrorIs(t, err, types.ErrAmountZero)
}

func testSettlePartialFailure(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.expire(t, "issuer")

	holders := []string{"h1", "h2"}
	owed := []*num.Uint{num.NewUint(100), num.NewUint(50)}
	te.caps.EXPECT().IsBackend("backend").Return(true)
	te.stable.EXPECT().Transfer("issuer", "h1", num.NewUint(100)).Return(false)
	te.stable.EXPECT().Transfer("issuer", "h2", num.NewUint(50)).Return(true)
	require.NoError(t, te.SettleDebts(ctx, "backend", id, holders, owed))

	ds, _ := te.DefaultState(id)
	assert.True(t, ds.PendingSettlement)
	assert.False(t, ds.Defaulted)
	assert.Equal(t, uint32(1), ds.RetryAttempts)
}

func TestManualSettle(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.expire(t, "issuer")
	holders := []string{"h1"}
	owed := []*num.Uint{num.NewUint(100)}

	err := te.ManualSettle(ctx, "other", id, holders, owed)
	assert.ErrorIs(t, err, types.ErrUnauthorised)

	// failures are tolerated and never burn the retry budget
	for i := 0; i < 5; i++ {
		te.stable.EXPECT().Transfer("issuer", "h1", num.NewUint(100)).Return(false)
		require.NoError(t, te.ManualSettle(ctx, "issuer", id, holders, owed))
	}
	ds, _ := te.DefaultState(id)
	assert.Equal(t, uint32(0), ds.RetryAttempts)
	assert.True(t, ds.PendingSettlement)

	te.stable.EXPECT().Transfer("issuer", "h1", num.NewUint(100)).Return(true)
	require.NoError(t, te.ManualSettle(ctx, "issuer", id, holders, owed))
	ds, _ = te.DefaultState(id)
	assert.False(t, ds.PendingSettlement)
}
