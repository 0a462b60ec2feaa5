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
	"testing"
	"time"

	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitLimitOrder(t *testing.T) {
	t.Run("Sell limit orders are an issuer privilege", testLimitSellIssuerOnly)
	t.Run("Validation rejects bad size, price, side and expiry", testLimitValidation)
	t.Run("Remainder rests at its price level", testLimitRests)
	t.Run("Crossing at a better price refunds the escrow surplus", testLimitBuyBetterPriceSurplus)
	t.Run("Matches only levels at least as favourable", testLimitRespectsLimitPrice)
}

func testLimitSellIssuerOnly(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	te.caps.EXPECT().IsIssuer("random").Return(false)
	_, err := te.SubmitLimitOrder(context.Background(), "random", 1, testBucket,
		types.SideSell, num.NewUint(5), 10, te.now.Add(time.Hour))
	assert.ErrorIs(t, err, types.ErrUnauthorised)
}

func testLimitValidation(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	ctx := context.Background()
	validTo := te.now.Add(time.Hour)

	_, err := te.SubmitLimitOrder(ctx, "buyer", 0, testBucket, types.SideUnspecified, num.NewUint(5), 10, validTo)
	assert.ErrorIs(t, err, types.ErrInvalidSide)

	_, err = te.SubmitLimitOrder(ctx, "buyer", 0, testBucket, types.SideBuy, num.NewUint(5), 0, validTo)
	assert.ErrorIs(t, err, types.ErrSizeZero)

	_, err = te.SubmitLimitOrder(ctx, "buyer", 0, testBucket, types.SideBuy, num.UintZero(), 10, validTo)
	assert.ErrorIs(t, err, types.ErrInvalidPrice)

	_, err = te.SubmitLimitOrder(ctx, "buyer", 0, testBucket, types.SideBuy, num.NewUint(5), 10, te.now)
	assert.ErrorIs(t, err, types.ErrInvalidExpiry)
}

func testLimitRests(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	o := te.restingBuy(t, "buyer", 5, 10, te.now.Add(time.Hour))
	assert.Equal(t, types.OrderStatusActive, o.Status)
	assert.Equal(t, uint64(10), o.Remaining)
	assert.True(t, o.RemainingEscrow.EQ(num.NewUint(50)))

	price, volume := te.BestBid(testBucket)
	assert.True(t, price.EQ(num.NewUint(5)))
	assert.Equal(t, uint64(10), volume)
}

func testLimitBuyBetterPriceSurplus(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	te.passthroughFees()

	validTo := te.now.Add(time.Hour)
	te.restingSell(t, "issuer", 1, 4, 100, validTo)

	// willing to pay 5, filled fully at 4, the 100 saved comes back
	te.stable.EXPECT().TransferFrom("buyer", escrowAccount, num.NewUint(500)).Return(true)
	te.stable.EXPECT().Transfer(escrowAccount, "issuer", num.NewUint(400)).Return(true)
	te.registry.EXPECT().TransferCommitment(escrowAccount, "buyer", uint64(1), uint64(100)).Return(true)
	te.stable.EXPECT().Transfer(escrowAccount, "buyer", num.NewUint(100)).Return(true)

	o, err := te.SubmitLimitOrder(context.Background(), "buyer", 0, testBucket,
		types.SideBuy, num.NewUint(5), 100, validTo)
	require.NoError(t, err)
	assert.Equal(t, types.OrderStatusFilled, o.Status)
	assert.Equal(t, uint64(0), o.Remaining)
}

func testLimitRespectsLimitPrice(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	validTo := te.now.Add(time.Hour)
	te.restingSell(t, "issuer", 1, 7, 100, validTo)

	// a buy capped at 5 must not touch the ask at 7, it rests instead
	te.stable.EXPECT().TransferFrom("buyer", escrowAccount, num.NewUint(50)).Return(true)
	o, err := te.SubmitLimitOrder(context.Background(), "buyer", 0, testBucket,
		types.SideBuy, num.NewUint(5), 10, validTo)
	require.NoError(t, err)
	assert.Equal(t, types.OrderStatusActive, o.Status)
	assert.Equal(t, uint64(10), o.Remaining)
}

func TestCancelOrder(t *testing.T) {
	t.Run("Refunds exactly the unconsumed escrow", testCancelExactRefund)
	t.Run("Only the owner can cancel", testCancelNotOwner)
	t.Run("Terminal orders cannot be cancelled again", testCancelFinal)
	t.Run("Cancelled entries are never matched", testCancelledNeverMatched)
}

func testCancelExactRefund(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	o := te.restingBuy(t, "buyer", 5, 10, te.now.Add(time.Hour))

	te.stable.EXPECT().Transfer(escrowAccount, "buyer", num.NewUint(50)).Return(true)
	require.NoError(t, te.CancelOrder(context.Background(), "buyer", o.ID))

	got, err := te.Order(o.ID)
	require.NoError(t, err)
	assert.Equal(t, types.OrderStatusCancelled, got.Status)
	assert.True(t, got.RemainingEscrow.IsZero())
}

func testCancelNotOwner(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	o := te.restingBuy(t, "buyer", 5, 10, te.now.Add(time.Hour))
	err := te.CancelOrder(context.Background(), "other", o.ID)
	assert.ErrorIs(t, err, types.ErrUnauthorised)
}

func testCancelFinal(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	err := te.CancelOrder(context.Background(), "buyer", 42)
	assert.ErrorIs(t, err, types.ErrOrderNotFound)

	o := te.restingBuy(t, "buyer", 5, 10, te.now.Add(time.Hour))
	te.stable.EXPECT().Transfer(escrowAccount, "buyer", num.NewUint(50)).Return(true)
	require.NoError(t, te.CancelOrder(context.Background(), "buyer", o.ID))

	err = te.CancelOrder(context.Background(), "buyer", o.ID)
	assert.ErrorIs(t, err, types.ErrOrderFinal)
}

func testCancelledNeverMatched(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	te.passthroughFees()

	validTo := te.now.Add(time.Hour)
	s1 := te.restingSell(t, "alpha", 1, 2, 50, validTo)
	te.restingSell(t, "beta", 2, 2, 50, validTo)

	// cancel the first seller, its units go back
	te.registry.EXPECT().TransferCommitment(escrowAccount, "alpha", uint64(1), uint64(50)).Return(true)
	require.NoError(t, te.CancelOrder(context.Background(), "alpha", s1.ID))

	// a buy sweeping the level may only hit the second seller
	te.registry.EXPECT().IssuerOf(uint64(2)).Return("beta", nil)
	te.stable.EXPECT().TransferFrom("buyer", escrowAccount, num.NewUint(200)).Return(true)
	te.stable.EXPECT().Transfer(escrowAccount, "beta", num.NewUint(100)).Return(true)
	te.registry.EXPECT().TransferCommitment(escrowAccount, "buyer", uint64(2), uint64(50)).Return(true)
	te.stable.EXPECT().Transfer(escrowAccount, "buyer", num.NewUint(100)).Return(true)

	o, err := te.SubmitBuyMarketOrder(context.Background(), "buyer", num.NewUint(200), 2, testBucket)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), o.Size)
}
