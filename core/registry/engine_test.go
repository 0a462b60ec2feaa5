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
	"testing"
	"time"

	"code.wattson.exchange/watt/core/registry"
	"code.wattson.exchange/watt/core/registry/mocks"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insurancePool = "insurance-pool"

var testBucket = types.BucketKey{Zone: "NO1", DeliveryType: "baseload"}

type testEngine struct {
	*registry.Engine
	ctrl   *gomock.Controller
	oracle *mocks.MockOracle
	stable *mocks.MockStableLedger
	assets *mocks.MockAssetLedger
	caps   *mocks.MockCapabilities
	tsvc   *mocks.MockTimeService
	broker *mocks.MockBroker
	now    time.Time
}

func getTestEngine(t *testing.T) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	te := &testEngine{
		ctrl:   ctrl,
		oracle: mocks.NewMockOracle(ctrl),
		stable: mocks.NewMockStableLedger(ctrl),
		assets: mocks.NewMockAssetLedger(ctrl),
		caps:   mocks.NewMockCapabilities(ctrl),
		tsvc:   mocks.NewMockTimeService(ctrl),
		broker: mocks.NewMockBroker(ctrl),
		now:    time.Unix(1700000000, 0),
	}
	te.tsvc.EXPECT().GetTimeNow().DoAndReturn(func() time.Time {
		return te.now
	}).AnyTimes()
	te.broker.EXPECT().Send(gomock.Any()).AnyTimes()
	te.Engine = registry.New(
		logging.NewTestLogger(),
		registry.NewDefaultConfig(),
		te.oracle,
		te.stable,
		te.assets,
		te.caps,
		te.tsvc,
		te.broker,
	)
	return te
}

func (te *testEngine) Finish() {
	te.ctrl.Finish()
}

func testAttrs() types.CommitmentAttributes {
	return types.CommitmentAttributes{
		Zone:         testBucket.Zone,
		DeliveryType: testBucket.DeliveryType,
	}
}

// mint issues amount units at the given oracle price, expecting the
// collateral pull to go through.
func (te *testEngine) mint(t *testing.T, issuer string, amount, price, collateral uint64, validFrom, validTo time.Time) uint64 {
	t.Helper()
	te.caps.EXPECT().IsIssuer(issuer).Return(true)
	te.oracle.EXPECT().RealTimePrice(testBucket).Return(num.NewUint(price), te.now, nil)
	te.stable.EXPECT().TransferFrom(issuer, insurancePool, num.NewUint(collateral)).Return(true)
	te.assets.EXPECT().Mint(issuer, gomock.Any(), amount)
	id, err := te.Mint(context.Background(), issuer, amount, num.NewUint(1),
		validFrom, validTo, "ref", testAttrs())
	require.NoError(t, err)
	return id
}

func TestMint(t *testing.T) {
	t.Run("First time issuers put up one percent collateral", testMintFirstTimeCollateral)
	t.Run("Issuer capability is required", testMintIssuerOnly)
	t.Run("Validation of amounts and the validity window", testMintValidation)
	t.Run("Failed collateral pull aborts with no state change", testMintCollateralFailed)
}

func testMintFirstTimeCollateral(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	// 1000 units at price 100, 100 bips: collateral is 1000
	id := te.mint(t, "issuer", 1000, 100, 1000, te.now.Add(time.Hour), te.now.Add(30*24*time.Hour))
	assert.Equal(t, uint64(1), id)

	c, err := te.Commitment(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), c.TotalMinted)
	assert.Equal(t, uint64(0), c.TotalSupply)

	bal, err := te.IssuerBalance(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), bal)
}

func testMintIssuerOnly(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	te.caps.EXPECT().IsIssuer("random").Return(false)
	_, err := te.Mint(context.Background(), "random", 1000, num.NewUint(1),
		te.now.Add(time.Hour), te.now.Add(2*time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrUnauthorised)
}

func testMintValidation(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	ctx := context.Background()
	te.caps.EXPECT().IsIssuer("issuer").Return(true).AnyTimes()

	_, err := te.Mint(ctx, "issuer", 0, num.NewUint(1),
		te.now.Add(time.Hour), te.now.Add(2*time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrAmountZero)

	_, err = te.Mint(ctx, "issuer", 10, num.UintZero(),
		te.now.Add(time.Hour), te.now.Add(2*time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrAmountZero)

	// window must open in the future
	_, err = te.Mint(ctx, "issuer", 10, num.NewUint(1),
		te.now, te.now.Add(2*time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrInvalidValidityWindow)

	// and close after it opens
	_, err = te.Mint(ctx, "issuer", 10, num.NewUint(1),
		te.now.Add(2*time.Hour), te.now.Add(time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrInvalidValidityWindow)
}

func testMintCollateralFailed(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	te.caps.EXPECT().IsIssuer("issuer").Return(true)
	te.oracle.EXPECT().RealTimePrice(testBucket).Return(num.NewUint(100), te.now, nil)
	te.stable.EXPECT().TransferFrom("issuer", insurancePool, gomock.Any()).Return(false)

	_, err := te.Mint(context.Background(), "issuer", 1000, num.NewUint(1),
		te.now.Add(time.Hour), te.now.Add(2*time.Hour), "ref", testAttrs())
	assert.ErrorIs(t, err, types.ErrTransferFailed)

	_, err = te.Commitment(1)
	assert.ErrorIs(t, err, types.ErrCommitmentNotFound)
}

func TestUnitConservation(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.mint(t, "issuer", 1000, 100, 1000, te.now.Add(time.Hour), te.now.Add(30*24*time.Hour))

	// 300 sold out of inventory
	te.assets.EXPECT().TransferFrom("issuer", "holder", id, uint64(300)).Return(true)
	require.True(t, te.TransferCommitment("issuer", "holder", id, 300))

	// 100 redeemed for delivery
	te.assets.EXPECT().BalanceOf("holder", id).Return(uint64(300))
	te.assets.EXPECT().TransferFrom("holder", "issuer", id, uint64(100)).Return(true)
	require.NoError(t, te.Redeem(ctx, "holder", id, 100))

	// 200 destroyed from unsold inventory
	te.assets.EXPECT().Burn("issuer", id, uint64(200)).Return(true)
	require.NoError(t, te.Destroy(ctx, "issuer", id, 200))

	c, err := te.Commitment(id)
	require.NoError(t, err)
	bal, err := te.IssuerBalance(id)
	require.NoError(t, err)

	assert.Equal(t, uint64(200), c.TotalSupply)
	assert.Equal(t, uint64(100), c.TotalRedeemed)
	assert.Equal(t, uint64(200), c.TotalDestroyed)
	assert.Equal(t, uint64(500), bal)
	assert.Equal(t, c.TotalMinted, c.TotalSupply+c.TotalRedeemed+c.TotalDestroyed+bal)
	assert.Equal(t, uint64(100), te.RedeemedBy(id, "holder"))
}

func TestRedeemedUnitsAreNotInventory(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.mint(t, "issuer", 100, 100, 1000, te.now.Add(time.Hour), te.now.Add(30*24*time.Hour))

	// the whole tranche is sold, then redeemed back for delivery, so the
	// issuer's ledger balance holds 100 retired certificates and zero
	// unsold inventory
	te.assets.EXPECT().TransferFrom("issuer", "holder", id, uint64(100)).Return(true)
	require.True(t, te.TransferCommitment("issuer", "holder", id, 100))
	te.assets.EXPECT().BalanceOf("holder", id).Return(uint64(100))
	te.assets.EXPECT().TransferFrom("holder", "issuer", id, uint64(100)).Return(true)
	require.NoError(t, te.Redeem(ctx, "holder", id, 100))

	// re-selling retired units is refused before the ledger is touched,
	// no asset transfer expectation is set on purpose
	require.False(t, te.TransferCommitment("issuer", "buyer", id, 100))
	require.False(t, te.TransferCommitment("issuer", "buyer", id, 1))

	c, err := te.Commitment(id)
	require.NoError(t, err)
	bal, err := te.IssuerBalance(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), c.TotalSupply)
	assert.Equal(t, uint64(100), c.TotalRedeemed)
	assert.Equal(t, uint64(0), bal)
	assert.Equal(t, c.TotalMinted, c.TotalSupply+c.TotalRedeemed+c.TotalDestroyed+bal)
}

func TestRedeem(t *testing.T) {
	t.Run("The issuer cannot redeem its own commitment", testRedeemIssuerRefused)
	t.Run("Holder balance is checked before the transfer", testRedeemInsufficient)
}

func testRedeemIssuerRefused(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	id := te.mint(t, "issuer", 100, 10, 10, te.now.Add(time.Hour), te.now.Add(2*time.Hour))
	err := te.Redeem(context.Background(), "issuer", id, 10)
	assert.ErrorIs(t, err, types.ErrIssuerCannotRedeem)
}

func testRedeemInsufficient(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	id := te.mint(t, "issuer", 100, 10, 10, te.now.Add(time.Hour), te.now.Add(2*time.Hour))
	te.assets.EXPECT().BalanceOf("holder", id).Return(uint64(5))
	err := te.Redeem(context.Background(), "holder", id, 10)
	assert.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestDestroy(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()
	ctx := context.Background()

	id := te.mint(t, "issuer", 100, 10, 10, te.now.Add(time.Hour), te.now.Add(2*time.Hour))

	err := te.Destroy(ctx, "other", id, 10)
	assert.ErrorIs(t, err, types.ErrUnauthorised)

	err = te.Destroy(ctx, "issuer", id, 101)
	assert.ErrorIs(t, err, types.ErrInsufficientBalance)

	te.assets.EXPECT().Burn("issuer", id, uint64(100)).Return(true)
	require.NoError(t, te.Destroy(ctx, "issuer", id, 100))

	c, _ := te.Commitment(id)
	assert.Equal(t, uint64(100), c.TotalDestroyed)
}

func TestCollateralRates(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	te.caps.EXPECT().IsAdmin("random").Return(false)
	err := te.SetCollateralRate("random", "issuer", 500)
	assert.ErrorIs(t, err, types.ErrUnauthorised)

	te.caps.EXPECT().IsAdmin("admin").Return(true)
	require.NoError(t, te.SetCollateralRate("admin", "issuer", 500))

	// 5 percent of 1000 * 100
	te.mint(t, "issuer", 1000, 100, 5000, te.now.Add(time.Hour), te.now.Add(2*time.Hour))
}
