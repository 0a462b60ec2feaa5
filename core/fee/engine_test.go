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

package fee_test

import (
	"context"
	"testing"

	"code.wattson.exchange/watt/core/fee"
	"code.wattson.exchange/watt/core/fee/mocks"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEngine struct {
	*fee.Engine
	ctrl   *gomock.Controller
	caps   *mocks.MockCapabilities
	broker *mocks.MockBroker
}

func getTestEngine(t *testing.T) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	te := &testEngine{
		ctrl:   ctrl,
		caps:   mocks.NewMockCapabilities(ctrl),
		broker: mocks.NewMockBroker(ctrl),
	}
	te.broker.EXPECT().Send(gomock.Any()).AnyTimes()
	te.Engine = fee.New(logging.NewTestLogger(), fee.NewDefaultConfig(), te.caps, te.broker)
	return te
}

func TestSetFactors(t *testing.T) {
	te := getTestEngine(t)
	defer te.ctrl.Finish()
	ctx := context.Background()

	te.caps.EXPECT().IsAdmin("random").Return(false)
	assert.ErrorIs(t, te.SetFactors(ctx, "random", 10, 10), types.ErrUnauthorised)

	te.caps.EXPECT().IsAdmin("admin").Return(true).AnyTimes()
	assert.ErrorIs(t, te.SetFactors(ctx, "admin", 0, 10), types.ErrInvalidFeeFactor)
	assert.ErrorIs(t, te.SetFactors(ctx, "admin", 10, 0), types.ErrInvalidFeeFactor)
	assert.ErrorIs(t, te.SetFactors(ctx, "admin", 10000, 10), types.ErrInvalidFeeFactor)

	require.NoError(t, te.SetFactors(ctx, "admin", 25, 75))
	buy, sell := te.Factors()
	assert.Equal(t, uint64(25), buy)
	assert.Equal(t, uint64(75), sell)
}

func TestSetTreasury(t *testing.T) {
	te := getTestEngine(t)
	defer te.ctrl.Finish()
	ctx := context.Background()

	te.caps.EXPECT().IsAdmin("random").Return(false)
	assert.ErrorIs(t, te.SetTreasury(ctx, "random", "x"), types.ErrUnauthorised)

	te.caps.EXPECT().IsAdmin("admin").Return(true)
	require.NoError(t, te.SetTreasury(ctx, "admin", "fee-pot"))
	assert.Equal(t, "fee-pot", te.Treasury())
}

func TestSplit(t *testing.T) {
	te := getTestEngine(t)
	defer te.ctrl.Finish()

	// default 30 bips both sides
	real, cut := te.SplitAmount(num.NewUint(10000), types.SideSell)
	assert.True(t, real.EQ(num.NewUint(9970)))
	assert.True(t, cut.EQ(num.NewUint(30)))

	// rounding always favours the fee cut
	real, cut = te.SplitAmount(num.NewUint(100), types.SideSell)
	assert.True(t, real.EQ(num.NewUint(99)))
	assert.True(t, cut.EQ(num.NewUint(1)))

	realQ, cutQ := te.SplitQuantity(10000, types.SideBuy)
	assert.Equal(t, uint64(9970), realQ)
	assert.Equal(t, uint64(30), cutQ)

	realQ, cutQ = te.SplitQuantity(1, types.SideBuy)
	assert.Equal(t, uint64(0), realQ)
	assert.Equal(t, uint64(1), cutQ)
}
