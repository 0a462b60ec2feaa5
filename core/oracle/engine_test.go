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

package oracle_test

import (
	"context"
	"testing"
	"time"

	"code.wattson.exchange/watt/core/oracle"
	"code.wattson.exchange/watt/core/oracle/mocks"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBucket = types.BucketKey{Zone: "NO1", DeliveryType: "baseload"}

type testEngine struct {
	*oracle.Engine
	ctrl   *gomock.Controller
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
		caps:   mocks.NewMockCapabilities(ctrl),
		tsvc:   mocks.NewMockTimeService(ctrl),
		broker: mocks.NewMockBroker(ctrl),
		now:    time.Unix(1700000000, 0),
	}
	te.tsvc.EXPECT().GetTimeNow().DoAndReturn(func() time.Time {
		return te.now
	}).AnyTimes()
	te.broker.EXPECT().Send(gomock.Any()).AnyTimes()
	te.caps.EXPECT().IsFeeder("feeder").Return(true).AnyTimes()
	te.Engine = oracle.New(
		logging.NewTestLogger(),
		oracle.NewDefaultConfig(),
		te.tsvc,
		te.caps,
		te.broker,
	)
	return te
}

func TestUpdatePrice(t *testing.T) {
	t.Run("Feeder capability is required", func(t *testing.T) {
		te := getTestEngine(t)
		defer te.ctrl.Finish()

		te.caps.EXPECT().IsFeeder("random").Return(false)
		err := te.UpdatePrice(context.Background(), "random", testBucket, num.NewUint(10))
		assert.ErrorIs(t, err, types.ErrUnauthorised)
	})

	t.Run("Zero prices are rejected", func(t *testing.T) {
		te := getTestEngine(t)
		defer te.ctrl.Finish()

		err := te.UpdatePrice(context.Background(), "feeder", testBucket, num.UintZero())
		assert.ErrorIs(t, err, types.ErrInvalidPrice)
	})

	t.Run("Latest sample wins", func(t *testing.T) {
		te := getTestEngine(t)
		defer te.ctrl.Finish()
		ctx := context.Background()

		require.NoError(t, te.UpdatePrice(ctx, "feeder", testBucket, num.NewUint(10)))
		te.now = te.now.Add(time.Minute)
		require.NoError(t, te.UpdatePrice(ctx, "feeder", testBucket, num.NewUint(12)))

		price, at, err := te.RealTimePrice(testBucket)
		require.NoError(t, err)
		assert.True(t, price.EQ(num.NewUint(12)))
		assert.Equal(t, te.now, at)
	})
}

func TestRealTimePrice(t *testing.T) {
	te := getTestEngine(t)
	defer te.ctrl.Finish()

	_, _, err := te.RealTimePrice(testBucket)
	assert.ErrorIs(t, err, types.ErrNoPriceFeed)
}

func TestHistoricalPrice(t *testing.T) {
	te := getTestEngine(t)
	defer te.ctrl.Finish()
	ctx := context.Background()

	t0 := te.now
	require.NoError(t, te.UpdatePrice(ctx, "feeder", testBucket, num.NewUint(10)))
	te.now = t0.Add(time.Hour)
	require.NoError(t, te.UpdatePrice(ctx, "feeder", testBucket, num.NewUint(20)))

	// between the two samples the older one applies
	price, at, err := te.HistoricalPrice(testBucket, t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.True(t, price.EQ(num.NewUint(10)))
	assert.Equal(t, t0, at)

	price, _, err = te.HistoricalPrice(testBucket, te.now)
	require.NoError(t, err)
	assert.True(t, price.EQ(num.NewUint(20)))

	_, _, err = te.HistoricalPrice(testBucket, t0.Add(-time.Second))
	assert.ErrorIs(t, err, types.ErrNoPriceFeed)
}
