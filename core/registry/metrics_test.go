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

	"code.wattson.exchange/watt/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenMetrics(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	id := te.mint(t, "issuer", 1000, 100, 1000, te.now.Add(time.Hour), te.now.Add(30*24*time.Hour))

	// 300 sold, valued at the current oracle price
	te.assets.EXPECT().TransferFrom("issuer", "holder", id, uint64(300)).Return(true)
	require.True(t, te.TransferCommitment("issuer", "holder", id, 300))

	te.oracle.EXPECT().RealTimePrice(testBucket).Return(num.NewUint(120), te.now, nil)
	m, err := te.TokenMetrics(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), m.SoldVolume)
	assert.True(t, m.SoldValue.EQ(num.NewUint(36000)))
}

func TestIssuerMetrics(t *testing.T) {
	te := getTestEngine(t)
	defer te.Finish()

	// two commitments, the first will expire unsettled
	id := te.mint(t, "issuer", 1000, 100, 1000, te.now.Add(time.Hour), te.now.Add(36*time.Hour))
	te.mint(t, "issuer", 500, 100, 500, te.now.Add(time.Hour), te.now.Add(60*24*time.Hour))

	te.now = te.now.Add(13 * time.Hour)
	needed, payload := te.CheckUpkeep()
	require.True(t, needed)
	te.caps.EXPECT().IsBackend("backend").Return(true)
	require.NoError(t, te.PerformUpkeep(context.Background(), "backend", payload))

	m := te.IssuerMetrics("issuer")
	assert.Equal(t, uint64(1500), m.MintedVolume)
	assert.Equal(t, uint64(1000), m.ExpiredVolume)
	assert.Equal(t, uint64(500), m.ActiveVolume)

	// the second commitment expires within 60 days
	assert.Equal(t, uint64(500), m.ExpiryHistogram[1])

	// 1000 base, -100 pending settlement, -200 expired ratio above a half
	assert.Equal(t, int64(700), m.Score)

	// settling the debt restores the pending penalty and earns the
	// honoured credit bonus
	te.caps.EXPECT().IsBackend("backend").Return(true)
	te.stable.EXPECT().Transfer("issuer", "h1", num.NewUint(10)).Return(true)
	require.NoError(t, te.SettleDebts(context.Background(), "backend", id, []string{"h1"}, []*num.Uint{num.NewUint(10)}))

	m = te.IssuerMetrics("issuer")
	assert.Equal(t, int64(850), m.Score)
}
