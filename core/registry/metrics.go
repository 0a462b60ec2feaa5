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
	"time"

	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
)

// soldVolume = minted - issuer inventory - destroyed, i.e. everything the
// issuer has parted with for value (circulating + redeemed).
func (cs *commitmentState) soldVolume() uint64 {
	return cs.commitment.TotalMinted - cs.issuerBalance - cs.commitment.TotalDestroyed
}

// activeVolume is the outstanding (unredeemed, undestroyed) unit count.
func (cs *commitmentState) activeVolume() uint64 {
	return cs.commitment.TotalSupply + cs.issuerBalance
}

// TokenMetrics values a commitment's sold volume at the current oracle
// price.
func (e *Engine) TokenMetrics(id uint64) (*types.TokenMetrics, error) {
	cs, ok := e.commitments[id]
	if !ok {
		return nil, types.ErrCommitmentNotFound
	}
	price, _, err := e.oracle.RealTimePrice(cs.commitment.Bucket())
	if err != nil {
		return nil, err
	}
	sold := cs.soldVolume()
	return &types.TokenMetrics{
		CommitmentID: id,
		SoldVolume:   sold,
		SoldValue:    num.UintZero().Mul(num.NewUint(sold), price),
		Price:        price,
	}, nil
}

// IssuerMetrics aggregates volumes across the issuer's commitments,
// buckets active balances into a time-to-expiry histogram and computes
// the issuer score.
func (e *Engine) IssuerMetrics(issuer string) *types.IssuerMetrics {
	now := e.timeService.GetTimeNow()
	m := &types.IssuerMetrics{
		Issuer:          issuer,
		ExpiryHistogram: make([]uint64, len(types.ExpiryHistogramBounds)+1),
	}

	var anyDefault, anyPending bool
	for _, id := range e.byIssuer[issuer] {
		cs := e.commitments[id]
		m.MintedVolume += cs.commitment.TotalMinted
		m.SoldVolume += cs.soldVolume()
		m.DestroyedVolume += cs.commitment.TotalDestroyed
		if cs.defaults.Defaulted {
			anyDefault = true
		}
		if cs.defaults.PendingSettlement {
			anyPending = true
		}
		if cs.commitment.Expired {
			m.ExpiredVolume += cs.activeVolume()
			continue
		}
		active := cs.activeVolume()
		m.ActiveVolume += active
		m.ExpiryHistogram[expirySlot(now, cs.commitment.ValidTo)] += active
	}

	m.Score = e.score(m, issuer, anyDefault, anyPending)
	return m
}

// expirySlot places a commitment in the time-to-expiry histogram.
func expirySlot(now, validTo time.Time) int {
	for i, days := range types.ExpiryHistogramBounds {
		if !validTo.After(now.AddDate(0, 0, days)) {
			return i
		}
	}
	return len(types.ExpiryHistogramBounds)
}

func (e *Engine) score(m *types.IssuerMetrics, issuer string, anyDefault, anyPending bool) int64 {
	score := int64(1000)
	if anyDefault {
		score -= 200
	}
	if anyPending {
		score -= 100
	}
	if e.honoredCredits[issuer] {
		score += 50
	}
	switch {
	case m.SoldVolume > 1_000_000:
		score += 100
	case m.SoldVolume > 100_000:
		score += 50
	}

	total := m.ActiveVolume + m.ExpiredVolume
	if total > 0 {
		ratio := num.DecimalFromInt64(int64(m.ExpiredVolume)).Div(num.DecimalFromInt64(int64(total)))
		switch {
		case ratio.GreaterThan(num.DecimalFromFloat(0.5)):
			score -= 200
		case ratio.GreaterThan(num.DecimalFromFloat(0.2)):
			score -= 100
		}
	}
	return score
}
