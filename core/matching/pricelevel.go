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
	"time"

	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
)

// PriceLevel groups resting orders sharing one desired price within one
// side of a bucket. Orders keep arrival order, entries may go invalid in
// place (cancellation is lazy) and are skipped and purged on the next
// uncross.
type PriceLevel struct {
	price  *num.Uint
	orders []*types.Order
}

func NewPriceLevel(price *num.Uint) *PriceLevel {
	return &PriceLevel{
		price:  price,
		orders: make([]*types.Order, 0, 4),
	}
}

func (l *PriceLevel) addOrder(o *types.Order) {
	// ties are appended after existing orders at that price
	l.orders = append(l.orders, o)
}

// volume returns the level's valid remaining quantity.
func (l *PriceLevel) volume() uint64 {
	var vol uint64
	for _, o := range l.orders {
		if o.Valid() {
			vol += o.Remaining
		}
	}
	return vol
}

// fill is one allocation against a resting order.
type fill struct {
	order *types.Order
	size  uint64
}

// timeWeight is a resting order's age-based priority weight, at least one
// second so brand new orders still participate.
func timeWeight(now time.Time, o *types.Order) num.Decimal {
	secs := int64(now.Sub(o.CreatedAt) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return num.DecimalFromInt64(secs)
}

// purgeInvalid drops invalid entries encountered during an uncross, the
// index is compacted lazily rather than kept perfectly live.
func (l *PriceLevel) purgeInvalid() {
	valid := l.orders[:0]
	for _, o := range l.orders {
		if o.Valid() {
			valid = append(valid, o)
		}
	}
	for i := len(valid); i < len(l.orders); i++ {
		l.orders[i] = nil
	}
	l.orders = valid
}

// uncrossQuantity allocates up to maxQty units across the level's valid
// orders pro-rata by time weight, each share capped by the counterparty's
// remaining. Shares round up, so every pass makes progress and repeated
// passes distribute the rounding residue. Drained orders are marked
// filled and removed.
func (l *PriceLevel) uncrossQuantity(now time.Time, maxQty uint64) []fill {
	l.purgeInvalid()
	fills := make([]fill, 0, len(l.orders))
	byOrder := map[*types.Order]int{}

	want := maxQty
	for want > 0 {
		totalW := num.DecimalZero()
		levelVol := uint64(0)
		for _, o := range l.orders {
			if o.Remaining > 0 {
				totalW = totalW.Add(timeWeight(now, o))
				levelVol += o.Remaining
			}
		}
		if levelVol == 0 {
			break
		}

		// volume to share this pass, bounded by what the level holds
		toShare := want
		if levelVol < toShare {
			toShare = levelVol
		}
		shared := num.DecimalFromInt64(int64(toShare))

		allocated := uint64(0)
		for _, o := range l.orders {
			if o.Remaining == 0 || want == 0 {
				continue
			}
			share := shared.Mul(timeWeight(now, o)).Div(totalW).Ceil()
			size := uint64(share.IntPart())
			if size > o.Remaining {
				size = o.Remaining
			}
			if size > want {
				size = want
			}
			if size == 0 {
				continue
			}
			o.Remaining -= size
			o.LastTradedAt = now
			want -= size
			allocated += size

			if idx, ok := byOrder[o]; ok {
				fills[idx].size += size
			} else {
				byOrder[o] = len(fills)
				fills = append(fills, fill{order: o, size: size})
			}
		}
		if allocated == 0 {
			break
		}
	}

	l.retireDrained(now)
	return fills
}

// uncrossValue allocates up to a stable-value budget across the level,
// shares are computed and capped in value terms, then recomputed as whole
// units at the level price. Returns the fills and the value spent.
func (l *PriceLevel) uncrossValue(now time.Time, budget *num.Uint) ([]fill, *num.Uint) {
	l.purgeInvalid()
	fills := make([]fill, 0, len(l.orders))
	byOrder := map[*types.Order]int{}

	spent := num.UintZero()
	left := budget.Clone()
	for left.GTE(l.price) {
		totalW := num.DecimalZero()
		levelVol := uint64(0)
		for _, o := range l.orders {
			if o.Remaining > 0 {
				totalW = totalW.Add(timeWeight(now, o))
				levelVol += o.Remaining
			}
		}
		if levelVol == 0 {
			break
		}

		// value to share this pass, bounded by the level's value
		levelValue := num.UintZero().Mul(num.NewUint(levelVol), l.price)
		toShare := num.Min(left, levelValue).ToDecimal()
		priceD := l.price.ToDecimal()

		allocated := uint64(0)
		for _, o := range l.orders {
			if o.Remaining == 0 || left.LT(l.price) {
				continue
			}
			shareValue := toShare.Mul(timeWeight(now, o)).Div(totalW)
			size := uint64(shareValue.Div(priceD).Ceil().IntPart())
			if size > o.Remaining {
				size = o.Remaining
			}
			if max := num.UintZero().Div(left, l.price).Uint64(); size > max {
				size = max
			}
			if size == 0 {
				continue
			}
			value := num.UintZero().Mul(num.NewUint(size), l.price)
			o.Remaining -= size
			o.LastTradedAt = now
			left.Sub(left, value)
			spent.Add(spent, value)
			allocated += size

			if idx, ok := byOrder[o]; ok {
				fills[idx].size += size
			} else {
				byOrder[o] = len(fills)
				fills = append(fills, fill{order: o, size: size})
			}
		}
		if allocated == 0 {
			break
		}
	}

	l.retireDrained(now)
	return fills, spent
}

// retireDrained marks fully consumed orders filled and removes them.
func (l *PriceLevel) retireDrained(now time.Time) {
	live := l.orders[:0]
	for _, o := range l.orders {
		if o.Status == types.OrderStatusActive && o.Remaining == 0 {
			o.Status = types.OrderStatusFilled
			o.LastTradedAt = now
			continue
		}
		live = append(live, o)
	}
	for i := len(live); i < len(l.orders); i++ {
		l.orders[i] = nil
	}
	l.orders = live
}
