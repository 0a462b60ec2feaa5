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
	"sort"

	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
)

// BookSide holds one side of a bucket's book. Levels are kept sorted with
// the best price at the end of the slice: buy levels ascending, sell
// levels descending, so matching pops from the tail.
type BookSide struct {
	side   types.Side
	levels []*PriceLevel
}

func newBookSide(side types.Side) *BookSide {
	return &BookSide{
		side:   side,
		levels: make([]*PriceLevel, 0, 16),
	}
}

func (s *BookSide) empty() bool {
	for i := len(s.levels) - 1; i >= 0; i-- {
		if s.levels[i].volume() > 0 {
			return false
		}
	}
	return true
}

// getPriceLevel returns the level for the given price, inserting a new
// one at its sorted position when absent.
func (s *BookSide) getPriceLevel(price *num.Uint) *PriceLevel {
	var i int
	if s.side == types.SideBuy {
		// buy side is ascending
		i = sort.Search(len(s.levels), func(i int) bool {
			return s.levels[i].price.GTE(price)
		})
	} else {
		// sell side is descending
		i = sort.Search(len(s.levels), func(i int) bool {
			return s.levels[i].price.LTE(price)
		})
	}
	if i < len(s.levels) && s.levels[i].price.EQ(price) {
		return s.levels[i]
	}
	level := NewPriceLevel(price.Clone())
	s.levels = append(s.levels, nil)
	copy(s.levels[i+1:], s.levels[i:])
	s.levels[i] = level
	return level
}

func (s *BookSide) addOrder(o *types.Order) {
	s.getPriceLevel(o.Price).addOrder(o)
}

// bestLevel returns the most aggressive level still carrying volume,
// dropping exhausted tail levels on the way. Returns nil when the side
// is empty.
func (s *BookSide) bestLevel() *PriceLevel {
	for len(s.levels) > 0 {
		level := s.levels[len(s.levels)-1]
		level.purgeInvalid()
		if len(level.orders) > 0 {
			return level
		}
		s.levels[len(s.levels)-1] = nil
		s.levels = s.levels[:len(s.levels)-1]
	}
	return nil
}

// crosses reports whether the best level would trade with an aggressive
// order at the given limit price.
func (s *BookSide) crosses(level *PriceLevel, price *num.Uint) bool {
	if s.side == types.SideBuy {
		// aggressor is selling, resting buys must bid at least its price
		return level.price.GTE(price)
	}
	// aggressor is buying, resting sells must ask at most its price
	return level.price.LTE(price)
}

// BestPrice returns the best priced level's price and volume, or zero
// values when the side holds nothing.
func (s *BookSide) BestPrice() (*num.Uint, uint64) {
	if level := s.bestLevel(); level != nil {
		return level.price.Clone(), level.volume()
	}
	return num.UintZero(), 0
}

// sweepTail relocates invalid entries from the best level inward until a
// valid entry is met, dropping levels it empties. Invoked on cancellation
// so the index converges without a full rebuild.
func (s *BookSide) sweepTail() {
	for len(s.levels) > 0 {
		level := s.levels[len(s.levels)-1]
		for len(level.orders) > 0 {
			o := level.orders[len(level.orders)-1]
			if o.Valid() {
				return
			}
			level.orders[len(level.orders)-1] = nil
			level.orders = level.orders[:len(level.orders)-1]
		}
		s.levels[len(s.levels)-1] = nil
		s.levels = s.levels[:len(s.levels)-1]
	}
}

// forEach visits every resting order from best level to worst.
func (s *BookSide) forEach(fn func(*types.Order)) {
	for i := len(s.levels) - 1; i >= 0; i-- {
		for _, o := range s.levels[i].orders {
			fn(o)
		}
	}
}
