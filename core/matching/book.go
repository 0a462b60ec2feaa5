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
	"code.wattson.exchange/watt/core/types"
)

// OrderBook is one bucket's pair of sides. Commitments within a bucket
// are fungible for matching, a buyer takes delivery of whichever
// commitment the resting seller escrowed.
type OrderBook struct {
	bucket types.BucketKey
	buy    *BookSide
	sell   *BookSide
}

func NewOrderBook(bucket types.BucketKey) *OrderBook {
	return &OrderBook{
		bucket: bucket,
		buy:    newBookSide(types.SideBuy),
		sell:   newBookSide(types.SideSell),
	}
}

func (b *OrderBook) sideFor(side types.Side) *BookSide {
	if side == types.SideBuy {
		return b.buy
	}
	return b.sell
}
