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

package events

import (
	"context"
	"time"

	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
)

// PriceUpdated - the oracle feeder pushed a new price for a bucket.
type PriceUpdated struct {
	Base
	bucket types.BucketKey
	price  *num.Uint
	at     time.Time
}

func NewPriceUpdatedEvent(ctx context.Context, bucket types.BucketKey, price *num.Uint, at time.Time) *PriceUpdated {
	return &PriceUpdated{
		Base:   newBase(ctx, PriceUpdatedEvent),
		bucket: bucket,
		price:  price.Clone(),
		at:     at,
	}
}

func (p PriceUpdated) Bucket() types.BucketKey { return p.bucket }
func (p PriceUpdated) Price() *num.Uint        { return p.price.Clone() }
func (p PriceUpdated) At() time.Time           { return p.at }
