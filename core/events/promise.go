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

	"code.wattson.exchange/watt/core/types"
)

// PromiseToPayFulfilled - the issuer discharged a promise in full.
type PromiseToPayFulfilled struct {
	Base
	promise types.PromiseToPay
}

func NewPromiseToPayFulfilledEvent(ctx context.Context, p *types.PromiseToPay) *PromiseToPayFulfilled {
	return &PromiseToPayFulfilled{
		Base:    newBase(ctx, PromiseToPayFulfilledEvent),
		promise: *p.Clone(),
	}
}

func (p PromiseToPayFulfilled) Promise() types.PromiseToPay {
	return p.promise
}
