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
	"sync/atomic"
)

type Type int

// Event types, one per externally observable state transition. Together
// they form the venue's read/audit API.
const (
	// All is used by subscribers wanting every event, it has no payload.
	All Type = iota
	MintedEvent
	DestroyedEvent
	RedeemedEvent
	ExpirationRequestedEvent
	SettledEvent
	SettlementFailedEvent
	AllDebtsSettledEvent
	IssuerDefaultedEvent
	TradeExecutedEvent
	OrderCancelledEvent
	NoLiquidityCreatedEvent
	PromiseToPayFulfilledEvent
	PriceUpdatedEvent
	FeeUpdatedEvent
	TreasuryUpdatedEvent
)

var eventStrings = map[Type]string{
	All:                        "ALL",
	MintedEvent:                "Minted",
	DestroyedEvent:             "Destroyed",
	RedeemedEvent:              "Redeemed",
	ExpirationRequestedEvent:   "ExpirationRequested",
	SettledEvent:               "Settled",
	SettlementFailedEvent:      "SettlementFailed",
	AllDebtsSettledEvent:       "AllDebtsSettled",
	IssuerDefaultedEvent:       "IssuerDefaulted",
	TradeExecutedEvent:         "TradeExecuted",
	OrderCancelledEvent:        "OrderCancelled",
	NoLiquidityCreatedEvent:    "NoLiquidityCreated",
	PromiseToPayFulfilledEvent: "PromiseToPayFulfilled",
	PriceUpdatedEvent:          "PriceUpdated",
	FeeUpdatedEvent:            "FeeUpdated",
	TreasuryUpdatedEvent:       "TreasuryUpdated",
}

func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN"
	}
	return s
}

// Event is the common denominator all bus events share.
type Event interface {
	Type() Type
	Context() context.Context
	Sequence() uint64
}

var eventSeq uint64

// Base common denominator all event-bus events share.
type Base struct {
	ctx context.Context
	seq uint64
	et  Type
}

func newBase(ctx context.Context, t Type) Base {
	return Base{
		ctx: ctx,
		seq: atomic.AddUint64(&eventSeq, 1),
		et:  t,
	}
}

func (b Base) Type() Type {
	return b.et
}

func (b Base) Context() context.Context {
	return b.ctx
}

func (b Base) Sequence() uint64 {
	return b.seq
}
