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

package types

import (
	"time"

	"code.wattson.exchange/watt/libs/num"
)

type OrderType int8

const (
	OrderTypeUnspecified OrderType = iota
	OrderTypeLimit
	OrderTypeMarket
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeLimit:
		return "limit"
	case OrderTypeMarket:
		return "market"
	default:
		return "unspecified"
	}
}

type OrderStatus int8

const (
	// OrderStatusActive - the order rests on the book.
	OrderStatusActive OrderStatus = iota
	// OrderStatusFilled - terminal, remaining reached zero or the order was
	// retired by the timeout sweep.
	OrderStatusFilled
	// OrderStatusCancelled - terminal, cancelled by its trader.
	OrderStatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusActive:
		return "active"
	case OrderStatusFilled:
		return "filled"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Order is a request to trade commitment units against stable value.
// Remaining and RemainingEscrow only ever decrease.
type Order struct {
	ID           uint64
	Trader       string
	CommitmentID uint64
	Bucket       BucketKey
	Side         Side
	Type         OrderType
	Status       OrderStatus
	// Price is the desired unit price, nil/zero for market orders.
	Price     *num.Uint
	Size      uint64
	Remaining uint64
	// Escrow is the value locked on submission: stable value for buys,
	// commitment units (as a plain count) for sells.
	Escrow          *num.Uint
	RemainingEscrow *num.Uint
	ValidTo         time.Time
	CreatedAt       time.Time
	LastTradedAt    time.Time
}

func (o *Order) Clone() *Order {
	cpy := *o
	cpy.Price = o.Price.Clone()
	cpy.Escrow = o.Escrow.Clone()
	cpy.RemainingEscrow = o.RemainingEscrow.Clone()
	return &cpy
}

// Valid reports whether the order may still be selected as a match
// counterparty. Checked before any match attempt, independent of book
// index staleness.
func (o *Order) Valid() bool {
	return o.Status == OrderStatusActive && o.Remaining > 0
}

// Trade records one matched fill between an aggressive and a passive
// order.
type Trade struct {
	CommitmentID uint64
	Bucket       BucketKey
	Buyer        string
	Seller       string
	BuyOrder     uint64
	SellOrder    uint64
	Aggressor    Side
	Price        *num.Uint
	Size         uint64
	// Value is Price * Size, the gross notional before fees.
	Value     *num.Uint
	Timestamp time.Time
}
