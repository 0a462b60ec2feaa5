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

package fee

import (
	"context"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

const bipsDivisor = 10000

// Capabilities resolves which roles a party holds.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/capabilities_mock.go -package mocks code.wattson.exchange/watt/core/fee Capabilities
type Capabilities interface {
	IsAdmin(party string) bool
}

// Broker - the event bus broker, send events here.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.wattson.exchange/watt/core/fee Broker
type Broker interface {
	Send(event events.Event)
}

// Engine computes the fee cut on every matched notional. Buy and sell
// sides carry independent basis-point rates, the fee is charged on the
// filled leg: commitment units for the buyer, stable value for the
// seller.
type Engine struct {
	Config
	log *logging.Logger

	capabilities Capabilities
	broker       Broker

	buyBips  uint64
	sellBips uint64
	treasury string
}

// New instantiates a new instance of the fee engine.
func New(log *logging.Logger, conf Config, capabilities Capabilities, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:       conf,
		log:          log,
		capabilities: capabilities,
		broker:       broker,
		buyBips:      conf.BuyFeeBips,
		sellBips:     conf.SellFeeBips,
		treasury:     conf.Treasury,
	}
}

// SetFactors updates the both side fee rates. Admin only, each rate must
// be strictly positive.
func (e *Engine) SetFactors(ctx context.Context, admin string, buyBips, sellBips uint64) error {
	if !e.capabilities.IsAdmin(admin) {
		return types.ErrUnauthorised
	}
	if buyBips == 0 || sellBips == 0 || buyBips >= bipsDivisor || sellBips >= bipsDivisor {
		return types.ErrInvalidFeeFactor
	}
	e.buyBips = buyBips
	e.sellBips = sellBips
	e.broker.Send(events.NewFeeUpdatedEvent(ctx, buyBips, sellBips))
	return nil
}

// SetTreasury updates the account receiving fee cuts. Admin only.
func (e *Engine) SetTreasury(ctx context.Context, admin, treasury string) error {
	if !e.capabilities.IsAdmin(admin) {
		return types.ErrUnauthorised
	}
	e.treasury = treasury
	e.broker.Send(events.NewTreasuryUpdatedEvent(ctx, treasury))
	return nil
}

func (e *Engine) Treasury() string {
	return e.treasury
}

func (e *Engine) Factors() (buyBips, sellBips uint64) {
	return e.buyBips, e.sellBips
}

func (e *Engine) sideBips(side types.Side) uint64 {
	if side == types.SideBuy {
		return e.buyBips
	}
	return e.sellBips
}

// SplitAmount splits a stable-value notional into the amount kept by the
// trader and the fee cut: real = notional * (10000 - bips) / 10000.
func (e *Engine) SplitAmount(notional *num.Uint, side types.Side) (real, feeCut *num.Uint) {
	bips := e.sideBips(side)
	real = num.UintZero().Div(
		num.UintZero().Mul(notional, num.NewUint(bipsDivisor-bips)),
		num.NewUint(bipsDivisor),
	)
	feeCut = num.UintZero().Sub(notional, real)
	return real, feeCut
}

// SplitQuantity splits a filled commitment-unit quantity the same way.
func (e *Engine) SplitQuantity(qty uint64, side types.Side) (real, feeCut uint64) {
	bips := e.sideBips(side)
	real = qty * (bipsDivisor - bips) / bipsDivisor
	return real, qty - real
}
