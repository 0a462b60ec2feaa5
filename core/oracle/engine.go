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

package oracle

import (
	"context"
	"time"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

// TimeService.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/time_service_mock.go -package mocks code.wattson.exchange/watt/core/oracle TimeService
type TimeService interface {
	GetTimeNow() time.Time
}

// Capabilities resolves which roles a party holds.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/capabilities_mock.go -package mocks code.wattson.exchange/watt/core/oracle Capabilities
type Capabilities interface {
	IsFeeder(party string) bool
}

// Broker - the event bus broker, send events here.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.wattson.exchange/watt/core/oracle Broker
type Broker interface {
	Send(event events.Event)
}

type pricePoint struct {
	price *num.Uint
	at    time.Time
}

// Engine is the price feed for (zone, delivery type) buckets. Writable
// only by the authorized feeder, read by the registry for collateral and
// metrics valuation.
type Engine struct {
	Config
	log *logging.Logger

	timeService  TimeService
	capabilities Capabilities
	broker       Broker

	latest  map[types.BucketKey]pricePoint
	history map[types.BucketKey][]pricePoint
}

// New instantiates a new instance of the oracle engine.
func New(log *logging.Logger, conf Config, timeService TimeService, capabilities Capabilities, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:       conf,
		log:          log,
		timeService:  timeService,
		capabilities: capabilities,
		broker:       broker,
		latest:       map[types.BucketKey]pricePoint{},
		history:      map[types.BucketKey][]pricePoint{},
	}
}

// ReloadConf updates the internal configuration of the oracle engine.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	e.Config = cfg
}

// UpdatePrice stores a new price sample for the bucket. Restricted to the
// feeder capability, zero prices are rejected.
func (e *Engine) UpdatePrice(ctx context.Context, feeder string, bucket types.BucketKey, price *num.Uint) error {
	if !e.capabilities.IsFeeder(feeder) {
		return types.ErrUnauthorised
	}
	if price == nil || price.IsZero() {
		return types.ErrInvalidPrice
	}

	now := e.timeService.GetTimeNow()
	pp := pricePoint{price: price.Clone(), at: now}
	e.latest[bucket] = pp
	e.history[bucket] = append(e.history[bucket], pp)

	if e.log.IsDebug() {
		e.log.Debug("price updated",
			logging.String("bucket", bucket.String()),
			logging.BigUint("price", price),
		)
	}
	e.broker.Send(events.NewPriceUpdatedEvent(ctx, bucket, price, now))
	return nil
}

// RealTimePrice returns the latest price and its timestamp for the bucket.
func (e *Engine) RealTimePrice(bucket types.BucketKey) (*num.Uint, time.Time, error) {
	pp, ok := e.latest[bucket]
	if !ok {
		return num.UintZero(), time.Time{}, types.ErrNoPriceFeed
	}
	return pp.price.Clone(), pp.at, nil
}

// HistoricalPrice returns the most recent sample at or before ts.
func (e *Engine) HistoricalPrice(bucket types.BucketKey, ts time.Time) (*num.Uint, time.Time, error) {
	hist := e.history[bucket]
	// samples arrive in time order, walk back from the newest
	for i := len(hist) - 1; i >= 0; i-- {
		if !hist[i].at.After(ts) {
			return hist[i].price.Clone(), hist[i].at, nil
		}
	}
	return num.UintZero(), time.Time{}, types.ErrNoPriceFeed
}
