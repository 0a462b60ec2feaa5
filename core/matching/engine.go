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
	"context"
	"time"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/metrics"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

// Registry is the slice of the commitment registry the venue needs:
// resolving issuers, valuing buckets and moving commitment balances.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/registry_mock.go -package mocks code.wattson.exchange/watt/core/matching Registry
type Registry interface {
	IssuerOf(id uint64) (string, error)
	CurrentPrice(bucket types.BucketKey) (*num.Uint, error)
	TransferCommitment(from, to string, id uint64, amount uint64) bool
}

// StableLedger moves stable value, success is signalled with a boolean.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/stable_ledger_mock.go -package mocks code.wattson.exchange/watt/core/matching StableLedger
type StableLedger interface {
	Transfer(from, to string, amount *num.Uint) bool
	TransferFrom(from, to string, amount *num.Uint) bool
}

// Fees splits notionals and quantities into the real part and the
// treasury cut.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/fees_mock.go -package mocks code.wattson.exchange/watt/core/matching Fees
type Fees interface {
	SplitAmount(notional *num.Uint, side types.Side) (real, feeCut *num.Uint)
	SplitQuantity(qty uint64, side types.Side) (real, feeCut uint64)
	Treasury() string
}

// Capabilities resolves which roles a party holds.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/capabilities_mock.go -package mocks code.wattson.exchange/watt/core/matching Capabilities
type Capabilities interface {
	IsIssuer(party string) bool
	IsBackend(party string) bool
}

// TimeService.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/time_service_mock.go -package mocks code.wattson.exchange/watt/core/matching TimeService
type TimeService interface {
	GetTimeNow() time.Time
}

// Broker - the event bus broker, send events here.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.wattson.exchange/watt/core/matching Broker
type Broker interface {
	Send(event events.Event)
}

// Engine is the venue. It keeps one book per bucket, an order arena
// addressed by id, the list of retired order ids and the promise to pay
// table for liquidity the books could not absorb.
type Engine struct {
	Config
	log *logging.Logger

	registry     Registry
	stable       StableLedger
	fees         Fees
	capabilities Capabilities
	timeService  TimeService
	broker       Broker

	busy bool

	nextOrderID uint64
	orders      map[uint64]*types.Order
	books       map[types.BucketKey]*OrderBook
	// bucketKeys preserves book creation order so scans are deterministic.
	bucketKeys []types.BucketKey
	// history collects the ids of retired orders swept out of the books.
	history []uint64

	nextPromiseID uint64
	promises      map[uint64]*types.PromiseToPay
}

// New instantiates a new instance of the matching engine.
func New(
	log *logging.Logger,
	conf Config,
	registry Registry,
	stable StableLedger,
	fees Fees,
	capabilities Capabilities,
	timeService TimeService,
	broker Broker,
) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:       conf,
		log:          log,
		registry:     registry,
		stable:       stable,
		fees:         fees,
		capabilities: capabilities,
		timeService:  timeService,
		broker:       broker,
		orders:       map[uint64]*types.Order{},
		books:        map[types.BucketKey]*OrderBook{},
		promises:     map[uint64]*types.PromiseToPay{},
	}
}

// ReloadConf updates the internal configuration of the matching engine.
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

func (e *Engine) enter() error {
	if e.busy {
		return types.ErrReentrantCall
	}
	e.busy = true
	return nil
}

func (e *Engine) exit() {
	e.busy = false
}

// book returns the bucket's book, creating it on first use.
func (e *Engine) book(bucket types.BucketKey) *OrderBook {
	if b, ok := e.books[bucket]; ok {
		return b
	}
	b := NewOrderBook(bucket)
	e.books[bucket] = b
	e.bucketKeys = append(e.bucketKeys, bucket)
	return b
}

func (e *Engine) newOrder(
	trader string,
	commitmentID uint64,
	bucket types.BucketKey,
	side types.Side,
	typ types.OrderType,
	price *num.Uint,
	size uint64,
	escrow *num.Uint,
	validTo time.Time,
	now time.Time,
) *types.Order {
	e.nextOrderID++
	o := &types.Order{
		ID:              e.nextOrderID,
		Trader:          trader,
		CommitmentID:    commitmentID,
		Bucket:          bucket,
		Side:            side,
		Type:            typ,
		Status:          types.OrderStatusActive,
		Price:           price.Clone(),
		Size:            size,
		Remaining:       size,
		Escrow:          escrow.Clone(),
		RemainingEscrow: escrow.Clone(),
		ValidTo:         validTo,
		CreatedAt:       now,
	}
	e.orders[o.ID] = o
	metrics.OrderCounterInc(bucket.String(), true)
	if e.LogOrderSubmitDebug && e.log.IsDebug() {
		e.log.Debug("order submitted",
			logging.Uint64("order-id", o.ID),
			logging.String("trader", trader),
			logging.String("side", side.String()),
			logging.Uint64("size", size),
			logging.BigUint("escrow", escrow),
		)
	}
	return o
}

// retire moves a resting order's id into the historical list once it has
// left the book.
func (e *Engine) retire(o *types.Order) {
	e.history = append(e.history, o.ID)
}

// emitTrade records and publishes one trade between the aggressor and a
// resting order.
func (e *Engine) emitTrade(ctx context.Context, agg, rest *types.Order, commitmentID uint64, size uint64, price *num.Uint, now time.Time) {
	trade := &types.Trade{
		CommitmentID: commitmentID,
		Bucket:       agg.Bucket,
		Aggressor:    agg.Side,
		Price:        price.Clone(),
		Size:         size,
		Value:        num.UintZero().Mul(num.NewUint(size), price),
		Timestamp:    now,
	}
	if agg.Side == types.SideBuy {
		trade.Buyer, trade.Seller = agg.Trader, rest.Trader
		trade.BuyOrder, trade.SellOrder = agg.ID, rest.ID
	} else {
		trade.Buyer, trade.Seller = rest.Trader, agg.Trader
		trade.BuyOrder, trade.SellOrder = rest.ID, agg.ID
	}
	metrics.TradeCounterInc(agg.Bucket.String())
	e.broker.Send(events.NewTradeExecutedEvent(ctx, trade))
}

// Order looks up an order by id.
func (e *Engine) Order(id uint64) (*types.Order, error) {
	o, ok := e.orders[id]
	if !ok {
		return nil, types.ErrOrderNotFound
	}
	return o.Clone(), nil
}

// Promise looks up a promise to pay by id.
func (e *Engine) Promise(id uint64) (*types.PromiseToPay, error) {
	p, ok := e.promises[id]
	if !ok {
		return nil, types.ErrPromiseNotFound
	}
	return p.Clone(), nil
}

// RetiredOrders returns the ids swept into the historical list.
func (e *Engine) RetiredOrders() []uint64 {
	out := make([]uint64, len(e.history))
	copy(out, e.history)
	return out
}

// BestBid returns the best buy price and volume for a bucket.
func (e *Engine) BestBid(bucket types.BucketKey) (*num.Uint, uint64) {
	if b, ok := e.books[bucket]; ok {
		return b.buy.BestPrice()
	}
	return num.UintZero(), 0
}

// BestAsk returns the best sell price and volume for a bucket.
func (e *Engine) BestAsk(bucket types.BucketKey) (*num.Uint, uint64) {
	if b, ok := e.books[bucket]; ok {
		return b.sell.BestPrice()
	}
	return num.UintZero(), 0
}
