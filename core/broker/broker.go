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

package broker

import (
	"sync"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/logging"
)

// Subscriber receives events pushed through the broker.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/subscriber_mock.go -package mocks code.wattson.exchange/watt/core/broker Subscriber
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
}

type subscription struct {
	Subscriber
	id int
}

// Broker is a synchronous fan-out of engine events to subscribers. Engines
// emit in their single global execution order, subscribers observe the
// same order.
type Broker struct {
	log *logging.Logger

	mu     sync.Mutex
	nextID int
	// tSubs maps an event type to its subscriptions, events.All receives
	// everything.
	tSubs map[events.Type]map[int]*subscription
}

func New(log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Broker{
		log:   log,
		tSubs: map[events.Type]map[int]*subscription{},
	}
}

// Subscribe registers s for the event types it declares and returns the
// subscription key for Unsubscribe.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{Subscriber: s, id: b.nextID}
	types := s.Types()
	if len(types) == 0 {
		types = []events.Type{events.All}
	}
	for _, t := range types {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]*subscription{}
		}
		b.tSubs[t][sub.id] = sub
	}
	return sub.id
}

func (b *Broker) Unsubscribe(key int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, subs := range b.tSubs {
		delete(subs, key)
	}
}

// Send delivers a single event to all interested subscribers.
func (b *Broker) Send(event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.log.IsDebug() {
		b.log.Debug("event",
			logging.String("type", event.Type().String()),
			logging.Uint64("seq", event.Sequence()),
		)
	}
	for _, sub := range b.tSubs[event.Type()] {
		sub.Push(event)
	}
	for _, sub := range b.tSubs[events.All] {
		sub.Push(event)
	}
}

// SendBatch delivers events preserving their order.
func (b *Broker) SendBatch(evts []events.Event) {
	for _, e := range evts {
		b.Send(e)
	}
}
