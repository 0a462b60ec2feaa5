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

package main

import (
	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/logging"
)

// eventLogger is a wildcard broker subscriber writing every venue event
// to the node log, the only read surface the node itself exposes.
type eventLogger struct {
	log *logging.Logger
}

func (s *eventLogger) Push(evts ...events.Event) {
	for _, e := range evts {
		s.log.Info("event",
			logging.String("type", e.Type().String()),
			logging.Uint64("seq", e.Sequence()),
		)
	}
}

// Types returns nil so the broker delivers everything.
func (s *eventLogger) Types() []events.Type { return nil }
