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
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.wattson.exchange/watt/config"
	"code.wattson.exchange/watt/core/broker"
	"code.wattson.exchange/watt/core/fee"
	"code.wattson.exchange/watt/core/ledger"
	"code.wattson.exchange/watt/core/matching"
	"code.wattson.exchange/watt/core/metrics"
	"code.wattson.exchange/watt/core/oracle"
	"code.wattson.exchange/watt/core/registry"
	"code.wattson.exchange/watt/logging"

	"github.com/jessevdk/go-flags"
)

type NodeCmd struct {
	HomeFlag
}

var nodeCmd NodeCmd

// wallClock is the production time service, engines read the host clock.
type wallClock struct{}

func (wallClock) GetTimeNow() time.Time { return time.Now() }

// upkeeper is implemented by every engine with deferred maintenance
// work, the node polls them on a timer the way an external keeper would.
type upkeeper interface {
	CheckUpkeep() (bool, []byte)
	PerformUpkeep(ctx context.Context, caller string, payload []byte) error
}

func (opts *NodeCmd) Execute(_ []string) error {
	cfg, err := config.Read(opts.Home)
	if err != nil {
		return err
	}

	log := logging.NewProdLogger()
	log.SetLevel(cfg.Level.Get())
	defer log.AtExit()

	bkr := broker.New(log, cfg.Broker)
	bkr.Subscribe(&eventLogger{log: log.Named("events")})
	roles := ledger.NewRoles(cfg.Ledger)
	stable := ledger.NewStableLedger(log, cfg.Ledger)
	assets := ledger.NewAssetLedger(log, cfg.Ledger)
	clock := wallClock{}

	oracleEngine := oracle.New(log, cfg.Oracle, clock, roles, bkr)
	feeEngine := fee.New(log, cfg.Fee, roles, bkr)
	registryEngine := registry.New(log, cfg.Registry, oracleEngine, stable, assets, roles, clock, bkr)
	matchingEngine := matching.New(log, cfg.Matching, registryEngine, stable, feeEngine, roles, clock, bkr)

	metrics.Start(cfg.Metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.UpkeepParty != "" {
		go runUpkeep(ctx, log, cfg.UpkeepInterval.Get(), cfg.UpkeepParty,
			registryEngine, matchingEngine)
	} else {
		log.Warn("no upkeep party configured, relying on external keepers")
	}

	log.Info("watt node started",
		logging.String("home", opts.Home),
		logging.Bool("metrics", cfg.Metrics.Enabled),
	)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Info("shutting down", logging.String("signal", sig.String()))
	return nil
}

// runUpkeep drains every flagged item each round, one perform per check
// so the payload is always fresh.
func runUpkeep(ctx context.Context, log *logging.Logger, interval time.Duration, party string, engines ...upkeeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		for _, e := range engines {
			for {
				needed, payload := e.CheckUpkeep()
				if !needed {
					break
				}
				if err := e.PerformUpkeep(ctx, party, payload); err != nil {
					log.Warn("upkeep failed", logging.Error(err))
					break
				}
			}
		}
	}
}

func Node(_ context.Context, parser *flags.Parser) error {
	nodeCmd = NodeCmd{}

	short := "Runs a watt node"
	long := "Runs a watt venue node with the commitment registry and order matching engines"

	_, err := parser.AddCommand("node", short, long, &nodeCmd)
	return err
}
