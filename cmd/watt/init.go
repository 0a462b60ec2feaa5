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

	"code.wattson.exchange/watt/config"
	"code.wattson.exchange/watt/logging"

	"github.com/jessevdk/go-flags"
)

type InitCmd struct {
	HomeFlag

	Force bool `short:"f" long:"force" description:"Overwrite an existing configuration at the specified path"`
}

var initCmd InitCmd

func (opts *InitCmd) Execute(_ []string) error {
	logger := logging.NewProdLogger()
	defer logger.AtExit()

	cfg := config.NewDefaultConfig()
	if err := config.Write(opts.Home, cfg, opts.Force); err != nil {
		return err
	}

	logger.Info("configuration generated successfully",
		logging.String("path", opts.Home),
	)
	return nil
}

func Init(_ context.Context, parser *flags.Parser) error {
	initCmd = InitCmd{}

	short := "Initializes a watt node"
	long := "Generate the minimal configuration required for a watt node to start"

	_, err := parser.AddCommand("init", short, long, &initCmd)
	return err
}
