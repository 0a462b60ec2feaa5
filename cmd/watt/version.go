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
	"fmt"
	"runtime/debug"

	"github.com/jessevdk/go-flags"
)

var (
	// CLIVersion specifies the version used to build the application.
	CLIVersion = "v0.1.0+dev"

	// CLIVersionHash is the git commit used to build the application,
	// filled in from the build info at start-up.
	CLIVersionHash = ""
)

type VersionCmd struct{}

var versionCmd VersionCmd

func (opts *VersionCmd) Execute(_ []string) error {
	fmt.Printf("watt %s (%s)\n", CLIVersion, versionHash())
	return nil
}

func versionHash() string {
	if CLIVersionHash != "" {
		return CLIVersionHash
	}
	hash, modified := "unknown", false
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs.revision":
				hash = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}
	if modified {
		hash += "-modified"
	}
	return hash
}

func Version(_ context.Context, parser *flags.Parser) error {
	versionCmd = VersionCmd{}

	short := "Show version info"
	long := "Show the version and build hash of the watt binary"

	_, err := parser.AddCommand("version", short, long, &versionCmd)
	return err
}
