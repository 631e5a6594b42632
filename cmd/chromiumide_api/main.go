// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	_ "embed"
	"fmt"

	"go.astrophena.name/chromiumide/internal/cli"
)

// buildInfoCmd is the only subcommand this stub knows about.
const buildInfoCmd = "build-info"

// buildInfo is printed as is. It must not go through a JSON encoder: callers
// compare it byte for byte. The layout is the one the shell version of
// this tool echoed.
//
//go:embed buildinfo.json
var buildInfo []byte

func main() { cli.Main(cli.AppFunc(run)) }

func run(ctx context.Context, env *cli.Env) error {
	var cmd string
	if len(env.Args) > 0 {
		cmd = env.Args[0]
	}

	if cmd != buildInfoCmd {
		return &UnsupportedCommandError{Program: env.Name, Command: cmd}
	}

	_, err := env.Stdout.Write(buildInfo)
	return err
}

// UnsupportedCommandError is returned when the subcommand is anything other
// than build-info, including a missing one.
type UnsupportedCommandError struct {
	Program string // as invoked
	Command string // empty if none was given
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("%s: invalid option -- '%s'", e.Program, e.Command)
}

func (e *UnsupportedCommandError) Unwrap() error { return cli.ErrInvalidArgs }
