// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Chromiumide_api is a stand-in for the build/android/chromiumide_api tool of a
Chromium checkout, for use in tests of code that shells out to it.

# Usage

	$ chromiumide_api build-info

Prints a fixed JSON document with Java source paths and class paths to
standard output. The document does not describe any real checkout.

Any other argument, or no argument at all, is rejected with

	chromiumide_api: invalid option -- '<argument>'

on standard error and exit status 1. There are no flags.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/chromiumide/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
