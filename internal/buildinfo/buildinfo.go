// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package buildinfo queries the chromiumide_api tool of a Chromium checkout
// for the Java source paths and class paths of the build.
package buildinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// Info is the output of "chromiumide_api build-info".
type Info struct {
	SourcePaths []string `json:"sourcePaths"`
	ClassPaths  []string `json:"classPaths"`
}

// ToolPath returns the location of the chromiumide_api tool in the Chromium
// checkout rooted at root.
func ToolPath(root string) string {
	return filepath.Join(root, "build", "android", "chromiumide_api")
}

// ExitError is returned by [Query] when the tool exits with a non-zero status.
type ExitError struct {
	Tool   string
	Code   int
	Stderr string // with surrounding whitespace trimmed
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("buildinfo: %s exited with status %d", e.Tool, e.Code)
	}
	return fmt.Sprintf("buildinfo: %s exited with status %d: %s", e.Tool, e.Code, e.Stderr)
}

// Query runs "tool build-info" and parses its output.
func Query(ctx context.Context, tool string) (*Info, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, "build-info")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return nil, &ExitError{
				Tool:   tool,
				Code:   exitErr.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return nil, fmt.Errorf("buildinfo: running %s: %w", tool, err)
	}

	info, err := Parse(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("buildinfo: %s: %w", tool, err)
	}
	return info, nil
}

// Parse decodes a single build-info document. Unknown fields and trailing
// data are errors.
func Parse(b []byte) (*Info, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	info := new(Info)
	if err := dec.Decode(info); err != nil {
		return nil, fmt.Errorf("decoding build info: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding build info: unexpected data after document")
	}
	return info, nil
}
