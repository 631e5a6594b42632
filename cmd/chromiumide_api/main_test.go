// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"go.astrophena.name/chromiumide/internal/buildinfo"
	"go.astrophena.name/chromiumide/internal/cli"
	"go.astrophena.name/chromiumide/internal/cli/clitest"
	"go.astrophena.name/chromiumide/internal/testutil"
)

var update = flag.Bool("update", false, "update golden files in testdata")

const progName = "chromiumide_api"

func TestRun(t *testing.T) {
	clitest.Run(t, func(t *testing.T) cli.App { return cli.AppFunc(run) }, map[string]clitest.Case[cli.App]{
		"build-info": {
			Name:       progName,
			Args:       []string{"build-info"},
			WantStdout: string(buildInfo),
		},
		"unknown command": {
			Name:        progName,
			Args:        []string{"frobnicate"},
			WantErr:     cli.ErrInvalidArgs,
			WantErrType: &UnsupportedCommandError{},
		},
		"no arguments": {
			Name:    progName,
			WantErr: cli.ErrInvalidArgs,
		},
		"flags are not parsed": {
			Name:    progName,
			Args:    []string{"-h"},
			WantErr: cli.ErrInvalidArgs,
		},
		"default name": {
			Args:        []string{"frobnicate"},
			WantErrType: &UnsupportedCommandError{},
		},
	})
}

func TestRunErrorMessage(t *testing.T) {
	cases := map[string]struct {
		args []string
		want string
	}{
		"unknown command": {
			args: []string{"frobnicate"},
			want: "chromiumide_api: invalid option -- 'frobnicate'",
		},
		"no arguments": {
			args: nil,
			want: "chromiumide_api: invalid option -- ''",
		},
		"only first argument matters": {
			args: []string{"frobnicate", "build-info"},
			want: "chromiumide_api: invalid option -- 'frobnicate'",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout bytes.Buffer
			err := run(context.Background(), &cli.Env{
				Name:   progName,
				Args:   tc.args,
				Stdout: &stdout,
			})
			var uerr *UnsupportedCommandError
			if !errors.As(err, &uerr) {
				t.Fatalf("want *UnsupportedCommandError, got %T (%v)", err, err)
			}
			testutil.AssertEqual(t, err.Error(), tc.want)
			if stdout.Len() != 0 {
				t.Errorf("stdout must be empty, got %q", stdout.String())
			}
		})
	}
}

func TestGolden(t *testing.T) {
	testutil.RunGolden(t, "testdata/*.args", func(t *testing.T, match string) []byte {
		b, err := os.ReadFile(match)
		if err != nil {
			t.Fatal(err)
		}
		return invoke(strings.Fields(string(b)))
	}, *update)
}

func TestIdempotent(t *testing.T) {
	first := invoke([]string{"build-info"})
	for range 10 {
		testutil.AssertEqual(t, string(invoke([]string{"build-info"})), string(first))
	}
}

func TestBuildInfoIsValidJSON(t *testing.T) {
	got := testutil.UnmarshalJSON[buildinfo.Info](t, buildInfo)
	testutil.AssertEqual(t, got, buildinfo.Info{
		SourcePaths: []string{"chrome/java", "content/java"},
		ClassPaths:  []string{"third_party/android_sdk/android_sdk_empty.jar"},
	})
}

// invoke runs the app like cli.Main does and renders everything it printed
// along with the exit status.
func invoke(args []string) []byte {
	var stdout, stderr bytes.Buffer
	env := &cli.Env{
		Name:   progName,
		Args:   args,
		Stdout: &stdout,
		Stderr: &stderr,
	}
	code := 0
	if err := cli.Run(context.Background(), cli.AppFunc(run), env); err != nil {
		env.Logf("%v", err)
		code = 1
	}

	var out bytes.Buffer
	out.WriteString("-- stdout --\n")
	out.Write(stdout.Bytes())
	out.WriteString("-- stderr --\n")
	out.Write(stderr.Bytes())
	out.WriteString("-- exit --\n")
	out.WriteString(strconv.Itoa(code) + "\n")
	return out.Bytes()
}

func TestBinary(t *testing.T) {
	tool := buildTool(t)

	t.Run("build-info", func(t *testing.T) {
		stdout, stderr, code := execTool(t, tool, "build-info")
		testutil.AssertEqual(t, stdout, string(buildInfo))
		testutil.AssertEqual(t, stderr, "")
		testutil.AssertEqual(t, code, 0)
	})

	t.Run("unknown command", func(t *testing.T) {
		stdout, stderr, code := execTool(t, tool, "frobnicate")
		testutil.AssertEqual(t, stdout, "")
		testutil.AssertEqual(t, stderr, tool+": invalid option -- 'frobnicate'\n")
		testutil.AssertEqual(t, code, 1)
	})

	t.Run("no arguments", func(t *testing.T) {
		stdout, stderr, code := execTool(t, tool)
		testutil.AssertEqual(t, stdout, "")
		testutil.AssertEqual(t, stderr, tool+": invalid option -- ''\n")
		testutil.AssertEqual(t, code, 1)
	})

	t.Run("query", func(t *testing.T) {
		info, err := buildinfo.Query(context.Background(), tool)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, info, &buildinfo.Info{
			SourcePaths: []string{"chrome/java", "content/java"},
			ClassPaths:  []string{"third_party/android_sdk/android_sdk_empty.jar"},
		})
	})
}

func buildTool(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping build in short mode")
	}
	gobin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command is not available")
	}

	tool := filepath.Join(t.TempDir(), progName)
	if runtime.GOOS == "windows" {
		tool += ".exe"
	}
	out, err := exec.Command(gobin, "build", "-o", tool, ".").CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, out)
	}
	return tool
}

func execTool(t *testing.T, tool string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := exec.Command(tool, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		t.Fatal(err)
	}
	return outBuf.String(), errBuf.String(), cmd.ProcessState.ExitCode()
}

func TestDocComment(t *testing.T) {
	for _, want := range []string{"$ chromiumide_api build-info", "invalid option -- '<argument>'"} {
		if !bytes.Contains(doc, []byte(want)) {
			t.Errorf("doc.go must mention %q", want)
		}
	}
}
