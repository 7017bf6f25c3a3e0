package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdnorm/internal/config"
)

// testEnv returns an Environment reading stdin from the given text and
// capturing stdout and stderr.
func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    time.Now,
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Config: config.DefaultConfig(),
	}
	return env, &stdout, &stderr
}

// runCLI runs args through run and returns the exit code and outputs.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	env, stdout, stderr := testEnv(stdin)
	code := run(context.Background(), args, env)
	return code, stdout.String(), stderr.String()
}
