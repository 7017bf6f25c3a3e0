package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
)

func TestParseNormalizeFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, rest, err := parseNormalizeFlags([]string{"-o", "out", "-w", "3", "--streaming", "-q", "--lexicon", "mine", "a.md", "b.md"}, &buf)
	if err != nil {
		t.Fatalf("parseNormalizeFlags() error = %v", err)
	}
	if f.output != "out" || f.workers != 3 || !f.streaming || !f.common.quiet || f.lexicon.name != "mine" {
		t.Errorf("flags = %+v", *f)
	}
	if strings.Join(rest, ",") != "a.md,b.md" {
		t.Errorf("rest = %v, want [a.md b.md]", rest)
	}
}

func TestParseStreamFlags_DelaySentinel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, _, err := parseStreamFlags(nil, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if f.delay != delayUnset {
		t.Errorf("delay = %v, want unset sentinel", f.delay)
	}

	f, _, err = parseStreamFlags([]string{"--delay", "0s", "--chunk", "4", "--frames"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if f.delay != 0 || f.chunk != 4 || !f.frames {
		t.Errorf("flags = %+v", *f)
	}

	f, _, err = parseStreamFlags([]string{"--delay", "25ms"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if f.delay != 25*time.Millisecond {
		t.Errorf("delay = %v, want 25ms", f.delay)
	}
}

func TestParseRenderFlags_Shorthands(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, _, err := parseRenderFlags([]string{"-f", "term", "-o", "x.txt", "-c", "work", "-v", "--width", "60"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if f.format != "term" || f.output != "x.txt" || f.common.config != "work" || !f.common.verbose || f.width != 60 {
		t.Errorf("flags = %+v", *f)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	parsers := map[string]func([]string, *bytes.Buffer) error{
		"normalize": func(a []string, w *bytes.Buffer) error { _, _, err := parseNormalizeFlags(a, w); return err },
		"check":     func(a []string, w *bytes.Buffer) error { _, _, err := parseCheckFlags(a, w); return err },
		"stream":    func(a []string, w *bytes.Buffer) error { _, _, err := parseStreamFlags(a, w); return err },
		"render":    func(a []string, w *bytes.Buffer) error { _, _, err := parseRenderFlags(a, w); return err },
		"doctor":    func(a []string, w *bytes.Buffer) error { _, _, err := parseDoctorFlags(a, w); return err },
	}

	for name, parse := range parsers {
		t.Run(name+"/unknown flag", func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := parse([]string{"--no-such-flag"}, &buf)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("error = %v, want ErrUsage", err)
			}
			if !strings.Contains(err.Error(), "mdnorm help "+name) {
				t.Errorf("error %q should point to the command help", err)
			}
		})

		t.Run(name+"/help", func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := parse([]string{"-h"}, &buf)
			if !errors.Is(err, flag.ErrHelp) {
				t.Fatalf("error = %v, want ErrHelp", err)
			}
			if !strings.Contains(buf.String(), "Usage: mdnorm "+name) {
				t.Errorf("usage = %q", buf.String())
			}
		})
	}
}

func TestParseFlags_BadValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, _, err := parseNormalizeFlags([]string{"--workers", "many"}, &buf)
	if !errors.Is(err, ErrUsage) {
		t.Errorf("error = %v, want ErrUsage", err)
	}
	_, _, err = parseStreamFlags([]string{"--delay", "soon"}, &buf)
	if !errors.Is(err, ErrUsage) {
		t.Errorf("error = %v, want ErrUsage", err)
	}
}
