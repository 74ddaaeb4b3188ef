package cmd

import (
	"context"
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/louisbranch/encounterseed/internal/platform/config"
)

type testConfig struct {
	DBPath string `env:"CMD_TEST_DB_PATH" envDefault:"seeds.db"`
	Locale string `env:"CMD_TEST_LOCALE" envDefault:"en"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("ENCOUNTERSEED_CMD_TEST_DB_PATH", "env.db")
	t.Setenv("ENCOUNTERSEED_CMD_TEST_LOCALE", "fr")

	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "database path")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale")

	if err := ParseArgs(fs, []string{"-db", "flag.db"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("db path = %q, want flag.db", cfg.DBPath)
	}
	if cfg.Locale != "fr" {
		t.Fatalf("locale = %q, want fr", cfg.Locale)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	if cfg.DBPath != "seeds.db" || cfg.Locale != "en" {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestParseConfigRejectsNil(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil config error")
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("ENCOUNTERSEED_CMD_TEST_LOCALE", "de")

	cfg := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", "", "database path")
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-db", "other.db"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.DBPath != "other.db" {
		t.Fatalf("db path = %q, want other.db", cfg.DBPath)
	}
	if cfg.Locale != "de" {
		t.Fatalf("locale = %q, want de", cfg.Locale)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestParseArgsMarksUsageErrors(t *testing.T) {
	fs := flag.NewFlagSet("usage", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	err := ParseArgs(fs, []string{"-missing"})
	if !errors.Is(err, config.ErrUsage) {
		t.Fatalf("parse error = %v, want %v", err, config.ErrUsage)
	}

	help := flag.NewFlagSet("help", flag.ContinueOnError)
	help.SetOutput(io.Discard)
	if err := ParseArgs(help, []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("help error = %v, want %v", err, flag.ErrHelp)
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceSeedTool, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryRunsAndReturnsError(t *testing.T) {
	t.Setenv("ENCOUNTERSEED_OTEL_ENDPOINT", "")

	boom := errors.New("boom")
	called := false
	err := RunWithTelemetryAndOptions(context.Background(), ServiceSeedTool, RunOptions{ShutdownTimeout: time.Second}, func(context.Context) error {
		called = true
		return boom
	})
	if !called {
		t.Fatal("expected run to be called")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("run error = %v, want %v", err, boom)
	}
}

func TestRunWithTelemetryRejectsBadOTelEnv(t *testing.T) {
	t.Setenv("ENCOUNTERSEED_OTEL_ENABLED", "sometimes")
	err := RunWithTelemetry(context.Background(), ServiceSeedTool, func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected env parse error")
	}
}
