// Package seedtool implements the seedtool command: encoding, decoding and
// auditing encounter seeds from the shell.
package seedtool

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/louisbranch/encounterseed/internal/encounter"
	"github.com/louisbranch/encounterseed/internal/encounter/inspect"
	"github.com/louisbranch/encounterseed/internal/encounter/seed"
	"github.com/louisbranch/encounterseed/internal/encounter/storage"
	"github.com/louisbranch/encounterseed/internal/encounter/storage/sqlite"
	"github.com/louisbranch/encounterseed/internal/platform/cmd"
	"github.com/louisbranch/encounterseed/internal/platform/config"
	"github.com/louisbranch/encounterseed/internal/random"
)

const usage = `usage: seedtool [-db PATH] [-locale TAG] [-strict] COMMAND [ARGS]

commands:
  encode  [-event ID] [-type hp|dipl] [-min N] [-max N] [-win P] [-record]
  decode  SEED
  inspect SEED
  roll    [-sides N] [-count N] SEED
  history [-limit N] [-before EVENT_ID]

SEED is hex (optionally 0x-prefixed) or decimal with a d: prefix.`

// Config holds settings shared by every subcommand.
type Config struct {
	DBPath      string `env:"DB_PATH"`
	Locale      string `env:"LOCALE" envDefault:"en"`
	StrictStats bool   `env:"STRICT_STATS"`
}

// ParseConfig reads env defaults, then global flags, and returns the
// remaining arguments starting at the subcommand.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, nil, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "seed ledger path (env ENCOUNTERSEED_DB_PATH)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "report locale (env ENCOUNTERSEED_LOCALE)")
	fs.BoolVar(&cfg.StrictStats, "strict", cfg.StrictStats, "reject stats that do not fit the seed (env ENCOUNTERSEED_STRICT_STATS)")
	fs.Usage = func() { fmt.Fprintln(fs.Output(), usage) }
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// Tool runs subcommands against one configuration.
type Tool struct {
	cfg    Config
	out    io.Writer
	logger *log.Logger
	now    func() time.Time
	// entropy fills the low bits of synthesized event IDs.
	entropy func() (uint64, error)
	open    func(path string) (ledger, error)
}

type ledger interface {
	storage.SeedStore
	Close() error
}

// New creates a Tool writing results to out and warnings to logOut.
func New(cfg Config, out, logOut io.Writer) *Tool {
	if logOut == nil {
		logOut = os.Stderr
	}
	return &Tool{
		cfg:     cfg,
		out:     out,
		logger:  log.New(logOut, "seedtool: ", 0),
		now:     time.Now,
		entropy: random.NewSeed,
		open: func(path string) (ledger, error) {
			return sqlite.Open(path)
		},
	}
}

// Run dispatches args[0] to its subcommand.
func (t *Tool) Run(ctx context.Context, args []string) error {
	if t.out == nil {
		return errors.New("output is required")
	}
	if len(args) == 0 {
		return usageErrorf("command is required\n%s", usage)
	}
	name, rest := args[0], args[1:]
	switch name {
	case "encode":
		return t.encode(ctx, rest)
	case "decode":
		return t.decode(rest)
	case "inspect":
		return t.inspect(ctx, rest)
	case "roll":
		return t.roll(rest)
	case "history":
		return t.history(ctx, rest)
	case "help":
		_, err := fmt.Fprintln(t.out, usage)
		return err
	default:
		return usageErrorf("unknown command %q\n%s", name, usage)
	}
}

func (t *Tool) encode(ctx context.Context, args []string) error {
	fs := newFlagSet("encode")
	eventID := fs.Uint64("event", 0, "event ID; omit to synthesize one from the current time")
	statType := fs.String("type", string(seed.StatTypeHP), "stat type: hp or dipl")
	minStat := fs.Int("min", 0, "minimum stat")
	maxStat := fs.Int("max", 0, "maximum stat")
	win := fs.Float64("win", 0, "win percent as a fraction, 0.73 for 73%")
	record := fs.Bool("record", false, "record the seed in the ledger")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErrorf("encode takes no arguments, got %q", fs.Args())
	}
	typ, err := seed.ParseStatType(*statType)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrUsage, err)
	}

	id := *eventID
	if !flagSet(fs, "event") {
		low, err := t.entropy()
		if err != nil {
			return fmt.Errorf("synthesize event id: %w", err)
		}
		id = seed.SnowflakeFromTime(t.now(), low)
	}

	var store storage.SeedStore
	if *record {
		db, err := t.openLedger()
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}

	issuer := encounter.NewIssuer(store,
		encounter.WithClock(t.now),
		encounter.WithLogger(t.logger),
		encounter.WithStrictStats(t.cfg.StrictStats),
	)
	enc, err := issuer.Issue(ctx, id, seed.StatRange{Type: typ, Min: *minStat, Max: *maxStat, WinPercent: *win})
	if err != nil {
		return err
	}
	return writeLines(t.out,
		"Seed: "+enc.Seed.Hex(),
		"Decimal: "+strconv.FormatUint(enc.Value, 10),
		"Event ID: "+strconv.FormatUint(id, 10),
		"Stats: "+seed.Decode(enc.Value).Stats.String(),
	)
}

func (t *Tool) decode(args []string) error {
	value, err := seedArg("decode", args)
	if err != nil {
		return err
	}
	decoded := seed.Decode(value)
	return writeLines(t.out,
		"Seed: "+seed.Hex(value),
		"Timestamp: "+strconv.FormatUint(decoded.Timestamp, 10),
		"Event ID prefix: "+strconv.FormatUint(decoded.EventIDPrefix(), 10),
		"Stats: "+decoded.Stats.String(),
	)
}

func (t *Tool) inspect(ctx context.Context, args []string) error {
	value, err := seedArg("inspect", args)
	if err != nil {
		return err
	}
	tag, err := language.Parse(t.cfg.Locale)
	if err != nil {
		return fmt.Errorf("%w: locale %q: %v", config.ErrUsage, t.cfg.Locale, err)
	}

	var store storage.SeedStore
	if strings.TrimSpace(t.cfg.DBPath) != "" {
		db, err := t.openLedger()
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}

	report, err := inspect.New(store).Inspect(ctx, value)
	if err != nil {
		return err
	}
	return inspect.Render(t.out, report, tag)
}

func (t *Tool) roll(args []string) error {
	fs := newFlagSet("roll")
	sides := fs.Int("sides", 20, "die size")
	count := fs.Int("count", 1, "number of rolls")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return err
	}
	if *sides < 1 || *count < 1 {
		return usageErrorf("sides and count must be positive, got %d and %d", *sides, *count)
	}
	value, err := seedArg("roll", fs.Args())
	if err != nil {
		return err
	}

	rng := encounter.Resume(value).RNG
	rolls := make([]string, *count)
	for i := range rolls {
		rolls[i] = strconv.Itoa(rng.IntRange(1, *sides))
	}
	return writeLines(t.out, strings.Join(rolls, " "))
}

func (t *Tool) history(ctx context.Context, args []string) error {
	fs := newFlagSet("history")
	limit := fs.Int("limit", 20, "records per page")
	before := fs.Uint64("before", 0, "only list event IDs below this one")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErrorf("history takes no arguments, got %q", fs.Args())
	}

	db, err := t.openLedger()
	if err != nil {
		return err
	}
	defer db.Close()

	page, err := db.ListSeeds(ctx, *limit, *before)
	if err != nil {
		return fmt.Errorf("list seeds: %w", err)
	}
	lines := make([]string, 0, len(page.Records)+1)
	for _, record := range page.Records {
		lines = append(lines, fmt.Sprintf("%d %s %s %s",
			record.EventID,
			seed.Hex(record.Seed),
			record.CreatedAt.UTC().Format(time.RFC3339),
			record.Stats,
		))
	}
	if page.NextBefore != 0 {
		lines = append(lines, "next: -before "+strconv.FormatUint(page.NextBefore, 10))
	}
	return writeLines(t.out, lines...)
}

func (t *Tool) openLedger() (ledger, error) {
	path := strings.TrimSpace(t.cfg.DBPath)
	if path == "" {
		return nil, usageErrorf("seed ledger path is required (-db or ENCOUNTERSEED_DB_PATH)")
	}
	db, err := t.open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed ledger: %w", err)
	}
	return db, nil
}

func seedArg(command string, args []string) (uint64, error) {
	if len(args) != 1 {
		return 0, usageErrorf("%s takes exactly one seed, got %d arguments", command, len(args))
	}
	value, err := seed.Parse(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", config.ErrUsage, err)
	}
	return value, nil
}

// flagSet reports whether name was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", config.ErrUsage, fmt.Sprintf(format, args...))
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
