package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/ctrack/internal/client"
	"github.com/dm/ctrack/internal/config"
	"github.com/dm/ctrack/internal/logging"
	"github.com/dm/ctrack/internal/tui"
)

// options is the resolved runtime configuration: flags over environment over defaults.
type options struct {
	apiURI   string
	interval time.Duration
	lastDays int
	insecure bool
	logFile  string
	logLevel string
}

// parseAPIURI validates the statistics API base URI and returns it without
// credentials, query, fragment or trailing slash.
func parseAPIURI(apiURI string) (string, error) {
	u, err := url.Parse(apiURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %q: %w", apiURI, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid URI %q: host is required", apiURI)
	}

	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return "", fmt.Errorf("invalid URI %q: port %q out of range", apiURI, p)
		}
	}

	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""

	return u.String(), nil
}

// parseArgs parses command-line flags on top of cfg. Flag defaults are the
// values cfg resolved from the environment, so an explicit flag always wins.
func parseArgs(cfg *config.AppConfig, args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("ctrack", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.DurationVar(&opts.interval, "interval", cfg.Interval, "polling interval (e.g. 30s, 2m)")
	fs.IntVar(&opts.lastDays, "lastdays", cfg.LastDays, "days of history to chart (0 = all)")
	fs.BoolVar(&opts.insecure, "insecure", false, "skip TLS certificate verification")
	fs.StringVar(&opts.logFile, "log-file", cfg.LogFile, "append logs to this file (default: no logging)")
	fs.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: ctrack [--interval 60s] [--lastdays 120] [--insecure] [--log-file path] [--log-level info] [api-uri]\n\n")
		fmt.Fprintf(stderr, "examples:\n")
		fmt.Fprintf(stderr, "  ctrack\n")
		fmt.Fprintf(stderr, "  ctrack --interval 30s --lastdays 30\n")
		fmt.Fprintf(stderr, "  ctrack --log-file ctrack.log http://localhost:3000\n\n")
		fmt.Fprintf(stderr, "environment (also read from .env):\n")
		fmt.Fprintf(stderr, "  CTRACK_API_URI CTRACK_INTERVAL CTRACK_LAST_DAYS CTRACK_LOG_FILE CTRACK_LOG_LEVEL\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.interval <= 0 {
		return options{}, errors.New("--interval must be positive")
	}
	if opts.lastDays < 0 {
		return options{}, errors.New("--lastdays must not be negative")
	}

	rest := fs.Args()
	// flag parsing stops at the first positional argument, so trailing
	// --flags would otherwise be silently ignored.
	if len(rest) > 1 {
		extra := rest[1]
		if len(extra) > 1 && extra[0] == '-' {
			return options{}, fmt.Errorf("flag %q must be placed before the URI", extra)
		}
		return options{}, fmt.Errorf("unexpected argument %q", extra)
	}

	raw := cfg.APIURI
	if len(rest) == 1 {
		raw = rest[0]
	}
	base, err := parseAPIURI(raw)
	if err != nil {
		return options{}, err
	}
	opts.apiURI = base

	return opts, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseArgs(cfg, os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	log, closer, err := logging.New(opts.logFile, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:            opts.apiURI,
		InsecureSkipVerify: opts.insecure,
		RequestTimeout:     10 * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := c.Ping(context.Background()); err != nil {
		log.Error().Err(err).Str("api", opts.apiURI).Msg("api unreachable")
		fmt.Fprintf(os.Stderr, "error: failed to reach %s: %v\n", opts.apiURI, err)
		closer.Close()
		os.Exit(1)
	}

	log.Info().
		Str("api", opts.apiURI).
		Dur("interval", opts.interval).
		Int("lastdays", opts.lastDays).
		Msg("starting")

	p := tea.NewProgram(tui.NewApp(c, opts.interval, opts.lastDays, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui exited with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}
