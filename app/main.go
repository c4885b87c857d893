package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Run     struct{} `command:"run" description:"run the authentication scenarios against the application"`
	History struct {
		ID    string `long:"id" description:"show a single run with its scenario results"`
		Stats bool   `long:"stats" description:"show per-scenario counts over recent runs"`
		Limit int    `long:"limit" default:"20" description:"number of runs to show"`
	} `command:"history" description:"show recent runs from the ledger"`
	Server struct {
		Listen    string        `long:"listen" env:"LISTEN" default:"127.0.0.1:8080" description:"listen address"`
		Retention time.Duration `long:"retention" env:"RETENTION" default:"720h" description:"remove runs older than this, 0 keeps all"`
		StatsRuns int           `long:"stats-runs" env:"STATS_RUNS" default:"20" description:"runs the scenario stats are counted over"`
		RPS       float64       `long:"rps" env:"RPS" default:"20" description:"max requests per second"`
	} `command:"server" description:"serve the runs API, runs are started with POST /api/v1/runs"`
	Schema struct{} `command:"schema" description:"print the JSON schema of the suite file"`

	App struct {
		URL  string        `long:"url" env:"URL" default:"http://localhost:3000" description:"application URL"`
		API  string        `long:"api" env:"API" default:"http://localhost:3001" description:"application API URL"`
		Cmd  string        `long:"cmd" env:"CMD" description:"command starting the application, stopped on exit"`
		Wait time.Duration `long:"wait" env:"WAIT" default:"60s" description:"how long to wait for the application to respond"`
	} `group:"app" namespace:"app" env-namespace:"APP"`

	Browser struct {
		Name    string        `long:"name" env:"NAME" default:"chromium" choice:"chromium" choice:"firefox" choice:"webkit" description:"browser engine"`
		Headed  bool          `long:"headed" env:"HEADED" description:"show browser window"`
		SlowMo  time.Duration `long:"slowmo" env:"SLOWMO" description:"delay between browser operations"`
		Install bool          `long:"install" env:"INSTALL" description:"install playwright driver and browser"`
		Width   int           `long:"width" env:"WIDTH" default:"1280" description:"viewport width"`
		Height  int           `long:"height" env:"HEIGHT" default:"1000" description:"viewport height"`
	} `group:"browser" namespace:"browser" env-namespace:"BROWSER"`

	Timeout struct {
		Command  time.Duration `long:"command" env:"COMMAND" default:"10s" description:"bound of every UI command"`
		Request  time.Duration `long:"request" env:"REQUEST" default:"10s" description:"bound of network waits"`
		Scenario time.Duration `long:"scenario" env:"SCENARIO" default:"2m" description:"bound of a whole scenario"`
	} `group:"timeout" namespace:"timeout" env-namespace:"TIMEOUT"`

	Suite     string `long:"suite" env:"SUITE" description:"suite file (yaml, json or toml), embedded suite if empty"`
	DB        string `long:"db" env:"DB" default:"authcheck.db" description:"run ledger, sqlite file or postgres URL, empty disables"`
	Snapshots string `long:"snapshots" env:"SNAPSHOTS" description:"directory for screenshots, empty disables"`
	Match     string `long:"match" env:"MATCH" description:"run only scenarios with names matching the regexp"`
	FailFast  bool   `long:"fail-fast" env:"FAIL_FAST" description:"skip remaining scenarios after the first failure"`
	Dbg       bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

// errFailed is returned by the run command when any scenario failed.
var errFailed = errors.New("some scenarios failed")

func main() {
	fmt.Printf("authcheck %s\n", revision)

	opts, cmd, err := parseOptions(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	setupLog(opts.Dbg)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { // catch signal
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := execute(ctx, cmd, opts); err != nil {
		cancel()
		if !errors.Is(err, errFailed) {
			log.Printf("[ERROR] %v", err)
		}
		os.Exit(1)
	}
	cancel()
}

// parseOptions parses command line and env into options and returns the active command name.
func parseOptions(args []string) (options, string, error) {
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.ParseArgs(args); err != nil {
		return options{}, "", err
	}
	if p.Active == nil {
		return options{}, "", errors.New("command is required")
	}
	return opts, p.Active.Name, nil
}

func execute(ctx context.Context, cmd string, opts options) error {
	switch cmd {
	case "run":
		return runScenarios(ctx, opts)
	case "history":
		return showHistory(ctx, opts, os.Stdout)
	case "server":
		return runServer(ctx, opts)
	case "schema":
		return printSchema(os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func setupLog(dbg bool, secrets ...string) {
	logOpts := []log.Option{log.Msec, log.LevelBraces}
	if dbg {
		logOpts = []log.Option{log.Debug, log.CallerFile, log.CallerFunc, log.Msec, log.LevelBraces}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, log.Secret(secrets...))
	}
	log.SetupStdLogger(logOpts...)
	log.Setup(logOpts...)
}
