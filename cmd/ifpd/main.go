// cmd/ifpd/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// ifpd validates instrument flight procedures against the design
// criteria and analyzes their terrain clearance.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmp/ifpd/analysis"
	"github.com/mmp/ifpd/config"
	"github.com/mmp/ifpd/log"
	"github.com/mmp/ifpd/procedure"
	"github.com/mmp/ifpd/terrain"
	"github.com/mmp/ifpd/util"
)

var (
	configFile = flag.String("config", "", "YAML configuration file (default $IFPD_CONFIG or ifpd.yaml)")
	logLevel   = flag.String("loglevel", "", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	offline    = flag.Bool("offline", false, "don't query the elevation service; use synthetic terrain")
	samples    = flag.Int("samples", 0, "analysis points per procedure leg")
	strict     = flag.Bool("strict", false, "exit with status 2 if any procedure has critical findings")
	dump       = flag.Bool("dump", false, "dump results to stderr in a readable debugging format")
	alt1       = flag.String("alt1", "", "segment: altitude constraint at the first waypoint (feet)")
	alt2       = flag.String("alt2", "", "segment: altitude constraint at the second waypoint (feet)")
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: ifpd [flags] <command> <args>

commands:
  validate <procedures.json>     check procedures against the design criteria
  terrain <procedures.json>      analyze terrain clearance along procedures
  chain <procedures.json>        analyze each leg of procedures and validate them
  segment <lat,lon> <lat,lon>    analyze the terrain along a single leg

procedure types:
`)
	for _, pt := range procedure.ProcedureTypes() {
		fmt.Fprintf(flag.CommandLine.Output(), "  %-10s %s\n", pt, pt.Description())
	}
	fmt.Fprintf(flag.CommandLine.Output(), "\nnavigation types:\n")
	for _, nt := range procedure.NavigationTypes() {
		fmt.Fprintf(flag.CommandLine.Output(), "  %-10s %s\n", nt, nt.Description())
	}
	fmt.Fprintf(flag.CommandLine.Output(), "\nflags:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0), flag.Args()[1:]))
}

func run(cmd string, args []string) int {
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logDir != "" {
		cfg.Log.Dir = *logDir
	}
	if *offline {
		cfg.Elevation.Offline = true
	}
	if *samples > 0 {
		cfg.Analysis.SamplesPerSegment = *samples
	}

	// Initialize the logging system first and foremost.
	lg := log.New(cfg.Log.Level, cfg.Log.Dir)
	defer lg.Close()

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer func() {
		if err := profiler.Cleanup(); err != nil {
			lg.Errorf("%v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, cache := makeProvider(cfg, lg)
	a := analysis.NewAnalyzer(provider, cfg.Analysis.SamplesPerSegment, lg)

	c := &commands{
		analyzer: a,
		strict:   *strict,
		dump:     *dump,
		out:      os.Stdout,
		errOut:   os.Stderr,
		dumpOut:  os.Stderr,
		lg:       lg,
		alt1:     *alt1,
		alt2:     *alt2,
	}
	status := c.run(ctx, cmd, args)

	if cache != nil && cfg.Elevation.CacheFile != "" {
		if err := cache.SaveFile(cfg.Elevation.CacheFile); err != nil {
			lg.Errorf("%s: unable to save elevation cache: %v", cfg.Elevation.CacheFile, err)
		} else {
			lg.Infof("saved %d elevations to %s", cache.Len(), cfg.Elevation.CacheFile)
		}
	}

	return status
}

func makeProvider(cfg *config.Config, lg *log.Logger) (terrain.Provider, *terrain.Cache) {
	if cfg.Elevation.Offline {
		lg.Info("using synthetic terrain")
		return terrain.Synthetic{}, nil
	}

	cache, err := cfg.Elevation.NewCache()
	if err != nil {
		// Carry on with whatever was loaded.
		lg.Warnf("elevation cache: %v", err)
	}
	return terrain.NewOpenElevation(cfg.Elevation.OpenElevationConfig(), cache, lg), cache
}
