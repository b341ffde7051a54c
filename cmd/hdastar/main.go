// Command hdastar finds the shortest path between a maze's two
// openings using the HDA* parallel bidirectional search and marks it in
// place in the maze file.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/Cytosine2020/HDAStar/internal/config"
	"github.com/Cytosine2020/HDAStar/internal/ioadapter"
	"github.com/Cytosine2020/HDAStar/internal/search"
)

const (
	version = "1.0.0"

	flagWorkers = "workers"
	flagChunk   = "arena-chunk-kib"
)

func main() {
	app := cli.NewApp()
	app.Name = "hdastar"
	app.Usage = "solve a block maze with a hash-distributed parallel bidirectional A* search"
	app.Version = version
	app.ArgsUsage = "MAZE-FILE"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  flagWorkers,
			Usage: "worker goroutines per search direction (overrides " + config.WorkersPerDirEnv() + ")",
		},
		cli.IntFlag{
			Name:  flagChunk,
			Usage: "arena chunk size in KiB (overrides " + config.ArenaChunkEnv() + ")",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		glog.Errorf("hdastar: %v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: hdastar [options] MAZE-FILE")
	}
	mazePath := c.Args().Get(0)

	if v := os.Getenv(config.LogVerbosityEnv()); v != "" {
		if err := flag.Set("v", v); err != nil {
			glog.Warningf("hdastar: ignoring invalid %s=%q: %v", config.LogVerbosityEnv(), v, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "hdastar: configuration")
	}
	if c.IsSet(flagWorkers) {
		cfg.WorkersPerDir = c.Int(flagWorkers)
	}
	if c.IsSet(flagChunk) {
		cfg.ArenaChunkBytes = c.Int(flagChunk) * 1024
	}

	maze, err := ioadapter.Open(mazePath)
	if err != nil {
		return errors.Wrapf(err, "hdastar: opening %s", mazePath)
	}
	defer func() {
		if cerr := maze.Close(); cerr != nil {
			glog.Errorf("hdastar: closing %s: %v", mazePath, cerr)
		}
	}()

	outcome, err := search.Bidirectional(context.Background(), cfg, maze)
	if err != nil {
		return errors.Wrap(err, "hdastar: search")
	}

	if !outcome.Found {
		fmt.Fprintln(c.App.Writer, "no path exists")
		return cli.NewExitError("", 2)
	}

	fmt.Fprintf(c.App.Writer, "path length: %d\n", outcome.Length)
	return nil
}
