// Package cmn provides the low-level assertion and error-wrapping
// primitives shared by the rest of this repository.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

import (
	"fmt"

	"github.com/golang/glog"
)

// Assert aborts the process if cond is false. Every site documented as a
// "programmer error" in the search engine's design - heap capacity growth,
// arena mmap, mutex bookkeeping - calls Assert rather than returning an
// error: there is no recoverable path for corrupted internal state.
func Assert(cond bool, args ...interface{}) {
	if cond {
		return
	}
	if len(args) > 0 {
		glog.Fatalf("assertion failed: %s", fmt.Sprint(args...))
	}
	glog.Fatalf("assertion failed")
}

// Assertf is Assert with a format string, for call sites where the
// message needs interpolated values.
func Assertf(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	glog.Fatalf("assertion failed: "+format, args...)
}

// AssertNoErr aborts the process if err is non-nil. Used where an error
// return indicates corrupted internal state (e.g. munmap failing on a
// chunk this process itself mapped) rather than a user-facing failure.
func AssertNoErr(err error) {
	if err != nil {
		glog.Fatalf("assertion failed: unexpected error: %v", err)
	}
}
