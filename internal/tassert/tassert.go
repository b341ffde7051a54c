// Package tassert provides small test assertion helpers in the style
// the rest of this repository's test files use, generalized from the
// teacher's tutils/tassert helper referenced throughout its test suite.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package tassert

import "testing"

// Errorf reports a test failure via t.Errorf if cond is false, without
// stopping the test.
func Errorf(t *testing.T, cond bool, format string, args ...interface{}) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}

// Fatalf reports a test failure via t.Fatalf if cond is false, stopping
// the test immediately.
func Fatalf(t *testing.T, cond bool, format string, args ...interface{}) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// CheckFatal stops the test immediately if err is non-nil.
func CheckFatal(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
