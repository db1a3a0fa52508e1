// Package testutil holds small test assertion helpers shared across
// dynparse's package-level test files; failures report the caller's
// file:line instead of testutil's own.
package testutil

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/ava12/dynparse/errors"
)

func fatalf(t *testing.T, message string, params ...any) {
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

// Assert fails the test with message if cond is false.
func Assert(t *testing.T, cond bool, message string, params ...any) {
	if !cond {
		fatalf(t, message, params...)
	}
}

// Expect fails the test reporting expected vs got if cond is false.
func Expect(t *testing.T, cond bool, expected, got any) {
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

// ExpectBool fails the test reporting expected vs got if they differ.
func ExpectBool(t *testing.T, expected, got bool) {
	Expect(t, expected == got, expected, got)
}

// ExpectInt fails the test reporting expected vs got if they differ.
func ExpectInt(t *testing.T, expected, got int) {
	Expect(t, expected == got, expected, got)
}

// ExpectErrorCode fails the test unless e is a *errors.Error carrying the
// expected code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	if e != nil {
		ee, valid := e.(*errors.Error)
		if valid && ee.Code == expected {
			return
		}
	}

	fatalf(t, "expecting error code %d, got %v", expected, e)
}
