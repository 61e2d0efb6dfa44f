package ipconfig_test

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain runs all tests in the ipconfig_test package and checks for
// goroutine leaks after all tests complete (the batch factory spawns a
// worker per input via errgroup).
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
