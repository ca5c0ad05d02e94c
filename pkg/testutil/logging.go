package testutil

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// Logs are discarded unless tests run verbosely, while still evaluating every
// log statement at the most detailed level.
func init() {
	logrus.SetLevel(logrus.TraceLevel)

	if !isVerbose() {
		logrus.StandardLogger().Out = io.Discard
	}
}

func isVerbose() bool {
	for _, arg := range os.Args {
		if arg == "-test.v" || arg == "-test.v=true" || strings.HasPrefix(arg, "-test.v=test2json") {
			return true
		}
	}
	return false
}

// RestoreLoggingOnCleanup snapshots the standard logger's level, output and
// formatter, restoring them when the test completes. Use it in tests that
// reconfigure the global logger.
func RestoreLoggingOnCleanup(t *testing.T) {
	logger := logrus.StandardLogger()

	level := logger.GetLevel()
	out := logger.Out
	formatter := logger.Formatter

	t.Cleanup(func() {
		logger.SetLevel(level)
		logger.SetOutput(out)
		logger.SetFormatter(formatter)
	})
}
