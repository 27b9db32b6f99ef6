// internal/cmdutil/log.go
package cmdutil

import (
	"io"
	"os"

	"github.com/shenwei356/go-logging"
)

// Log is the process-wide logger. Library packages under core/ never log.
var Log = logging.MustGetLogger("pblast")

var logFormat = logging.MustStringFormatter(`%{time:15:04:05.000} [%{level:.4s}] %{message}`)

func init() {
	SetupLogging(os.Stderr, false, false)
}

// SetupLogging routes Log to w. quiet keeps errors only; verbose adds debug.
func SetupLogging(w io.Writer, verbose, quiet bool) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), logFormat)
	leveled := logging.AddModuleLevel(backend)
	switch {
	case quiet:
		leveled.SetLevel(logging.ERROR, "")
	case verbose:
		leveled.SetLevel(logging.DEBUG, "")
	default:
		leveled.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(leveled)
}

// Warnf logs a warning unless quiet.
func Warnf(quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	Log.Warningf(format, a...)
}
