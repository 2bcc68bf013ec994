package lwrkem

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("")

var stderrFormat = logging.MustStringFormatter(
	`%{color}lwrkem ▶ %{message}%{color:reset}`,
)

// SetupLogging wires a stderr backend at defaultLogLevel, overridable via
// LWRKEM_LOG_LEVEL. No syslog backend here — unlike kryptco-kr/logging.go,
// this module has no daemon process to forward panics from; the CLI
// (cmd/lwrkemctl) calls this once at startup the way kryptco-kr's
// SetupLogging is called from its command entry points.
func SetupLogging(defaultLogLevel logging.Level) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)

	leveled := logging.AddModuleLevel(backend)
	switch os.Getenv("LWRKEM_LOG_LEVEL") {
	case "CRITICAL":
		leveled.SetLevel(logging.CRITICAL, "")
	case "ERROR":
		leveled.SetLevel(logging.ERROR, "")
	case "WARNING":
		leveled.SetLevel(logging.WARNING, "")
	case "NOTICE":
		leveled.SetLevel(logging.NOTICE, "")
	case "INFO":
		leveled.SetLevel(logging.INFO, "")
	case "DEBUG":
		leveled.SetLevel(logging.DEBUG, "")
	default:
		leveled.SetLevel(defaultLogLevel, "")
	}

	logging.SetBackend(leveled)
	return log
}
