package report

import (
	"sync"
	"time"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation and execution.  The reporter
// respects the set log level and is synchronized: its methods can be safely
// called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool

	// The name of the phase currently running and when it started.
	phase          string
	phaseStartTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames maps the names accepted on the command line and in
// configuration files to log levels.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// rep is the global reporter instance.  It only reports errors until it is
// initialized.
var rep = &Reporter{m: &sync.Mutex{}, logLevel: LogLevelError}

// InitReporter sets the log level of the global reporter and clears its error
// state.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.isErr = false
	rep.phase = ""
}
