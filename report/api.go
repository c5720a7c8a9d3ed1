package report

import (
	"fmt"
	"os"
	"time"
)

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately but that are not attached to any source
// text: unreadable input files, bad command line values, etc.  The caller is
// responsible for stopping: the exit code is returned for convenience.
func ReportFatal(message string, args ...interface{}) int {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}

	return 1
}

// ReportCompileError reports a compilation error: ie. erroneous input code.
// The absPath is the absolute path to the erroneous source file. The reprPath
// is the path to display for that file.  The span may be nil in which case no
// position information will be printed.
func ReportCompileError(absPath, reprPath string, kind ErrorKind, span *TextSpan, message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		rep.isErr = true

		displayCompileMessage(kind.String(), absPath, reprPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		rep.isErr = true

		displayStdError(reprPath, err)
	}
}

// ReportError reports an error returned by one of the phases.  Compile errors
// are displayed with their source text; anything else is displayed as a
// standard error.
func ReportError(absPath, reprPath string, err error) {
	if cerr, ok := err.(*CompileError); ok {
		ReportCompileError(absPath, reprPath, cerr.Kind, cerr.Span, "%s", cerr.Message)
	} else {
		ReportStdError(reprPath, err)
	}
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.  These provide additional information about the
// compilation process to the user so as to make the compiler more friendly.

// ReportCompileHeader reports the pre-compilation header: the compiler version
// and the file being compiled.
func ReportCompileHeader(reprPath string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(reprPath)
	}
}

// ReportBeginPhase indicates the beginning of a compilation phase.
func ReportBeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		rep.phase = phase
		rep.phaseStartTime = time.Now()
		displayBeginPhase(phase)
	}
}

// ReportEndPhase indicates the end of the current compilation phase.
func ReportEndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		if rep.phase != "" {
			displayEndPhase(rep.phase, success, time.Since(rep.phaseStartTime))
			rep.phase = ""
		}
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished() {
	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(!rep.isErr)
	}
}
