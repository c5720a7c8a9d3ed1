package report

import (
	"bufio"
	"fmt"
	"os"
	"pinsc/common"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Internal Compiler Error")
	ErrorColorFG.Println(" " + message)
	InfoColorFG.Println("This error was not supposed to happen: it is a bug in pinsc.")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
	fmt.Println()
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display a type
// error, the label is "type error".
func displayCompileMessage(label, absPath, reprPath string, span *TextSpan, message string) {
	if span == nil {
		fmt.Printf("%s: ", reprPath)
	} else {
		fmt.Printf("%s:%d:%d: ", reprPath, span.StartLine+1, span.StartCol+1)
	}

	if label == "warning" {
		WarnColorFG.Print(label)
	} else {
		ErrorColorFG.Print(label)
	}

	fmt.Printf(": %s\n\n", message)

	if span != nil && absPath != "" {
		displaySourceText(absPath, span)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Printf("%s: ", reprPath)
	ErrorColorFG.Print("error")
	fmt.Printf(": %s\n\n", err)
}

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(absPath string, span *TextSpan) {
	// The source may have come from somewhere other than a file (eg. a test
	// string) in which case there is nothing to display.
	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := -1
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if minIndent == -1 || lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and at the
		// trimmed indentation on every other line.
		carretStart := 0
		if i == 0 {
			carretStart = span.StartCol - minIndent
		}

		// Underlining stops after the end column on the last line and at the
		// end of the line on every other line.
		carretEnd := len(line) - minIndent
		if i == len(lines)-1 && span.EndCol-minIndent+1 < carretEnd {
			carretEnd = span.EndCol - minIndent + 1
		}

		if carretStart < 0 {
			carretStart = 0
		}

		fmt.Print(strings.Repeat(" ", carretStart))
		if carretEnd > carretStart {
			ErrorColorFG.Println(strings.Repeat("^", carretEnd-carretStart))
		} else {
			ErrorColorFG.Println("^")
		}
	}

	fmt.Println()
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before compilation.
func displayCompileHeader(reprPath string) {
	fmt.Print("pinsc ")
	InfoColorFG.Print("v" + common.PinsVersion)
	fmt.Print(" -- source: ")
	InfoColorFG.Println(reprPath)
}

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter

const maxPhaseLength = len("Linearizing")

// displayBeginPhase displays the beginning of a compilation phase.
func displayBeginPhase(phase string) {
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner, _ = spinner.Start(phaseText)
}

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(phase string, success bool, elapsed time.Duration) {
	if phaseSpinner == nil {
		return
	}

	padding := strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	if success {
		phaseSpinner.Success(phase+padding, fmt.Sprintf("(%.3fs)", elapsed.Seconds()))
	} else {
		phaseSpinner.Fail(phase + padding)
	}

	phaseSpinner = nil
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Println("All done!")
	} else {
		ErrorColorFG.Println("Oh no!")
	}
}
