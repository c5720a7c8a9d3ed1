package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"pinsc/build"
	"pinsc/common"
	"pinsc/config"
	"pinsc/report"
	"strconv"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `pinsc` application and returns the exit code.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("pinsc", "pinsc compiles and runs PINS programs", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	runCmd := cli.AddSubcommand("run", "compile and run a program", true)
	runCmd.AddPrimaryArg("file", "the path to the source file", true)
	runCmd.AddStringArg("memory", "m", "the size of the interpreter's memory in bytes", false)
	runCmd.AddStringArg("seed", "s", "the initial seed of the random number generator", false)
	runCmd.AddStringArg("dump", "d", "comma separated phases to dump: ast, types, frames, ir, lin", false)

	checkCmd := cli.AddSubcommand("check", "compile a program without running it", true)
	checkCmd.AddPrimaryArg("file", "the path to the source file", true)
	checkCmd.AddStringArg("dump", "d", "comma separated phases to dump: ast, types, frames, ir, lin", false)

	cli.AddSubcommand("version", "print the pinsc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		return report.ReportFatal("usage error: %s", err)
	}

	logLevel := ""
	if arg, ok := result.Arguments["loglevel"]; ok {
		logLevel = arg.(string)
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "run":
		return execCompileCommand(subResult, logLevel, true)
	case "check":
		return execCompileCommand(subResult, logLevel, false)
	case "version":
		report.PrintInfoMessage("pinsc Version", common.PinsVersion)
	}

	return 0
}

// execCompileCommand executes the run and check subcommands and handles all
// errors.
func execCompileCommand(result *olive.ArgParseResult, logLevel string, run bool) int {
	reprPath, _ := result.PrimaryArg()

	absPath, err := sourcePath(reprPath)
	if err != nil {
		return report.ReportFatal("%s", err)
	}

	conf, err := config.LoadFor(absPath)
	if err != nil {
		return report.ReportFatal("%s", err)
	}

	if err := applyArgs(conf, result.Arguments, logLevel); err != nil {
		return report.ReportFatal("%s", err)
	}

	report.InitReporter(report.LogLevelNames[conf.LogLevel])

	c := build.NewCompiler(absPath, reprPath, conf, os.Stdout)
	prog, err := c.CompileFile()
	if err != nil {
		report.ReportError(absPath, reprPath, err)
		report.ReportCompilationFinished()
		return 1
	}

	report.ReportCompilationFinished()

	if !run {
		return 0
	}

	if _, err := prog.Run(os.Stdout, conf.MemorySize, conf.Seed); err != nil {
		report.ReportError(absPath, reprPath, err)
		return 1
	}

	return 0
}

// sourcePath returns the absolute path to the source file named on the command
// line.  The file must exist and have the PINS file extension.
func sourcePath(reprPath string) (string, error) {
	if filepath.Ext(reprPath) != common.PinsFileExt {
		return "", fmt.Errorf("`%s` is not a PINS source file: expected a `%s` file", reprPath, common.PinsFileExt)
	}

	absPath, err := filepath.Abs(reprPath)
	if err != nil {
		return "", err
	}

	if finfo, err := os.Stat(absPath); err != nil {
		return "", fmt.Errorf("unable to open `%s`: %s", reprPath, err)
	} else if finfo.IsDir() {
		return "", fmt.Errorf("`%s` is a directory", reprPath)
	}

	return absPath, nil
}

// applyArgs overrides the loaded configuration with the values given on the
// command line and validates the result.
func applyArgs(conf *config.Config, args map[string]interface{}, logLevel string) error {
	if logLevel != "" {
		conf.LogLevel = logLevel
	}

	if arg, ok := args["memory"]; ok {
		memSize, err := strconv.Atoi(arg.(string))
		if err != nil {
			return fmt.Errorf("invalid memory size: %s", arg)
		}

		conf.MemorySize = memSize
	}

	if arg, ok := args["seed"]; ok {
		seed, err := strconv.ParseInt(arg.(string), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed: %s", arg)
		}

		conf.Seed = &seed
	}

	if arg, ok := args["dump"]; ok {
		conf.DumpPhases = config.ParseDumpPhases(arg.(string))
	}

	return conf.Validate()
}
