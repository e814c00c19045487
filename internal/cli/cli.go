package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/ipforge/internal/app"
	"github.com/vk/ipforge/internal/settings"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// searchDirs overrides where the settings file is looked for.
func Parse(args []string, output io.Writer, searchDirs ...string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ipforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ipforge - generates Verilog wrappers around FPGA primitives from HCL build files.

Usage:
  ipforge [options] [BUILD_PATH]
  ipforge -list

Arguments:
  BUILD_PATH
    Path to a single .hcl build file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	d := settings.Defaults()
	fileFlag := flagSet.String("file", "", "Path to the build file or directory.")
	fFlag := flagSet.String("f", "", "Path to the build file or directory (shorthand).")
	buildDirFlag := flagSet.String("build-dir", d.BuildDir, "Directory generated builds are written under.")
	buildNameFlag := flagSet.String("build-name", d.BuildName, "Name of this build; artifacts go to <build-dir>/<build-name>.")
	configFlag := flagSet.String("config", "", "Settings file (yaml, toml or json). Defaults to ./ipforge.* or ~/.ipforge/ipforge.*.")
	logLevelFlag := flagSet.String("log-level", d.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", d.LogFormat, "Log output format. Options: 'text' or 'json'.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Generate everything but write no files.")
	listFlag := flagSet.Bool("list", false, "List the available IP cores and their parameters, then exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := ""
	switch {
	case *fileFlag != "":
		path = *fileFlag
	case *fFlag != "":
		path = *fFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("only one BUILD_PATH may be given, got %d", flagSet.NArg())
	}
	slog.Debug("Build path determined.", "path", path)

	if path == "" && !*listFlag {
		slog.Debug("No build path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	st, err := settings.Load(*configFlag, searchDirs...)
	if err != nil {
		return nil, false, usageError("%v", err)
	}
	if st.File != "" {
		slog.Debug("Settings file loaded.", "file", st.File)
	}

	pick := func(name, flagValue, settingValue string) string {
		if set[name] {
			return flagValue
		}
		return settingValue
	}

	logFormat := strings.ToLower(pick("log-format", *logFormatFlag, st.LogFormat))
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(pick("log-level", *logLevelFlag, st.LogLevel))
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		BuildPath: path,
		BuildDir:  pick("build-dir", *buildDirFlag, st.BuildDir),
		BuildName: pick("build-name", *buildNameFlag, st.BuildName),
		Header:    st.Header,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		DryRun:    *dryRunFlag,
		List:      *listFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
