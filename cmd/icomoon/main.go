package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/systemstart/icomoon-cli/pkg/api"
	"github.com/systemstart/icomoon-cli/pkg/config"
	"github.com/systemstart/icomoon-cli/pkg/logging"
	"github.com/systemstart/icomoon-cli/pkg/processing"
)

var version = "dev"

const (
	_ = iota
	exitInvalidLoggingParameter
	exitDotenvError
	exitLoadConfigurationFailed
	exitLoadRequestFileFailed
	exitIconsNotFound
	exitWorkingDirectoryFailed
	exitToolErrors
)

var (
	requestFile     string
	icons           []string
	names           []string
	selectionFile   string
	outputDirectory string
	visible         bool
	loggingType     string
	logLevel        string
	showVersion     bool
)

func init() {
	flag.StringVar(
		&requestFile,
		"request",
		"",
		"YAML jobs file, runs every job in it")
	flag.StringArrayVar(
		&icons,
		"icon",
		nil,
		"icon file or glob pattern, repeatable")
	flag.StringArrayVar(
		&names,
		"name",
		nil,
		"new name of the n-th generated glyph, repeatable")
	flag.StringVar(
		&selectionFile,
		"selection",
		"",
		"IcoMoon selection.json to import")
	flag.StringVar(
		&outputDirectory,
		"output-directory",
		"",
		"output directory, recreated on every run (default: output next to the executable)")
	flag.BoolVar(
		&visible,
		"visible",
		false,
		"show the browser window")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := logging.Initialize(loggingType, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInvalidLoggingParameter)
	}

	includeEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := processing.NewRunner(loadConfig(ctx))

	var err error
	if requestFile != "" {
		err = runRequestFile(ctx, runner)
	} else {
		err = runFlags(ctx, runner)
	}
	if err != nil {
		slog.Error("processing failed", "error", err)
		stop()
		os.Exit(exitToolErrors)
	}

	slog.Info("done")
}

func runRequestFile(ctx context.Context, runner *processing.Runner) error {
	f, err := api.LoadJobs(requestFile)
	if err != nil {
		slog.Error("failed to load request file", "filename", requestFile, "error", err)
		os.Exit(exitLoadRequestFileFailed)
	}

	return processing.RunJobs(ctx, runner, f, func(job string, res processing.Result) {
		slog.Info("job finished", "name", job, "outputDir", res.OutputDir)
	})
}

func runFlags(ctx context.Context, runner *processing.Runner) error {
	wd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to determine working directory", "error", err)
		os.Exit(exitWorkingDirectoryFailed)
	}

	var files []string
	if len(icons) > 0 {
		files, err = api.ExpandIcons(wd, icons)
		if err != nil {
			slog.Error("failed to find icons", "error", err)
			os.Exit(exitIconsNotFound)
		}
	}

	_, err = runner.Run(ctx, processing.Request{
		Icons:         files,
		Names:         names,
		SelectionPath: selectionFile,
		OutputDir:     outputDirectory,
		WhenFinished: func(res processing.Result) {
			slog.Info("icons are ready", "outputDir", res.OutputDir)
		},
	})
	return err
}

func loadConfig(ctx context.Context) *config.Config {
	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(exitLoadConfigurationFailed)
	}
	if flag.CommandLine.Changed("visible") {
		cfg.Browser.Visible = visible
	}
	return cfg
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
