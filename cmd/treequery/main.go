// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// treequery inspects JavaScript files with the ESTree query helpers.
//
// Usage:
//
//	treequery inspect [--config treequery.yaml] [--format text|json|yaml]
//	                  [--path callee.property.name]... [--debug] [--trace] FILE...
//	treequery version
//
// Exit codes:
//
//	0 - every file was inspected
//	1 - usage error, configuration error, or at least one file failed
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/treequery/services/lint/config"
	"github.com/AleutianAI/treequery/services/lint/inspect"
	"github.com/AleutianAI/treequery/services/lint/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errFilesFailed signals a completed run in which some files failed.
var errFilesFailed = errors.New("one or more files could not be inspected")

type inspectOptions struct {
	configPath string
	format     string
	paths      []string
	debug      bool
	trace      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "treequery",
		Short:         "Answer structural questions about JavaScript syntax trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newInspectCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the treequery version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "treequery %s\n", version)
		},
	}
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Report calls, bindings, methods and property order for JavaScript files",
		Long: `Parses each file into an ESTree and reports, per file: every call with its
callee chain and truthy literal arguments, named assignment targets,
destructured bindings of tracked objects, methods with their size and
emptiness, and the first out-of-order member of each object literal and
class body.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInspect(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
			if err != nil && !errors.Is(err, errFilesFailed) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "treequery.yaml", "configuration file (missing file uses defaults)")
	flags.StringVarP(&opts.format, "format", "f", formatText, "output format: text, json or yaml")
	flags.StringArrayVarP(&opts.paths, "path", "p", nil, "dotted property path to look up on every call (repeatable)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.trace, "trace", false, "export traces and metrics to stderr")
	return cmd
}

func runInspect(ctx context.Context, stdout, stderr io.Writer, opts *inspectOptions, files []string) error {
	if !validFormat(opts.format) {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	logger := newLogger(stderr, opts.debug)
	slog.SetDefault(logger)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	tcfg := telemetry.DefaultConfig()
	tcfg.ServiceName = cfg.Telemetry.ServiceName
	tcfg.ServiceVersion = version
	tcfg.TraceExporter = cfg.Telemetry.TraceExporter
	tcfg.MetricExporter = cfg.Telemetry.MetricExporter
	tcfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	tcfg.Writer = stderr
	if opts.trace {
		tcfg.TraceExporter = telemetry.ExporterStdout
		tcfg.MetricExporter = telemetry.ExporterStdout
	}

	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	insp, err := inspect.New(cfg,
		inspect.WithLogger(logger),
		inspect.WithPropertyPaths(opts.paths...),
	)
	if err != nil {
		return err
	}

	run, err := insp.InspectFiles(ctx, files)
	if err != nil {
		return err
	}

	if err := render(stdout, opts.format, run, useColor(stdout)); err != nil {
		return err
	}
	if len(run.Failures) > 0 {
		return errFilesFailed
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// useColor reports whether w is a terminal.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
