// Copyright 2025 The TitleServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the job title finding server and CLI [DBG] application.

TitleServe finds job titles in free text with an Aho-Corasick automaton built
over a title dictionary. It can operate as a MessagePack IPC server for
integration with other processes, or as a CLI application for testing and
debugging dictionaries.

# Usage

Start the server with the bundled title list:

	titleserve

Use a custom title file and enable debug mode:

	titleserve -dict /path/to/titles.txt -d

Run in CLI mode for interactive testing:

	titleserve -c

Title files are plain text with one title per line, optionally gzip
compressed, or msgpack bundles written with -bundle:

	titleserve -dict titles.txt -bundle titles.msgpack

# Configuration

Runtime configuration is read from config.toml in the user config dir, or
from the file given with -config. Flags override the file:

	[finder]
	ignore_case = true
	resolve_longest = true
	backend = "native"

	[dict]
	path = ""
	extra_titles = ["Staff Engineer"]

The config file is created with defaults if it doesn't exist.

# Command Line Flags

	-c  Run in CLI mode instead of server mode
	-d  Enable debug mode with detailed logging
	-config string
	    Path to config.toml
	-dict string
	    Title file replacing the bundled list
	-extra string
	    Title file added on top of the base list
	-ignore-case
	    Also match fully lower-cased titles
	-raw
	    Report every occurrence instead of the longest matches
	-backend string
	    Automaton implementation: native or library
	-bundle string
	    Write the base title list as a msgpack bundle and exit
	-rebuild-config
	    Overwrite the config file with defaults and exit
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/titleserve/internal/cli"
	"github.com/bastiangx/titleserve/internal/logger"
	"github.com/bastiangx/titleserve/internal/utils"
	"github.com/bastiangx/titleserve/pkg/config"
	"github.com/bastiangx/titleserve/pkg/dictionary"
	"github.com/bastiangx/titleserve/pkg/finder"
	"github.com/bastiangx/titleserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	gh      = "https://github.com/bastiangx/titleserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, finder and the chosen front end.
// It does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	dictPath := flag.String("dict", "", "Title file replacing the bundled list (.txt, .gz, .msgpack)")
	extraPath := flag.String("extra", "", "Title file added on top of the base list")
	ignoreCase := flag.Bool("ignore-case", defaults.Finder.IgnoreCase, "Also match fully lower-cased titles")
	raw := flag.Bool("raw", !defaults.Finder.ResolveLongest, "Report every occurrence instead of the longest matches")
	backend := flag.String("backend", defaults.Finder.Backend, "Automaton implementation: native or library")
	bundlePath := flag.String("bundle", "", "Write the base title list as a msgpack bundle to this path and exit")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		return
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	cfg, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfig))
	for k, v := range pathResolver.GetRuntimeInfo() {
		log.Debug("runtime", k, v)
	}

	// explicitly set flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Dict.Path = *dictPath
		case "extra":
			cfg.Dict.ExtraPath = *extraPath
		case "ignore-case":
			cfg.Finder.IgnoreCase = *ignoreCase
		case "raw":
			cfg.Finder.ResolveLongest = !*raw
		case "backend":
			cfg.Finder.Backend = *backend
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	resolvedDict := pathResolver.ResolveDictPath(cfg.Dict.Path)
	if *bundlePath != "" {
		if err := writeBundle(resolvedDict, *bundlePath); err != nil {
			log.Fatalf("Failed to write bundle: %v", err)
		}
		return
	}

	opts, err := cfg.FinderOptions(func(p string) string {
		if p == cfg.Dict.Path {
			return resolvedDict
		}
		return pathResolver.ResolveDictPath(p)
	})
	if err != nil {
		log.Fatalf("Invalid finder options: %v", err)
	}
	opts = append(opts, finder.WithLogger(logger.New("finder")))

	rt, err := finder.NewRuntime(opts...)
	if err != nil {
		log.Fatalf("Failed to build finder: %v", err)
	}
	log.Debug("Finder init done", "patterns", rt.Info().Patterns)

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		h := cli.NewInputHandler(rt, cfg.Finder.ResolveLongest, cfg.CLI.ShowOffsets, cfg.CLI.DefaultLimit)
		if err := h.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(rt, cfg, os.Stdin, os.Stdout)
	showStartupInfo(resolvedDict, rt.Info())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// writeBundle converts the base title list into a msgpack bundle.
func writeBundle(dictPath, out string) error {
	src := dictionary.Default()
	if dictPath != "" {
		src = dictionary.Load(dictPath)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := dictionary.WriteBundle(f, src); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Wrote bundle to %s", out)
	return nil
}

// printVersion shows the version banner.
func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ TitleServe ] Finds job titles in text, fast!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// It writes to stderr, stdout carries the IPC stream.
func showStartupInfo(dictPath string, info finder.RuntimeInfo) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	if dictPath == "" {
		dictPath = "bundled"
	}
	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, " TitleServe ")
	fmt.Fprintln(os.Stderr, "============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("titles: ( %s )", dictPath)
	log.Infof("patterns: %s, backend: %s", utils.FormatWithCommas(info.Patterns), info.Backend)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")
}
