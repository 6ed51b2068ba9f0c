// Copyright 2025 The WordTrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordtrie completion server or its interactive CLI.

wordtrie keeps a dictionary in an arena-backed character trie and answers
prefix completions, membership checks and single-edit spelling corrections.
It runs as a MessagePack IPC server for editors, or as a CLI for trying
things by hand.

# Usage

Serve completions from chunk files in ./data:

	wordtrie

Load a plain word list, most frequent word first, and open the CLI:

	wordtrie -dict words.txt -c

Read only the first 20000 lines:

	wordtrie -dict words.txt -lines 20000 -c

Split a word list into chunk files for faster startup:

	wordtrie -dict words.txt -build -data data/ -chunk 10000

# Configuration

Settings live in wordtrie.toml in the user config dir and are created with
defaults on first run. Flags given on the command line win over the file.

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	max_words = 50000
	chunk_size = 10000
	max_lines = 0
	min_frequency_threshold = 0

	[suggest]
	cache_size = 2048
	max_corrections = 10
	rank_corrections = true

See package server for the IPC protocol and package cli for the CLI
commands.

# Command Line Flags

	-data string     directory with dict_NNNN.bin chunk files (default "data/")
	-dict string     plain text word list, used instead of chunk files
	-lines int       read at most this many lines of -dict (0 for all)
	-build           write -dict as chunk files into -data and exit
	-config string   config file path
	-d               debug logging
	-c               run the CLI instead of the server
	-limit int       number of suggestions in the CLI
	-prmin int       minimum prefix length in the CLI
	-prmax int       maximum prefix length in the CLI
	-no-filter       disable input filtering in the CLI
	-words int       maximum words to load from chunks (0 for all)
	-chunk int       words per chunk file for -build
	-version         print version and exit
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
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

// wordList collects words in the order a Builder hands them over.
type wordList []string

func (w *wordList) AddWord(word string, _ int) { *w = append(*w, word) }

func (w *wordList) RemoveWord(string) bool { return false }

// Contains is always false so that repeated lines keep their own rank.
func (w *wordList) Contains(string) bool { return false }

func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	binaryDir := flag.String("data", "data/", "Directory containing the chunk files")
	dictFile := flag.String("dict", "", "Plain text dictionary, one word per line, most frequent first")
	maxLines := flag.Int("lines", defaultConfig.Dict.MaxLines, "Maximum lines to read from -dict (0 for all)")
	build := flag.Bool("build", false, "Write -dict as chunk files into -data and exit")
	configFile := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 <= n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to load from chunks (0 for all)")
	chunkSize := flag.Int("chunk", defaultConfig.Dict.ChunkSize, "Number of words per chunk file")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.SetDebug(*debugMode)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	cfg, configPath := config.LoadConfigWithPriority(*configFile, pathResolver.GetConfigPath(config.FileName))
	log.Debugf("Using config file: (%s)", configPath)

	// Flags given explicitly win over the config file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name string, flagValue, configValue int) int {
		if set[name] {
			return flagValue
		}
		return configValue
	}
	*maxLines = pick("lines", *maxLines, cfg.Dict.MaxLines)
	*wordLimit = pick("words", *wordLimit, cfg.Dict.MaxWords)
	*chunkSize = pick("chunk", *chunkSize, cfg.Dict.ChunkSize)
	*limit = pick("limit", *limit, cfg.CLI.DefaultLimit)
	*minPrefix = pick("prmin", *minPrefix, cfg.CLI.DefaultMinLen)
	*maxPrefix = pick("prmax", *maxPrefix, cfg.CLI.DefaultMaxLen)
	if !set["no-filter"] {
		*noFilter = cfg.CLI.DefaultNoFilter
	}

	if *build {
		if err := buildChunks(*dictFile, *maxLines, *binaryDir, *chunkSize); err != nil {
			log.Fatalf("Build failed: %v", err)
		}
		return
	}

	completer := suggest.NewCompleterWithOptions(suggest.OptionsFromConfig(cfg))

	var runtimeLoader *dictionary.RuntimeLoader
	dataDir := ""
	if *dictFile != "" {
		if err := loadText(completer, *dictFile, *maxLines); err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
		}
		dataDir = *dictFile
	} else {
		dataDir = pathResolver.GetDataDir(*binaryDir)
		log.Debugf("Using data dir at: %s", dataDir)
		loader := dictionary.NewLoader(dataDir, completer)
		chunks, err := loader.LoadUpTo(*wordLimit)
		switch {
		case errors.Is(err, dictionary.ErrNoChunks):
			log.Warn("No chunk files found, running with empty dict...")
		case err != nil:
			log.Fatalf("Failed to load chunks: %v", err)
		default:
			log.Debugf("Loaded %d chunks (%d words)", chunks, loader.GetStats().LoadedWords)
			runtimeLoader = dictionary.NewRuntimeLoader(loader)
		}
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, cfg, configPath)
	if runtimeLoader != nil {
		srv.SetRuntimeLoader(runtimeLoader)
	}

	showStartupInfo(dataDir, completer.Stats()["totalWords"])

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadText streams a plain text dictionary into the completer.
func loadText(completer *suggest.Completer, path string, maxLines int) error {
	format, err := dictionary.DetectFileFormat(path)
	if err != nil {
		return err
	}
	if format != dictionary.FormatText {
		return fmt.Errorf("%s is a %s; pass its directory with -data instead", path, format)
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	n, err := dictionary.NewBuilder(file).Lines(maxLines).BuildInto(completer)
	if err != nil {
		log.Warnf("Dictionary read stopped early: %v", err)
	}
	log.Debugf("Loaded %d words from %s", n, path)
	return nil
}

// buildChunks converts a text dictionary into chunk files under dir.
func buildChunks(path string, maxLines int, dir string, chunkSize int) error {
	if path == "" {
		return errors.New("-build needs -dict")
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words wordList
	if _, err := dictionary.NewBuilder(file).Lines(maxLines).BuildInto(&words); err != nil {
		return err
	}
	n, err := dictionary.SplitIntoChunks(dir, words, chunkSize)
	if err != nil {
		return err
	}
	log.Printf("Wrote %s words into %d chunk files in %s",
		utils.FormatWithCommas(len(words)), n, utils.GetAbsolutePath(dir))
	return nil
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordtrie ] completions and spelling fixes from a trie")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(source string, words int) {
	info := logger.New(AppName)
	info.SetLevel(log.InfoLevel)

	info.Print("===========")
	info.Infof("Version: %s", Version)
	info.Infof("Process ID: [ %d ]", os.Getpid())
	info.Infof("dictionary: ( %s ), %s words", source, utils.FormatWithCommas(words))
	info.Info("status: ready")
	info.Print("===========")
}
