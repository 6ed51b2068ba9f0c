// Package cli is an interactive prompt for trying completions, corrections
// and dictionary edits by hand.
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

const helpText = `commands:
  <prefix>        complete prefix
  :add word [f]   insert word with frequency f (default 1)
  :rm word        remove word
  :has word       check whether word is stored
  :fix word       spelling corrections for word
  :stats          dictionary statistics
  :q              quit`

// InputHandler reads one line at a time and prints completions for it.
// Lines starting with ':' are commands.
type InputHandler struct {
	completer       suggest.ICompleter
	in              io.Reader
	out             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	requestCount    int
}

// NewInputHandler creates a handler reading stdin and printing to stderr.
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	h := &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
	h.SetIO(os.Stdin, os.Stderr)
	return h
}

// SetIO replaces the input and output streams.
func (h *InputHandler) SetIO(r io.Reader, w io.Writer) {
	h.in = r
	h.out = logger.NewTo(w, "")
}

// Start runs the prompt until input ends or the user quits.
func (h *InputHandler) Start() error {
	h.out.Print("wordtrie CLI")
	h.out.Print("type a prefix and press Enter, or :help (Ctrl+D to exit):")
	reader := bufio.NewReader(h.in)

	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if !h.handleLine(line) {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleLine returns false when the user asked to quit.
func (h *InputHandler) handleLine(line string) bool {
	if !strings.HasPrefix(line, ":") {
		h.handleInput(line)
		return true
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		h.out.Print(helpText)
		return true
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return false
	case "help", "h":
		h.out.Print(helpText)
	case "stats":
		h.printStats()
	case "add", "rm", "has", "fix":
		if len(args) == 0 {
			h.out.Errorf("usage: :%s word", cmd)
			return true
		}
		h.handleWordCommand(cmd, args)
	default:
		h.out.Errorf("unknown command :%s (try :help)", cmd)
	}
	return true
}

func (h *InputHandler) handleWordCommand(cmd string, args []string) {
	word := args[0]
	switch cmd {
	case "add":
		if !utils.IsWord(word) {
			h.out.Errorf("cannot add %q: only letters are allowed", word)
			return
		}
		freq := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				h.out.Errorf("frequency must be a positive number, got %q", args[1])
				return
			}
			freq = n
		}
		existed := h.completer.Contains(word)
		h.completer.AddWord(word, freq)
		if existed {
			h.out.Printf("updated %s (freq: %s)", wordStyle.Render(word), utils.FormatWithCommas(freq))
		} else {
			h.out.Printf("added %s (freq: %s)", wordStyle.Render(word), utils.FormatWithCommas(freq))
		}
	case "rm":
		if h.completer.RemoveWord(word) {
			h.out.Printf("removed %s", wordStyle.Render(word))
		} else {
			h.out.Printf("%s is not in the dictionary", word)
		}
	case "has":
		if h.completer.Contains(word) {
			h.out.Printf("%s is in the dictionary", wordStyle.Render(word))
		} else {
			h.out.Printf("%s is not in the dictionary", word)
		}
	case "fix":
		if h.completer.Contains(word) {
			h.out.Printf("no suggestions needed: %s is in the dictionary", wordStyle.Render(word))
			return
		}
		h.printCorrections(word)
	}
}

// handleInput validates prefix and prints its completions. A prefix with
// no completions that is not a word itself gets corrections instead.
func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++

	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if n > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.out.Printf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		if h.completer.Contains(prefix) {
			h.out.Printf("'%s' is a word with no longer completions", prefix)
			return
		}
		h.out.Printf("No suggestions found for prefix: '%s'", prefix)
		h.printCorrections(prefix)
		return
	}

	h.out.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	h.printSuggestions(suggestions)
}

func (h *InputHandler) printCorrections(word string) {
	corrections := h.completer.Correct(word, h.suggestLimit)
	if len(corrections) == 0 {
		h.out.Printf("no suggestions found for '%s'", word)
		return
	}
	h.out.Printf("did you mean:")
	h.printSuggestions(corrections)
}

func (h *InputHandler) printSuggestions(suggestions []suggest.Suggestion) {
	for i, s := range suggestions {
		h.out.Printf("%2d. %-40s (freq: %8s)", i+1, wordStyle.Render(s.Word), utils.FormatWithCommas(s.Frequency))
	}
}

func (h *InputHandler) printStats() {
	stats := h.completer.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.out.Printf("%-18s %s", k, utils.FormatWithCommas(stats[k]))
	}
	h.out.Printf("%-18s %d", "requests", h.requestCount)
}
