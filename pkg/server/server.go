package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultLimit = 10

// Server handles the IPC for word completions
type Server struct {
	completer     *suggest.Completer
	runtimeLoader *dictionary.RuntimeLoader
	config        *config.Config
	configPath    string

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder

	requestCount int
}

// NewServer creates a server using stdin/stdout for IPC. configPath is the
// file re-read by reload_config and may be empty.
func NewServer(completer *suggest.Completer, cfg *config.Config, configPath string) *Server {
	return NewServerIO(completer, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerIO creates a server reading requests from r and writing
// responses to w.
func NewServerIO(completer *suggest.Completer, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	return &Server{
		completer:  completer,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     writer,
		encoder:    msgpack.NewEncoder(writer),
	}
}

// SetRuntimeLoader enables the dictionary actions.
func (s *Server) SetRuntimeLoader(rl *dictionary.RuntimeLoader) {
	s.runtimeLoader = rl
}

// Start sends the ready message and serves requests until the input ends.
// A request that is valid msgpack but has the wrong shape gets an error
// response; a broken stream ends the loop with an error.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	s.send(map[string]string{"status": "ready"})

	for {
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return fmt.Errorf("read request: %w", err)
		}
		s.handleMessage(raw)
	}
}

func (s *Server) handleMessage(raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Decoding request: %v", err)
		s.sendError("", "Invalid msgpack request", CodeBadRequest)
		return
	}
	s.requestCount++

	if req.Action != "" {
		s.handleAction(req)
		return
	}

	switch req.Op {
	case "", OpComplete:
		s.handleComplete(req)
	case OpSuggest:
		s.handleSuggest(req)
	case OpContains:
		s.send(WordResponse{ID: req.ID, Word: req.Word, OK: s.completer.Contains(req.Word)})
	case OpInsert:
		s.handleInsert(req)
	case OpRemove:
		s.handleRemove(req)
	case OpStats:
		s.handleStats(req)
	default:
		s.sendError(req.ID, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op).Error(), CodeBadRequest)
	}
}

// limit clamps a requested result count to the configured maximum.
func (s *Server) limit(requested, fallback int) int {
	limit := requested
	if limit < 1 {
		limit = fallback
	}
	if maxLimit := s.config.Server.MaxLimit; maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

func (s *Server) handleComplete(req Request) {
	prefix := req.Prefix
	if prefix == "" {
		s.sendError(req.ID, "Missing 'p' parameter", CodeBadRequest)
		log.Debug("Prefix is empty in request")
		return
	}

	n := utf8.RuneCountInString(prefix)
	if n < s.config.Server.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("Prefix must be at least %d characters", s.config.Server.MinPrefix), CodeBadRequest)
		return
	}
	if n > s.config.Server.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), CodeBadRequest)
		return
	}

	start := time.Now()
	var suggestions []suggest.Suggestion
	if !s.config.Server.EnableFilter || utils.IsValidInput(prefix) {
		suggestions = s.completer.Complete(prefix, s.limit(req.Limit, defaultLimit))
	} else {
		log.Debugf("Filtered prefix %q", prefix)
	}
	s.send(newCompletionResponse(req.ID, suggestions, time.Since(start)))
}

func (s *Server) handleSuggest(req Request) {
	word := req.Word
	if word == "" {
		word = req.Prefix
	}
	if word == "" {
		s.sendError(req.ID, "Missing 'w' parameter", CodeBadRequest)
		return
	}

	start := time.Now()
	if s.completer.Contains(word) {
		resp := newCompletionResponse(req.ID, nil, time.Since(start))
		resp.Known = true
		s.send(resp)
		return
	}
	corrections := s.completer.Correct(word, s.limit(req.Limit, s.config.Suggest.MaxCorrections))
	s.send(newCompletionResponse(req.ID, corrections, time.Since(start)))
}

func (s *Server) handleInsert(req Request) {
	if !utils.IsWord(req.Word) {
		s.sendError(req.ID, fmt.Sprintf("Cannot insert %q: only letters are allowed", req.Word), CodeBadRequest)
		return
	}
	freq := req.Frequency
	if freq < 1 {
		freq = 1
	}
	added := !s.completer.Contains(req.Word)
	s.completer.AddWord(req.Word, freq)
	log.Debugf("Inserted %q with frequency %d", req.Word, freq)
	s.send(WordResponse{ID: req.ID, Word: req.Word, OK: added})
}

func (s *Server) handleRemove(req Request) {
	if req.Word == "" {
		s.sendError(req.ID, "Missing 'w' parameter", CodeBadRequest)
		return
	}
	removed := s.completer.RemoveWord(req.Word)
	log.Debugf("Remove %q: %v", req.Word, removed)
	s.send(WordResponse{ID: req.ID, Word: req.Word, OK: removed})
}

func (s *Server) handleStats(req Request) {
	stats := s.completer.Stats()
	stats["requests"] = s.requestCount
	if s.runtimeLoader != nil {
		stats["loadedChunks"] = s.runtimeLoader.CurrentChunks()
		if available, err := s.runtimeLoader.GetAvailableChunkCount(); err == nil {
			stats["availableChunks"] = available
		}
	}
	s.send(StatsResponse{ID: req.ID, Stats: stats})
}

func (s *Server) handleAction(req Request) {
	switch req.Action {
	case ActionReloadConfig:
		s.handleReloadConfig(req)
	case ActionGetInfo, ActionGetChunkCount, ActionSetSize, ActionGetOptions:
		s.handleDictionary(req)
	default:
		s.sendError(req.ID, fmt.Errorf("%w: action %q", ErrUnknownOp, req.Action).Error(), CodeBadRequest)
	}
}

func (s *Server) handleDictionary(req Request) {
	resp := DictionaryResponse{ID: req.ID, Status: "ok"}
	fail := func(err error) {
		log.Warnf("Dictionary %s failed: %v", req.Action, err)
		resp.Status = "error"
		resp.Error = err.Error()
		s.send(resp)
	}

	if s.runtimeLoader == nil {
		fail(errors.New("dictionary is not chunked"))
		return
	}

	switch req.Action {
	case ActionSetSize:
		if req.ChunkCount == nil {
			fail(errors.New("chunk_count is required for set_size"))
			return
		}
		if err := s.runtimeLoader.SetDictionarySize(*req.ChunkCount); err != nil {
			fail(err)
			return
		}
	case ActionGetOptions:
		options, err := s.runtimeLoader.GetDictionarySizeOptions()
		if err != nil {
			fail(err)
			return
		}
		resp.Options = options
	}

	available, err := s.runtimeLoader.GetAvailableChunkCount()
	if err != nil {
		fail(err)
		return
	}
	resp.AvailableChunks = available
	resp.CurrentChunks = s.runtimeLoader.CurrentChunks()
	s.send(resp)
}

func (s *Server) handleReloadConfig(req Request) {
	if s.configPath == "" {
		s.send(ConfigResponse{ID: req.ID, Status: "error", Error: "no config file in use"})
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Config reload failed: %v", err)
		s.send(ConfigResponse{ID: req.ID, Status: "error", Error: err.Error()})
		return
	}
	s.config = cfg
	s.completer.SetOptions(suggest.OptionsFromConfig(cfg))
	log.Debugf("Reloaded config from %s", s.configPath)
	s.send(ConfigResponse{ID: req.ID, Status: "ok"})
}

func newCompletionResponse(id string, suggestions []suggest.Suggestion, elapsed time.Duration) CompletionResponse {
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Rank: uint16(min(i+1, 65535))}
	}
	return CompletionResponse{
		ID:          id,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	}
}

// send encodes one response and flushes it.
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(CompletionError{ID: id, Error: message, Code: code})
}
