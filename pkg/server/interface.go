/*
Package server implements msgpack IPC for the word trie.

Clients write a stream of msgpack maps to stdin and read one msgpack map
per request from stdout. Logs go to stderr so they never corrupt the
stream. The first value written is a ready message:

	{"status": "ready"}

# Requests

Every request carries an "id" that is echoed back. A request with a prefix
and no op is a completion request:

	{"id": "req_001", "p": "ame", "l": 24}

The reply lists full words, most frequent first, with their position as
rank:

	{"id": "req_001", "s": [{"w": "amenity", "r": 1}, {"w": "america", "r": 2}], "c": 2, "t": 145}

Other operations are selected with "op":

	{"id": "2", "op": "suggest", "w": "brd", "l": 5}
	{"id": "3", "op": "contains", "w": "bird"}
	{"id": "4", "op": "insert", "w": "birb", "f": 120}
	{"id": "5", "op": "remove", "w": "birb"}
	{"id": "6", "op": "stats"}

Chunked dictionaries can be resized at runtime with "action":

	{"id": "dict_001", "action": "set_size", "chunk_count": 5}
	{"id": "dict_002", "action": "get_options"}
	{"id": "dict_003", "action": "get_info"}

and the config file can be re-read with:

	{"id": "cfg_001", "action": "reload_config"}

Failures are reported as {"id": ..., "e": message, "c": code}.
*/
package server

import (
	"errors"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
)

// ErrUnknownOp is returned for a request naming no known op or action.
var ErrUnknownOp = errors.New("unknown op")

// Ops understood by the server.
const (
	OpComplete = "complete"
	OpSuggest  = "suggest"
	OpContains = "contains"
	OpInsert   = "insert"
	OpRemove   = "remove"
	OpStats    = "stats"
)

// Dictionary and config actions.
const (
	ActionGetInfo       = "get_info"
	ActionSetSize       = "set_size"
	ActionGetOptions    = "get_options"
	ActionGetChunkCount = "get_chunk_count"
	ActionReloadConfig  = "reload_config"
)

// Error codes, modeled on HTTP status codes.
const (
	CodeBadRequest = 400
	CodeInternal   = 500
)

// Request is the union of every request shape. Fields that do not apply to
// an op are ignored.
type Request struct {
	ID         string `msgpack:"id"`
	Op         string `msgpack:"op,omitempty"`
	Prefix     string `msgpack:"p,omitempty"`
	Limit      int    `msgpack:"l,omitempty"`
	Word       string `msgpack:"w,omitempty"`
	Frequency  int    `msgpack:"f,omitempty"`
	Action     string `msgpack:"action,omitempty"`
	ChunkCount *int   `msgpack:"chunk_count,omitempty"`
}

// CompletionRequest - minimal completion request
type CompletionRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse answers complete and suggest. TimeTaken is in
// microseconds. Known is set by suggest when the word is already stored and
// no corrections were looked up.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
	Known       bool                   `msgpack:"k,omitempty"`
}

// WordResponse answers contains, insert and remove. OK reports whether the
// word was stored, newly added or removed respectively.
type WordResponse struct {
	ID   string `msgpack:"id"`
	Word string `msgpack:"w"`
	OK   bool   `msgpack:"ok"`
}

// StatsResponse answers stats.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID              string                            `msgpack:"id"`
	Status          string                            `msgpack:"status"`
	Error           string                            `msgpack:"error,omitempty"`
	CurrentChunks   int                               `msgpack:"current_chunks,omitempty"`
	AvailableChunks int                               `msgpack:"available_chunks,omitempty"`
	Options         []dictionary.DictionarySizeOption `msgpack:"options,omitempty"`
}

// ConfigResponse - config operation response
type ConfigResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
}

// CompletionError holds basic error information for any failed request
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
