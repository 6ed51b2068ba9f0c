package dictionary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoChunks is returned when a directory holds no chunk files.
	ErrNoChunks = errors.New("no chunk files found")
	// ErrChunkNotLoaded is returned when evicting a chunk that is not loaded.
	ErrChunkNotLoaded = errors.New("chunk is not loaded")
)

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	LoadedWords     int
	LoadedChunks    int
	AvailableChunks int
	MaxFrequency    int
}

// Loader moves chunk files in and out of a Sink. A word found in more
// than one chunk belongs to the first chunk that loaded it, and only
// evicting that chunk removes it.
type Loader struct {
	dirPath string
	sink    Sink

	mu           sync.RWMutex
	files        map[int]string
	loaded       map[int][]string
	owner        map[string]int
	loadedWords  int
	maxFrequency int
}

// NewLoader creates a loader for the chunk files in dirPath.
func NewLoader(dirPath string, sink Sink) *Loader {
	return &Loader{
		dirPath: dirPath,
		sink:    sink,
		files:   make(map[int]string),
		loaded:  make(map[int][]string),
		owner:   make(map[string]int),
	}
}

// GetAvailable scans the directory for chunk files, sorted by ID. The ID is
// the numeric part of the name, padded or not; when two files share an ID
// the first in name order wins. Load opens the files found here.
func (l *Loader) GetAvailable() ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(l.dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	seen := make(map[int]string, len(files))
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil || id < 0 {
			continue
		}
		if prev, dup := seen[id]; dup {
			log.Warnf("Ignoring chunk %s: ID %d already used by %s", file, id, prev)
			continue
		}
		seen[id] = file
		count, err := readChunkHeader(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			count = 0
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: count})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})

	l.mu.Lock()
	l.files = seen
	l.mu.Unlock()
	return chunks, nil
}

// chunkPath returns the file holding chunk id, scanning the directory
// when the ID has not been seen yet.
func (l *Loader) chunkPath(id int) string {
	l.mu.RLock()
	path, ok := l.files[id]
	l.mu.RUnlock()
	if ok {
		return path
	}

	if _, err := l.GetAvailable(); err != nil {
		log.Warnf("Scanning %s: %v", l.dirPath, err)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if path, ok := l.files[id]; ok {
		return path
	}
	return filepath.Join(l.dirPath, ChunkFileName(id))
}

// Load reads chunk id into the sink. Loading a loaded chunk is a no-op.
// Words the sink already holds stay with their current owner: a chunk
// never claims a word added by hand or by an earlier chunk.
func (l *Loader) Load(id int) error {
	if l.isLoaded(id) {
		return nil
	}
	filename := l.chunkPath(id)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.loaded[id]; ok {
		return nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	entries, err := ReadChunk(file)
	if err != nil && len(entries) == 0 {
		return fmt.Errorf("chunk %d: %w", id, err)
	}
	if err != nil {
		log.Warnf("Chunk %d truncated after %d words: %v", id, len(entries), err)
	}

	owned := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, taken := l.owner[e.Word]; taken || l.sink.Contains(e.Word) {
			continue
		}
		l.sink.AddWord(e.Word, e.Score)
		l.owner[e.Word] = id
		owned = append(owned, e.Word)
		if e.Score > l.maxFrequency {
			l.maxFrequency = e.Score
		}
	}
	l.loaded[id] = owned
	l.loadedWords += len(owned)

	log.Debugf("Chunk %d loaded: %d words", id, len(owned))
	return nil
}

// Evict removes every word chunk id contributed.
func (l *Loader) Evict(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	words, ok := l.loaded[id]
	if !ok {
		return fmt.Errorf("chunk %d: %w", id, ErrChunkNotLoaded)
	}

	for _, w := range words {
		if !l.sink.RemoveWord(w) {
			log.Debugf("Word %q from chunk %d was already gone", w, id)
		}
		delete(l.owner, w)
	}
	delete(l.loaded, id)
	l.loadedWords -= len(words)

	log.Debugf("Unloaded chunk %d (%d words)", id, len(words))
	return nil
}

// LoadUpTo loads chunks in ID order until at least maxWords words are
// loaded. Zero loads every chunk. Chunks that fail are logged and skipped.
func (l *Loader) LoadUpTo(maxWords int) (int, error) {
	chunks, err := l.GetAvailable()
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoChunks, l.dirPath)
	}

	loadedChunks := 0
	for _, chunk := range chunks {
		if maxWords > 0 && l.loadedWordCount() >= maxWords {
			break
		}
		if err := l.Load(chunk.ID); err != nil {
			log.Errorf("Failed to load chunk %d: %v", chunk.ID, err)
			continue
		}
		loadedChunks++
	}
	return loadedChunks, nil
}

func (l *Loader) isLoaded(id int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.loaded[id]
	return ok
}

func (l *Loader) loadedWordCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedWords
}

// GetLoadedIDs returns the loaded chunk IDs in ascending order.
func (l *Loader) GetLoadedIDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int, 0, len(l.loaded))
	for id := range l.loaded {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// GetStats returns current loading statistics
func (l *Loader) GetStats() LoaderStats {
	l.mu.RLock()
	stats := LoaderStats{
		LoadedWords:  l.loadedWords,
		LoadedChunks: len(l.loaded),
		MaxFrequency: l.maxFrequency,
	}
	l.mu.RUnlock()

	if chunks, err := l.GetAvailable(); err == nil {
		stats.AvailableChunks = len(chunks)
	}
	return stats
}
