package dictionary

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// RuntimeLoader grows or shrinks the set of loaded chunks while serving.
type RuntimeLoader struct {
	loader *Loader
	mu     sync.Mutex
}

// DictionarySizeOption represents a dictionary size option
type DictionarySizeOption struct {
	ChunkCount int    `msgpack:"chunk_count"`
	WordCount  int    `msgpack:"word_count"`
	SizeLabel  string `msgpack:"size_label"`
}

// NewRuntimeLoader creates a new runtime loader
func NewRuntimeLoader(loader *Loader) *RuntimeLoader {
	return &RuntimeLoader{loader: loader}
}

// GetAvailableChunkCount returns the total number of available chunk files
func (rl *RuntimeLoader) GetAvailableChunkCount() (int, error) {
	chunks, err := rl.loader.GetAvailable()
	if err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// CurrentChunks returns the number of loaded chunks.
func (rl *RuntimeLoader) CurrentChunks() int {
	return len(rl.loader.GetLoadedIDs())
}

// SetDictionarySize loads or evicts chunks until targetChunks are loaded.
// Lower IDs are loaded first and higher IDs are evicted first.
func (rl *RuntimeLoader) SetDictionarySize(targetChunks int) error {
	if targetChunks < 1 {
		return fmt.Errorf("minimum dictionary size is 1 chunk")
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	available, err := rl.loader.GetAvailable()
	if err != nil {
		return err
	}
	if targetChunks > len(available) {
		return fmt.Errorf("requested %d chunks but only %d are available", targetChunks, len(available))
	}

	loadedIDs := rl.loader.GetLoadedIDs()
	current := len(loadedIDs)
	log.Debugf("Setting dictionary size: current=%d chunks, target=%d chunks", current, targetChunks)

	switch {
	case targetChunks > current:
		loaded := make(map[int]bool, current)
		for _, id := range loadedIDs {
			loaded[id] = true
		}
		for _, chunk := range available {
			if current >= targetChunks {
				break
			}
			if loaded[chunk.ID] {
				continue
			}
			if err := rl.loader.Load(chunk.ID); err != nil {
				log.Warnf("Failed to load chunk %d: %v", chunk.ID, err)
				continue
			}
			current++
		}
	case targetChunks < current:
		sort.Sort(sort.Reverse(sort.IntSlice(loadedIDs)))
		for _, id := range loadedIDs {
			if current <= targetChunks {
				break
			}
			if err := rl.loader.Evict(id); err != nil {
				log.Warnf("Failed to unload chunk %d: %v", id, err)
				continue
			}
			current--
		}
	}

	if current != targetChunks {
		return fmt.Errorf("dictionary holds %d chunks, wanted %d", current, targetChunks)
	}
	return nil
}

// GetDictionarySizeOptions returns the cumulative word count reached by
// loading the first n chunks, for every n.
func (rl *RuntimeLoader) GetDictionarySizeOptions() ([]DictionarySizeOption, error) {
	chunks, err := rl.loader.GetAvailable()
	if err != nil {
		return nil, err
	}

	options := make([]DictionarySizeOption, 0, len(chunks))
	totalWords := 0
	for i, chunk := range chunks {
		totalWords += chunk.WordCount
		options = append(options, DictionarySizeOption{
			ChunkCount: i + 1,
			WordCount:  totalWords,
			SizeLabel:  fmt.Sprintf("%dK words", totalWords/1000),
		})
	}
	return options, nil
}
