package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/charmbracelet/log"
)

// Chunk files are little-endian:
//
//	int32  word count
//	repeated:
//	  uint16 word length in bytes
//	  []byte word
//	  uint16 rank (1 = most frequent)

// ErrCorruptChunk is wrapped when a chunk file cannot be decoded.
var ErrCorruptChunk = errors.New("corrupt chunk")

// Entry is one decoded chunk record.
type Entry struct {
	Word  string
	Score int
}

// ChunkFileName returns the file name for chunk id.
func ChunkFileName(id int) string {
	return fmt.Sprintf("dict_%04d.bin", id)
}

// WriteChunk encodes words, already in rank order, starting at rank
// firstRank.
func WriteChunk(w io.Writer, words []string, firstRank int) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word %d is %d bytes, longer than a chunk record allows", i, len(word))
		}
		rank := firstRank + i
		if rank > math.MaxUint16 {
			rank = math.MaxUint16
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(rank)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadChunk decodes every record of a chunk stream.
func ReadChunk(r io.Reader) ([]Entry, error) {
	reader := bufio.NewReader(r)

	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorruptChunk, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative word count %d", ErrCorruptChunk, count)
	}

	entries := make([]Entry, 0, min(int(count), 1<<16))
	for i := 0; i < int(count); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			return entries, fmt.Errorf("%w: word %d length: %v", ErrCorruptChunk, i, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return entries, fmt.Errorf("%w: word %d: %v", ErrCorruptChunk, i, err)
		}
		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return entries, fmt.Errorf("%w: word %d rank: %v", ErrCorruptChunk, i, err)
		}
		entries = append(entries, Entry{Word: string(wordBytes), Score: ScoreForRank(int(rank))})
	}
	return entries, nil
}

// readChunkHeader returns the word count stored in a chunk file.
func readChunkHeader(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var count int32
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return 0, fmt.Errorf("%w: header: %v", ErrCorruptChunk, err)
	}
	return int(count), nil
}

// SplitIntoChunks writes words, in rank order, into dir as chunk files of
// at most chunkSize words each and returns how many files were written.
func SplitIntoChunks(dir string, words []string, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		return 0, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return 0, err
	}

	written := 0
	for start := 0; start < len(words); start += chunkSize {
		end := min(start+chunkSize, len(words))
		name := filepath.Join(dir, ChunkFileName(written+1))

		file, err := os.Create(name)
		if err != nil {
			return written, err
		}
		err = WriteChunk(file, words[start:end], start+1)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written++
		log.Debugf("Wrote chunk %s with %d words", name, end-start)
	}
	return written, nil
}
