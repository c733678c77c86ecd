// Package chunker splits document text into overlapping fragments small
// enough to embed and cite independently.
package chunker

import "fmt"

// Config controls fragment sizing. Size and Overlap are counted in runes
// so multi-byte text never gets cut mid-character.
type Config struct {
	Size    int // Maximum runes per chunk.
	Overlap int // Runes shared between consecutive chunks.
}

// DefaultConfig returns the standard 1000/150 splitting configuration.
func DefaultConfig() Config {
	return Config{Size: 1000, Overlap: 150}
}

func (c Config) validate() Config {
	if c.Size <= 0 {
		c.Size = DefaultConfig().Size
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		c.Overlap = DefaultConfig().Overlap
		if c.Overlap >= c.Size {
			c.Overlap = c.Size / 4
		}
	}
	return c
}

// Chunk is one fragment of a document. Start and End are rune offsets
// into the original text, so chunks from one document are contiguous and
// consecutive chunks share exactly Config.Overlap runes.
type Chunk struct {
	ID         string
	DocumentID string
	Seq        int
	Text       string
	Start      int
	End        int
}

// boundaries are tried in order when deciding where a chunk should end:
// paragraph break, line break, sentence end, word gap. The separator stays
// with the left chunk so concatenation reproduces the original text.
var boundaries = [][]rune{
	[]rune("\n\n"),
	[]rune("\n"),
	[]rune(". "),
	[]rune(" "),
}

// Split cuts text into chunks of at most cfg.Size runes with cfg.Overlap
// runes shared between neighbours, preferring natural break points over
// hard cuts. It is deterministic, never emits an empty chunk, and never
// drops trailing text.
func Split(docID, text string, cfg Config) []Chunk {
	cfg = cfg.validate()

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	var chunks []Chunk
	start := 0
	for seq := 0; ; seq++ {
		end := start + cfg.Size
		if end >= n {
			end = n
		} else {
			end = adjustToBoundary(runes, start, end, cfg)
		}

		chunks = append(chunks, Chunk{
			ID:         fmt.Sprintf("%s#%d", docID, seq),
			DocumentID: docID,
			Seq:        seq,
			Text:       string(runes[start:end]),
			Start:      start,
			End:        end,
		})

		if end >= n {
			return chunks
		}
		start = end - cfg.Overlap
	}
}

// adjustToBoundary moves a proposed chunk end back to the nearest natural
// break, scanning separators from strongest to weakest. The cut is never
// moved into the first half of the window, which also keeps it clear of
// the overlap region so chunks always advance.
func adjustToBoundary(runes []rune, start, proposed int, cfg Config) int {
	floor := start + cfg.Size/2
	if min := start + cfg.Overlap + 1; floor < min {
		floor = min
	}
	if floor >= proposed {
		return proposed
	}

	for _, sep := range boundaries {
		if cut := lastCut(runes, floor, proposed, sep); cut > 0 {
			return cut
		}
	}
	return proposed
}

// lastCut finds the latest position in (floor, hi] where a chunk may end
// immediately after sep, or 0 if the separator does not occur there.
func lastCut(runes []rune, floor, hi int, sep []rune) int {
	for cut := hi; cut > floor; cut-- {
		if cut-len(sep) < 0 {
			break
		}
		if runesEqual(runes[cut-len(sep):cut], sep) {
			return cut
		}
	}
	return 0
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
