package extract

import "strings"

const (
	// DefaultChunkWords and DefaultOverlapWords size windows for downstream
	// consumers with bounded input capacity.
	DefaultChunkWords   = 4000
	DefaultOverlapWords = 1000
)

// ChunkWords splits text into overlapping word windows. Text at or under
// windowWords words comes back as a single chunk, unchanged. Successive
// windows start windowWords-overlapWords words apart; the final window ends
// exactly at the last word, so it may be shorter and may overlap its
// predecessor by more than overlapWords. Pure function of its input.
func ChunkWords(text string, windowWords, overlapWords int) []string {
	if windowWords <= 0 {
		windowWords = DefaultChunkWords
	}
	words := strings.Fields(text)
	if len(words) <= windowWords {
		return []string{text}
	}

	step := windowWords - overlapWords
	if step <= 0 {
		step = windowWords
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + windowWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
