package service

import "strings"

const DefaultChunkWords = 700

// ChunkWords splits text on whitespace into consecutive, non-overlapping
// chunks of size words each. The last chunk may be shorter. Empty text
// yields no chunks.
func ChunkWords(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkWords
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+size-1)/size)
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
