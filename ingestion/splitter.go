package ingestion

import "strings"

// defaultChunkRunes is the target chunk size. Bounded so chunks fit rerank
// prompts comfortably.
const defaultChunkRunes = 1000

// splitDocument breaks a document into chunks of at most maxRunes runes.
// Paragraph boundaries are preserved where possible; paragraphs longer than
// maxRunes are hard-split on whitespace.
func splitDocument(text string, maxRunes int) []string {
	if maxRunes < 1 {
		maxRunes = defaultChunkRunes
	}

	var chunks []string
	var current strings.Builder
	currentRunes := 0

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		currentRunes = 0
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		runes := len([]rune(paragraph))
		if runes > maxRunes {
			flush()
			for _, piece := range hardSplit(paragraph, maxRunes) {
				chunks = append(chunks, piece)
			}
			continue
		}

		if currentRunes+runes > maxRunes {
			flush()
		}
		if currentRunes > 0 {
			current.WriteString("\n\n")
			currentRunes += 2
		}
		current.WriteString(paragraph)
		currentRunes += runes
	}
	flush()

	return chunks
}

// hardSplit breaks an oversized paragraph on word boundaries.
func hardSplit(paragraph string, maxRunes int) []string {
	var pieces []string
	var current strings.Builder
	currentRunes := 0

	for _, word := range strings.Fields(paragraph) {
		runes := len([]rune(word))
		if currentRunes > 0 && currentRunes+1+runes > maxRunes {
			pieces = append(pieces, current.String())
			current.Reset()
			currentRunes = 0
		}
		if currentRunes > 0 {
			current.WriteByte(' ')
			currentRunes++
		}
		current.WriteString(word)
		currentRunes += runes
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}

	return pieces
}
