// Package tui provides the Bubble Tea client shell.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines no wider than width, measuring display
// cells rather than runes. Words wider than the limit are split hard.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		wordWidth := runewidth.StringWidth(word)
		if wordWidth > width {
			if lineWidth > 0 {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
			for _, chunk := range splitWord(word, width) {
				lines = append(lines, chunk)
			}
			continue
		}
		switch {
		case lineWidth == 0:
			line.WriteString(word)
			lineWidth = wordWidth
		case lineWidth+1+wordWidth <= width:
			line.WriteString(" ")
			line.WriteString(word)
			lineWidth += 1 + wordWidth
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineWidth = wordWidth
		}
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func splitWord(word string, width int) []string {
	var chunks []string
	var chunk strings.Builder
	chunkWidth := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if chunkWidth+rw > width && chunkWidth > 0 {
			chunks = append(chunks, chunk.String())
			chunk.Reset()
			chunkWidth = 0
		}
		chunk.WriteRune(r)
		chunkWidth += rw
	}
	if chunkWidth > 0 {
		chunks = append(chunks, chunk.String())
	}
	return chunks
}
