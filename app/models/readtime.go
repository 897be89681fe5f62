package models

import (
	"fmt"
	"strings"
)

// WordsPerMinute is the reading speed used for read time estimates.
const WordsPerMinute = 200

// ReadTime estimates the reading time of content as "N min read".
// Short or empty content still reports one minute.
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
