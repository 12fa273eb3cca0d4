package metrics

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
)

// CountTokens estimates the number of tokens in text with the GPT-4
// encoding. Other providers tokenize differently; the estimate is close
// enough for usage tracking. Falls back to four characters per token when
// the encoding is unavailable.
func CountTokens(text string) int {
	codecOnce.Do(func() {
		c, err := tokenizer.ForModel(tokenizer.GPT4)
		if err == nil {
			codec = c
		}
	})

	if codec == nil {
		return len(text) / 4
	}
	count, err := codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return count
}
