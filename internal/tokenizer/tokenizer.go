// Package tokenizer estimates token counts for rendered documents.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	// DefaultModel is used when no model is configured.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	errorFallbackEncodingFormat = "initialize fallback tokenizer: %w"
	errorDefaultEncodingFormat  = "initialize default tokenizer: %w"
)

var (
	errNilCounter  = errors.New("nil tokenizer counter")
	errNilEncoding = errors.New("nil tiktoken encoding")
)

var openAIModelPrefixes = []string{
	"gpt-",
	"o1",
	"o3",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

// encodingCounter counts the tiktoken tokens of a repository document.
type encodingCounter struct {
	encoding *tiktoken.Tiktoken
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errNilEncoding
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

// NewCounter returns a Counter for the requested model and the name the count
// is reported under. OpenAI models use their own encoding when tiktoken knows
// it; every other model is counted with cl100k_base.
func NewCounter(cfg Config) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	lowerModel := strings.ToLower(model)

	if isOpenAIModel(lowerModel) {
		encoding, err := tiktoken.EncodingForModel(lowerModel)
		if err == nil && encoding != nil {
			return encodingCounter{encoding: encoding}, model, nil
		}
		fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
		if fallbackErr != nil {
			return nil, "", fmt.Errorf(errorFallbackEncodingFormat, fallbackErr)
		}
		return encodingCounter{encoding: fallback}, defaultEncodingName, nil
	}

	encoding, err := tiktoken.GetEncoding(defaultEncodingName)
	if err != nil {
		return nil, "", fmt.Errorf(errorDefaultEncodingFormat, err)
	}
	return encodingCounter{encoding: encoding}, defaultEncodingName, nil
}

func isOpenAIModel(model string) bool {
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// CountDocument counts the tokens of a rendered document.
func CountDocument(counter Counter, document string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	return counter.CountString(document)
}
