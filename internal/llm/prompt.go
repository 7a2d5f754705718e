package llm

import (
	_ "embed"
	"strings"
	"unicode/utf8"
)

//go:embed prompts/contract_v1.txt
var contractPromptV1 string

// MaxContractChars caps how much contract text is included in the prompt.
// Longer documents are silently cut, not summarized in pieces.
const MaxContractChars = 30000

const contractTextPlaceholder = "{{CONTRACT_TEXT}}"

// BuildContractPrompt renders the fixed contract-analysis prompt for the
// given text, truncated to MaxContractChars. The template is not configurable
// per call.
func BuildContractPrompt(text string) string {
	if len(text) > MaxContractChars {
		cut := MaxContractChars
		// Never split a multi-byte rune at the boundary.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return strings.Replace(contractPromptV1, contractTextPlaceholder, text, 1)
}
