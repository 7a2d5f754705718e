package llm

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildContractPrompt_EmbedsText(t *testing.T) {
	prompt := BuildContractPrompt("This agreement is made on June 1.")
	if !strings.Contains(prompt, "This agreement is made on June 1.") {
		t.Fatalf("prompt missing contract text")
	}
	if strings.Contains(prompt, contractTextPlaceholder) {
		t.Fatalf("placeholder left unreplaced")
	}
	if !strings.Contains(prompt, "summary") {
		t.Fatalf("prompt missing schema description")
	}
}

func TestBuildContractPrompt_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", MaxContractChars+5000)
	prompt := BuildContractPrompt(long)

	if strings.Contains(prompt, strings.Repeat("a", MaxContractChars+1)) {
		t.Fatalf("prompt contains more than MaxContractChars of contract text")
	}
	if !strings.Contains(prompt, strings.Repeat("a", MaxContractChars)) {
		t.Fatalf("prompt lost text below the cap")
	}
}

func TestBuildContractPrompt_TruncationKeepsValidUTF8(t *testing.T) {
	// Place a three-byte rune so it straddles the byte cap.
	long := strings.Repeat("a", MaxContractChars-1) + strings.Repeat("€", 100)
	prompt := BuildContractPrompt(long)

	if !utf8.ValidString(prompt) {
		t.Fatalf("prompt contains invalid UTF-8 after truncation")
	}
	if !strings.Contains(prompt, strings.Repeat("a", MaxContractChars-1)) {
		t.Fatalf("prompt lost text below the cap")
	}
}

func TestBuildContractPrompt_ShortTextUntouched(t *testing.T) {
	text := "short contract"
	if !strings.Contains(BuildContractPrompt(text), text) {
		t.Fatalf("short text should pass through unmodified")
	}
}
