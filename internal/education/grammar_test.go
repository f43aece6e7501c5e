package education

import (
	"strings"
	"testing"
)

func TestSplitQuestionText(t *testing.T) {
	tests := []struct {
		question   string
		wantBefore string
		wantAfter  string
	}{
		{"I ___ to school", "I", "to school"},
		{"___ to school", "", "to school"},
		{"I go ___", "I go", ""},
		{"no blank here", "no blank here", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		before, after := SplitQuestionText(tt.question)
		if before != tt.wantBefore || after != tt.wantAfter {
			t.Errorf("SplitQuestionText(%q) = (%q, %q), want (%q, %q)",
				tt.question, before, after, tt.wantBefore, tt.wantAfter)
		}
	}
}

func TestJoinQuestionText(t *testing.T) {
	tests := []struct {
		before, after, want string
	}{
		{"I", "to school", "I ___ to school"},
		{"", "to school", "___ to school"},
		{"I go", "", "I go ___"},
		{"", "", "___"},
	}

	for _, tt := range tests {
		if got := JoinQuestionText(tt.before, tt.after); got != tt.want {
			t.Errorf("JoinQuestionText(%q, %q) = %q, want %q", tt.before, tt.after, got, tt.want)
		}
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	questions := []string{
		"I ___ to school",
		"___ is my name",
		"She runs ___",
	}
	for _, q := range questions {
		before, after := SplitQuestionText(q)
		if got := JoinQuestionText(before, after); got != q {
			t.Errorf("round trip of %q gave %q", q, got)
		}
	}
}

func TestFilterOptions(t *testing.T) {
	got := FilterOptions([]string{"go", "goes", "   ", "went"})
	want := []string{"go", "goes", "went"}
	if len(got) != len(want) {
		t.Fatalf("got %d options, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("option[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterOptionsKeepsOriginalText(t *testing.T) {
	got := FilterOptions([]string{"  padded  ", ""})
	if len(got) != 1 || got[0] != "  padded  " {
		t.Errorf("FilterOptions trimmed kept entries: %q", got)
	}
}

// Blank middle options shift later answers down, so an index pointing at
// the original position can land past the end of the filtered list. The
// filter deliberately does not remap or reject the index.
func TestFilterOptionsIndexCanOutliveList(t *testing.T) {
	options := FilterOptions([]string{"a", "b", "", "d"})
	if len(options) != 3 {
		t.Fatalf("got %d options, want 3", len(options))
	}
	correctOption := 3 // chosen against the unfiltered form
	if correctOption < len(options) {
		t.Fatal("test premise broken: index should exceed filtered list")
	}
}

func TestValidTelegramURL(t *testing.T) {
	valid := []string{
		"https://t.me/lingua_channel/42",
		"http://t.me/video",
		"https://telegram.me/some/video",
		"https://web.telegram.org/k/",
	}
	for _, u := range valid {
		if !ValidTelegramURL(u) {
			t.Errorf("ValidTelegramURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"https://youtube.com/watch?v=x",
		"t.me/missing-scheme",
		"https://example.com/t.me/fake",
		"",
	}
	for _, u := range invalid {
		if ValidTelegramURL(u) {
			t.Errorf("ValidTelegramURL(%q) = true, want false", u)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("RenderMarkdown returned error: %v", err)
	}
	out := string(html)
	for _, want := range []string{"<h1", "Heading", "<strong>bold</strong>"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered markdown missing %q: %s", want, out)
		}
	}
}
