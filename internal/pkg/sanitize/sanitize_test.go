package sanitize

import (
	"strings"
	"testing"
)

func TestDescriptionClean(t *testing.T) {
	d := NewDescription()

	tests := []struct {
		name    string
		in      string
		keeps   []string
		strips  []string
	}{
		{
			name:   "script removed",
			in:     `<p>Hiring</p><script>alert("x")</script>`,
			keeps:  []string{"<p>Hiring</p>"},
			strips: []string{"<script", "alert("},
		},
		{
			name:   "event handlers removed",
			in:     `<p onclick="steal()">Apply <strong>now</strong></p>`,
			keeps:  []string{"Apply", "<strong>now</strong>"},
			strips: []string{"onclick", "steal"},
		},
		{
			name:   "formatting kept",
			in:     `<h2>Role</h2><ul><li>Go</li><li>SQL</li></ul><blockquote>remote</blockquote>`,
			keeps:  []string{"<h2>Role</h2>", "<li>Go</li>", "<blockquote>remote</blockquote>"},
			strips: nil,
		},
		{
			name:   "javascript href dropped",
			in:     `<a href="javascript:alert(1)">click</a>`,
			keeps:  []string{"click"},
			strips: []string{"javascript:"},
		},
		{
			name:   "https href kept",
			in:     `<a href="https://example.com/apply">apply</a>`,
			keeps:  []string{`href="https://example.com/apply"`},
			strips: nil,
		},
		{
			name:   "iframe removed",
			in:     `<p>ok</p><iframe src="https://evil.example"></iframe>`,
			keeps:  []string{"<p>ok</p>"},
			strips: []string{"<iframe"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Clean(tt.in)
			for _, want := range tt.keeps {
				if !strings.Contains(got, want) {
					t.Fatalf("output %q lost %q", got, want)
				}
			}
			for _, banned := range tt.strips {
				if strings.Contains(got, banned) {
					t.Fatalf("output %q kept %q", got, banned)
				}
			}
		})
	}
}

func TestDescriptionCleanTrimsWhitespace(t *testing.T) {
	d := NewDescription()
	if got := d.Clean("  <p>x</p>  "); got != "<p>x</p>" {
		t.Fatalf("expected trimmed output, got %q", got)
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText(`<h1>Role</h1><p>Build <strong>services</strong></p>`)
	if strings.Contains(got, "<") {
		t.Fatalf("plain text still contains markup: %q", got)
	}
	for _, want := range []string{"Role", "Build", "services"} {
		if !strings.Contains(got, want) {
			t.Fatalf("plain text lost %q: %q", want, got)
		}
	}
}
