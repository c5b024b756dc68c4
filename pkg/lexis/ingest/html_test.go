package ingest

import (
	"reflect"
	"testing"
)

func TestExtractHTMLText(t *testing.T) {
	page := `<!doctype html>
<html><head><title>Song Title</title><style>p{color:red}</style></head>
<body>
<script>var lyrics = "hidden";</script>
<div class="lyrics">Look, if you had<br>one shot<p>or one opportunity</p></div>
</body></html>`

	got := Tokenize(ExtractHTMLText(page))
	want := []string{"look", "if", "you", "had", "one", "shot", "or", "one", "opportunity"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %q, want %q", got, want)
	}
}

func TestExtractHTMLTextBlockBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"<div>one shot<p>or one</p></div>", []string{"one", "shot", "or", "one"}},
		{"<h1>Title</h1>verse<div>line</div>", []string{"title", "verse", "line"}},
		{"<ul><li>a</li><li>b</li></ul>", []string{"a", "b"}},
		{"<table><tr><td>x</td><td>y</td></tr></table>", []string{"x", "y"}},
		{"in<b>line</b>", []string{"inline"}},
	}
	for _, tt := range tests {
		if got := Tokenize(ExtractHTMLText(tt.in)); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(ExtractHTMLText(%q)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractHTMLTextPlain(t *testing.T) {
	if got := ExtractHTMLText("just words"); got != "just words" {
		t.Errorf("got %q", got)
	}
}

func TestIsHTMLName(t *testing.T) {
	tests := map[string]bool{
		"song.html": true,
		"SONG.HTM":  true,
		"song.txt":  false,
		"html":      false,
	}
	for name, want := range tests {
		if got := IsHTMLName(name); got != want {
			t.Errorf("IsHTMLName(%q) = %v, want %v", name, got, want)
		}
	}
}
