package telegram

import (
	"strings"
	"testing"

	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
)

func TestEscapeMdV2(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "dots", in: "hello.", want: "hello\\."},
		{name: "exclamation", in: "Done!", want: "Done\\!"},
		{name: "parentheses", in: "(1942)", want: "\\(1942\\)"},
		{name: "brackets", in: "[link]", want: "\\[link\\]"},
		{name: "underscores", in: "foo_bar", want: "foo\\_bar"},
		{name: "stars", in: "*bold*", want: "\\*bold\\*"},
		{name: "mixed", in: "Casablanca (1942) - 8.5*", want: "Casablanca \\(1942\\) \\- 8\\.5\\*"},
		{name: "all specials", in: "_*[]()~`>#+-=|{}.!", want: "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeMdV2(tt.in)
			if got != tt.want {
				t.Errorf("EscapeMdV2(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBold(t *testing.T) {
	got := FormatBold("Casablanca (1942)")
	want := "*Casablanca \\(1942\\)*"
	if got != want {
		t.Errorf("FormatBold = %q, want %q", got, want)
	}
}

func TestFormatItalic(t *testing.T) {
	got := FormatItalic("description")
	want := "_description_"
	if got != want {
		t.Errorf("FormatItalic = %q, want %q", got, want)
	}
}

func TestFormatLink(t *testing.T) {
	got := FormatLink("Open on IMDb", "https://www.imdb.com/title/tt0034583")
	want := "[Open on IMDb](https://www.imdb.com/title/tt0034583)"
	if got != want {
		t.Errorf("FormatLink = %q, want %q", got, want)
	}

	got = FormatLink("x", "https://example.com/a)b")
	if !strings.HasSuffix(got, "(https://example.com/a\\)b)") {
		t.Errorf("expected ')' escaped inside link, got %q", got)
	}
}

func TestFormatMovieCaption(t *testing.T) {
	m := omdb.MovieDetail{
		ID:            "tt0034583",
		Title:         "Casablanca",
		Year:          "1942",
		Runtime:       "102 min",
		Actors:        "Humphrey Bogart, Ingrid Bergman",
		IMDbRating:    "8.5",
		Plot:          "A cynical expatriate.",
		DetailPageURL: "https://www.imdb.com/title/tt0034583",
	}

	got := formatMovieCaption(m)
	for _, want := range []string{
		"*Casablanca* \\(1942\\)",
		"102 min · IMDb 8\\.5",
		"Starring: Humphrey Bogart, Ingrid Bergman",
		"_A cynical expatriate\\._",
		"[Open on IMDb](https://www.imdb.com/title/tt0034583)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("caption missing %q:\n%s", want, got)
		}
	}
}

func TestFormatMovieCaption_SkipsMissingFields(t *testing.T) {
	m := omdb.MovieDetail{Title: "Obscure", Year: "N/A", Runtime: "N/A", IMDbRating: "N/A", Plot: "N/A"}
	got := formatMovieCaption(m)
	if strings.Contains(got, "N/A") || strings.Contains(got, "IMDb") {
		t.Errorf("expected N/A fields skipped, got %q", got)
	}
	if got != "*Obscure*\n" {
		t.Errorf("unexpected caption %q", got)
	}
}

func TestFormatMovieCaption_TruncatesPlot(t *testing.T) {
	m := omdb.MovieDetail{Title: "Long", Plot: strings.Repeat("word ", 200)}
	got := formatMovieCaption(m)
	if len([]rune(got)) > 1024 {
		t.Errorf("caption exceeds telegram limit: %d runes", len([]rune(got)))
	}
	if !strings.Contains(got, "…") {
		t.Error("expected ellipsis on truncated plot")
	}
}

func TestFormatMoviePlain(t *testing.T) {
	m := omdb.MovieDetail{Title: "Casablanca", Year: "1942", IMDbRating: "8.5", DetailPageURL: "https://www.imdb.com/title/tt0034583"}
	got := formatMoviePlain(m)
	want := "Casablanca (1942)\nIMDb rating: 8.5\n\nhttps://www.imdb.com/title/tt0034583"
	if got != want {
		t.Errorf("formatMoviePlain = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	if got := truncate("héllo wörld", 6); got != "héllo…" {
		t.Errorf("truncate cut = %q", got)
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in        string
		wantTitle string
		wantYear  string
	}{
		{"Casablanca", "Casablanca", ""},
		{"Casablanca 1942", "Casablanca", "1942"},
		{"Casablanca (1942)", "Casablanca", "1942"},
		{"  the   matrix  1999 ", "the matrix", "1999"},
		{"1917", "1917", ""},
		{"1917 2019", "1917", "2019"},
		{"Blade Runner 2049", "Blade Runner 2049", ""},
		{"Apollo 13", "Apollo 13", ""},
		{"Movie 0042", "Movie 0042", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			title, year := parseQuery(tt.in)
			if title != tt.wantTitle || year != tt.wantYear {
				t.Errorf("parseQuery(%q) = (%q, %q), want (%q, %q)", tt.in, title, year, tt.wantTitle, tt.wantYear)
			}
		})
	}
}
