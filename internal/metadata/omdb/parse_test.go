package omdb

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const casablancaSearch = `{"Search":[{"Title":"Casablanca","Year":"1942","imdbID":"tt0034583","Type":"movie","Poster":"https://m.media-amazon.com/images/M/casablanca.jpg"}],"totalResults":"1","Response":"True"}`

const casablancaDetail = `{"Title":"Casablanca","Year":"1942","Rated":"PG","Released":"23 Jan 1943","Runtime":"102 min","Genre":"Drama, Romance, War","Director":"Michael Curtiz","Actors":"Humphrey Bogart, Ingrid Bergman, Paul Henreid","Plot":"A cynical expatriate American cafe owner struggles to decide whether or not to help his former lover.","Poster":"https://m.media-amazon.com/images/M/casablanca.jpg","Ratings":[{"Source":"Internet Movie Database","Value":"8.5/10"}],"Metascore":"100","imdbRating":"8.5","imdbVotes":"587,983","imdbID":"tt0034583","Type":"movie","Response":"True"}`

func TestParseSearchIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr error
	}{
		{
			name: "single hit",
			body: casablancaSearch,
			want: []string{"tt0034583"},
		},
		{
			name: "order preserved",
			body: `{"Search":[{"imdbID":"tt3"},{"imdbID":"tt1"},{"imdbID":"tt2"}],"totalResults":"3","Response":"True"}`,
			want: []string{"tt3", "tt1", "tt2"},
		},
		{
			name: "empty array",
			body: `{"Search":[],"Response":"True"}`,
			want: []string{},
		},
		{
			name: "not found",
			body: `{"Response":"False","Error":"Movie not found!"}`,
			want: nil,
		},
		{
			name: "too many results is not an error",
			body: `{"Response":"False","Error":"Too many results."}`,
			want: nil,
		},
		{
			name: "search field absent",
			body: `{"Response":"True"}`,
			want: nil,
		},
		{
			name:    "rate limited",
			body:    `{"Response":"False","Error":"Request limit reached!"}`,
			wantErr: ErrRateLimitExceeded,
		},
		{
			name:    "rate limit text embedded",
			body:    `{"Response":"False","Error":"Daily Request limit reached! Try tomorrow."}`,
			wantErr: ErrRateLimitExceeded,
		},
		{
			name:    "malformed",
			body:    `{"Search":[`,
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSearchIDs(tt.body)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDetail(t *testing.T) {
	t.Parallel()

	got, err := ParseDetail(casablancaDetail)
	require.NoError(t, err)

	assert.Equal(t, MovieDetail{
		ID:            "tt0034583",
		Title:         "Casablanca",
		Year:          "1942",
		PosterURL:     "https://m.media-amazon.com/images/M/casablanca.jpg",
		Runtime:       "102 min",
		Actors:        "Humphrey Bogart, Ingrid Bergman, Paul Henreid",
		IMDbRating:    "8.5",
		Plot:          "A cynical expatriate American cafe owner struggles to decide whether or not to help his former lover.",
		Genre:         "Drama, Romance, War",
		Director:      "Michael Curtiz",
		DetailPageURL: "https://www.imdb.com/title/tt0034583",
	}, got)
	assert.True(t, got.HasPoster())
}

func TestParseDetail_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"malformed", `not json`, ErrMalformedResponse},
		{"incorrect id", `{"Response":"False","Error":"Incorrect IMDb ID."}`, ErrDetailUnavailable},
		{"rate limited", `{"Response":"False","Error":"Request limit reached!"}`, ErrRateLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDetail(tt.body)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseDetail_MissingFieldsAreEmpty(t *testing.T) {
	t.Parallel()

	got, err := ParseDetail(`{"imdbID":"tt1","Title":"Only Title","Poster":"N/A"}`)
	require.NoError(t, err)
	assert.Equal(t, "Only Title", got.Title)
	assert.Empty(t, got.Runtime)
	assert.False(t, got.HasPoster())
	assert.Equal(t, "https://www.imdb.com/title/tt1", got.DetailPageURL)
}

func TestKnown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"N/A", false},
		{"102 min", true},
		{"n/a", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Known(tt.in), "Known(%q)", tt.in)
	}
}

func TestSearchURL(t *testing.T) {
	t.Parallel()

	raw, err := SearchURL(DefaultBaseURL, "key", "Casablanca", "1942")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.omdbapi.com", u.Host)
	q := u.Query()
	assert.Equal(t, "key", q.Get("apikey"))
	assert.Equal(t, "Casablanca", q.Get("s"))
	assert.Equal(t, "movie", q.Get("type"))
	assert.Equal(t, "1942", q.Get("y"))
}

func TestSearchURL_OmitsBlankYear(t *testing.T) {
	t.Parallel()

	for _, year := range []string{"", "   "} {
		raw, err := SearchURL(DefaultBaseURL, "key", "The Thing & Co", year)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		_, hasYear := u.Query()["y"]
		assert.False(t, hasYear, "y must be omitted for year %q", year)
		assert.Equal(t, "The Thing & Co", u.Query().Get("s"))
		assert.NotContains(t, raw, "null")
	}
}

func TestDetailsURL(t *testing.T) {
	t.Parallel()

	raw, err := DetailsURL("http://127.0.0.1:9999/", "key", "tt0034583")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "tt0034583", u.Query().Get("i"))
	assert.Equal(t, "key", u.Query().Get("apikey"))
}

func TestDetailPageURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://www.imdb.com/title/tt0034583", DetailPageURL("tt0034583"))
	assert.Empty(t, DetailPageURL(""))
}
