package omdb

// SearchHit is one entry of a search response. Only ID is used downstream.
type SearchHit struct {
	ID     string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// MovieDetail is the aggregated record returned to presentation layers.
type MovieDetail struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Year          string `json:"year"`
	PosterURL     string `json:"poster_url"`
	Runtime       string `json:"runtime"`
	Actors        string `json:"actors"`
	IMDbRating    string `json:"imdb_rating"`
	Plot          string `json:"plot"`
	Genre         string `json:"genre,omitempty"`
	Director      string `json:"director,omitempty"`
	DetailPageURL string `json:"detail_page_url"`
}

// Known reports whether an OMDb field carries a value.
// OMDb uses "N/A" for missing values.
func Known(s string) bool {
	return s != "" && s != notAvailable
}

// HasPoster reports whether the upstream supplied a usable poster URL.
func (m MovieDetail) HasPoster() bool {
	return Known(m.PosterURL)
}

// envelope carries the in-band status fields present on every response.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// searchResponse is the OMDb "s=" response.
type searchResponse struct {
	envelope
	Search       []SearchHit `json:"Search"`
	TotalResults string      `json:"totalResults"`
}

// detailResponse is the OMDb "i=" response. Fields not listed are dropped.
type detailResponse struct {
	envelope
	IMDbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	Actors     string `json:"Actors"`
	IMDbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
}
