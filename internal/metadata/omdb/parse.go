package omdb

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	detailPageBaseURL = "https://www.imdb.com/title/"
	notAvailable      = "N/A"
)

// ParseSearchIDs extracts the imdbID of every search hit, in upstream order.
//
// A nil slice with a nil error means the title matched nothing. The rate-limit
// signal is the only upstream error reported as an error.
func ParseSearchIDs(body string) ([]string, error) {
	var resp searchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if isRateLimited(resp.Error) {
		return nil, ErrRateLimitExceeded
	}
	if resp.Error != "" || resp.Search == nil {
		return nil, nil
	}

	ids := make([]string, 0, len(resp.Search))
	for _, hit := range resp.Search {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// ParseDetail maps a detail payload onto MovieDetail.
func ParseDetail(body string) (MovieDetail, error) {
	var resp detailResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return MovieDetail{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if isRateLimited(resp.Error) {
		return MovieDetail{}, ErrRateLimitExceeded
	}
	if strings.EqualFold(resp.Response, "False") || resp.Error != "" {
		return MovieDetail{}, fmt.Errorf("%w: %s", ErrDetailUnavailable, resp.Error)
	}

	return MovieDetail{
		ID:            resp.IMDbID,
		Title:         resp.Title,
		Year:          resp.Year,
		PosterURL:     resp.Poster,
		Runtime:       resp.Runtime,
		Actors:        resp.Actors,
		IMDbRating:    resp.IMDbRating,
		Plot:          resp.Plot,
		Genre:         resp.Genre,
		Director:      resp.Director,
		DetailPageURL: DetailPageURL(resp.IMDbID),
	}, nil
}

// DetailPageURL returns the IMDb page for an id.
func DetailPageURL(id string) string {
	if id == "" {
		return ""
	}
	return detailPageBaseURL + id
}

func isRateLimited(msg string) bool {
	return strings.Contains(msg, RateLimitMarker)
}
