package omdb

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// SearchURL builds the "s=" request. The y parameter is left out when year is blank.
func SearchURL(baseURL, apiKey, title, year string) (string, error) {
	params := url.Values{
		"s":    {title},
		"type": {"movie"},
	}
	if y := strings.TrimSpace(year); y != "" {
		params.Set("y", y)
	}
	return buildURL(baseURL, apiKey, params)
}

// DetailsURL builds the "i=" request for one IMDb id.
func DetailsURL(baseURL, apiKey, id string) (string, error) {
	return buildURL(baseURL, apiKey, url.Values{"i": {id}})
}

func buildURL(baseURL, apiKey string, params url.Values) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("apikey", apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
