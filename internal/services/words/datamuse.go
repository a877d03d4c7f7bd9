package words

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultDatamuseURL = "https://api.datamuse.com"

// DatamuseFetcher pulls candidate words from the Datamuse pattern API
// (sp=????? for five letters, and so on).
type DatamuseFetcher struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// NewDatamuseFetcher creates a fetcher against the public Datamuse API
func NewDatamuseFetcher() *DatamuseFetcher {
	return NewDatamuseFetcherWithURL(defaultDatamuseURL)
}

// NewDatamuseFetcherWithURL creates a fetcher against a custom base URL
// (for testing)
func NewDatamuseFetcherWithURL(baseURL string) *DatamuseFetcher {
	return &DatamuseFetcher{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		maxResults: 1000,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Fetcher = (*DatamuseFetcher)(nil)

type datamuseEntry struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// FetchWords returns upper-cased candidate words of exactly the given
// length. Entries with hyphens, spaces or non a-z characters are
// filtered out.
func (f *DatamuseFetcher) FetchWords(ctx context.Context, length int) ([]string, error) {
	pattern := strings.Repeat("?", length)
	url := fmt.Sprintf("%s/words?sp=%s&max=%d", f.baseURL, pattern, f.maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse returned status %d", resp.StatusCode)
	}

	var entries []datamuseEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}

	var words []string
	for _, entry := range entries {
		w := strings.ToLower(entry.Word)
		if len(w) == length && isLowerAlpha(w) {
			words = append(words, strings.ToUpper(w))
		}
	}
	return words, nil
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(s) > 0
}
