package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/barefootbuddy/backend/internal/config"
)

const requestTimeout = 10 * time.Second

// ErrNoResults is returned when the backend had nothing useful to say.
var ErrNoResults = errors.New("no search results")

// Service answers the search_web tool via the DuckDuckGo Instant
// Answer API. Results come back summarized, not as a link list.
type Service struct {
	cfg    config.SearchConfig
	client *http.Client
}

// NewService builds the search client.
func NewService(cfg config.SearchConfig) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type instantAnswer struct {
	AbstractText  string `json:"AbstractText"`
	Answer        string `json:"Answer"`
	Definition    string `json:"Definition"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// Search returns a short text summary for the query.
func (s *Service) Search(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search backend returned status %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return "", err
	}

	return summarize(answer)
}

func summarize(answer instantAnswer) (string, error) {
	for _, candidate := range []string{answer.Answer, answer.AbstractText, answer.Definition} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate), nil
		}
	}

	var parts []string
	for _, topic := range answer.RelatedTopics {
		if strings.TrimSpace(topic.Text) == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(topic.Text))
		if len(parts) == 3 {
			break
		}
	}
	if len(parts) == 0 {
		return "", ErrNoResults
	}
	return strings.Join(parts, " | "), nil
}
