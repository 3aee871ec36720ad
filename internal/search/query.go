package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/tearlogapp/tearlog-core/internal/domain"
)

// Params configures a search query.
type Params struct {
	Query string // full-text query over entry content

	// Filters
	CryingOnly   bool   // only entries recorded as crying
	Day          string // exact local day key (YYYY-MM-DD)
	MinIntensity int    // minimum intensity level (0 = no bound)
	MaxIntensity int    // maximum intensity level (0 = no bound)

	// Pagination
	Limit  int
	Offset int

	// Sorting: "relevance" (default) or "recent"
	SortBy string

	Highlight bool // include content match highlighting
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		SortBy:    "relevance",
		Highlight: true,
	}
}

// Result is a page of search hits.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is a single matching entry.
type Hit struct {
	ID        string              `json:"id"`
	Score     float64             `json:"score"`
	Content   string              `json:"content"`
	Day       string              `json:"day"`
	WasCrying bool                `json:"was_crying"`
	Intensity domain.CryIntensity `json:"intensity,omitempty"`
	Highlight string              `json:"highlight,omitempty"`
}

// Search executes a query against the entry index.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, limit, params.Offset, false)

	if params.SortBy == "recent" {
		searchRequest.SortBy([]string{"-created_at"})
	} else {
		searchRequest.SortBy([]string{"-_score"})
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("content")
	}

	searchRequest.Fields = []string{"content", "day", "was_crying", "intensity"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if c, ok := hit.Fields["content"].(string); ok {
			h.Content = c
		}
		if d, ok := hit.Fields["day"].(string); ok {
			h.Day = d
		}
		if wc, ok := hit.Fields["was_crying"].(bool); ok {
			h.WasCrying = wc
		}
		if in, ok := hit.Fields["intensity"].(float64); ok {
			h.Intensity = domain.CryIntensity(in)
		}
		if fragments, ok := hit.Fragments["content"]; ok && len(fragments) > 0 {
			h.Highlight = fragments[0]
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		textQueries := []query.Query{}

		contentMatch := bleve.NewMatchQuery(params.Query)
		contentMatch.SetField("content")
		contentMatch.SetBoost(3.0)
		textQueries = append(textQueries, contentMatch)

		// Fuzzy match for typo tolerance
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("content")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for partially typed words (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("content")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.CryingOnly {
		cryingQuery := bleve.NewBoolFieldQuery(true)
		cryingQuery.SetField("was_crying")
		queries = append(queries, cryingQuery)
	}

	if params.Day != "" {
		dayQuery := bleve.NewTermQuery(params.Day)
		dayQuery.SetField("day")
		queries = append(queries, dayQuery)
	}

	if params.MinIntensity > 0 || params.MaxIntensity > 0 {
		min := float64(params.MinIntensity)
		max := float64(params.MaxIntensity)
		if params.MaxIntensity == 0 {
			max = math.MaxFloat64
		}
		rangeQuery := bleve.NewNumericRangeInclusiveQuery(&min, &max, ptr(true), ptr(true))
		rangeQuery.SetField("intensity")
		queries = append(queries, rangeQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

func ptr[T any](v T) *T { return &v }
