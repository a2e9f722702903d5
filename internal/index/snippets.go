// Package index provides an in-memory full-text index over post bodies using Bleve
// It only supplies display snippets; ranking is done by the search package
package index

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// maxSnippetRunes is the length of a fallback snippet cut from the summary
const maxSnippetRunes = 150

// PostIndex manages the bleve index for post bodies
type PostIndex struct {
	index bleve.Index
}

// NewPostIndex creates an in-memory index and loads posts into it
func NewPostIndex(posts []model.Post) (*PostIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	pi := &PostIndex{index: index}
	if len(posts) == 0 {
		return pi, nil
	}

	docs := make([]PostDocument, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, NewPostDocument(p))
	}
	if err := pi.AddBatch(docs); err != nil {
		_ = index.Close() // Ignore close error on error path
		return nil, err
	}

	return pi, nil
}

// NewPostDocument converts a post into its indexed form
func NewPostDocument(p model.Post) PostDocument {
	return PostDocument{
		Slug:    p.Slug,
		Title:   p.Title,
		Summary: p.Summary,
		Tags:    strings.Join(p.Tags, " "),
		Content: p.Content,
	}
}

// buildIndexMapping creates the index mapping for post documents
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name

	postMapping := bleve.NewDocumentMapping()

	slugFieldMapping := bleve.NewKeywordFieldMapping()
	slugFieldMapping.Store = true
	postMapping.AddFieldMappingsAt("Slug", slugFieldMapping)

	for _, field := range []string{"Title", "Tags"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = true
		postMapping.AddFieldMappingsAt(field, fm)
	}

	// Summary and Content keep term vectors for highlighting
	for _, field := range []string{"Summary", "Content"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = true
		fm.IncludeTermVectors = true
		postMapping.AddFieldMappingsAt(field, fm)
	}

	indexMapping.DefaultMapping = postMapping

	return indexMapping
}

// buildTokenQuery matches one token in field by typo-tolerant match or prefix
func buildTokenQuery(token, field string) *query.DisjunctionQuery {
	matchQ := bleve.NewMatchQuery(token)
	matchQ.SetField(field)
	matchQ.SetFuzziness(1)

	prefixQ := bleve.NewPrefixQuery(token)
	prefixQ.SetField(field)

	return bleve.NewDisjunctionQuery(matchQ, prefixQ)
}

// buildQuery matches any token in any text field, weighting title and tags higher
func buildQuery(tokens []string) query.Query {
	boosts := []struct {
		field string
		boost float64
	}{
		{"Title", 5.0},
		{"Tags", 3.0},
		{"Summary", 2.0},
		{"Content", 1.0},
	}

	clauses := make([]query.Query, 0, len(tokens)*len(boosts))
	for _, token := range tokens {
		for _, b := range boosts {
			q := buildTokenQuery(token, b.field)
			q.SetBoost(b.boost)
			clauses = append(clauses, q)
		}
	}

	return bleve.NewDisjunctionQuery(clauses...)
}

// Add indexes a single post, replacing any previous version with the same slug
func (pi *PostIndex) Add(p model.Post) error {
	return pi.index.Index(p.Slug, NewPostDocument(p))
}

// AddBatch indexes multiple post documents in a batch
func (pi *PostIndex) AddBatch(docs []PostDocument) error {
	batch := pi.index.NewBatch()

	for _, doc := range docs {
		if err := batch.Index(doc.Slug, doc); err != nil {
			return fmt.Errorf("failed to add document %s to batch: %w", doc.Slug, err)
		}
	}

	return pi.index.Batch(batch)
}

// Search runs a full-text query and returns hits with context snippets
func (pi *PostIndex) Search(q string, maxResults int) ([]PostMatch, error) {
	tokens := strings.Fields(strings.ToLower(q))
	if len(tokens) == 0 || maxResults <= 0 {
		return []PostMatch{}, nil
	}

	searchRequest := bleve.NewSearchRequestOptions(buildQuery(tokens), maxResults, 0, false)
	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.AddField("Content")
	searchRequest.Highlight.AddField("Summary")
	searchRequest.Fields = []string{"Slug", "Summary"}

	searchResults, err := pi.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	matches := make([]PostMatch, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		matches = append(matches, PostMatch{
			Slug:    hit.ID,
			Snippet: extractSnippet(hit),
			Score:   hit.Score,
		})
	}

	return matches, nil
}

// Snippets returns a context snippet per matching post slug
func (pi *PostIndex) Snippets(q string, maxResults int) (map[string]string, error) {
	matches, err := pi.Search(q, maxResults)
	if err != nil {
		return nil, err
	}

	snippets := make(map[string]string, len(matches))
	for _, m := range matches {
		if m.Snippet != "" {
			snippets[m.Slug] = m.Snippet
		}
	}
	return snippets, nil
}

// extractSnippet prefers fragments around a match (body first), then the summary,
// then any unmarked fragment
// Bleve returns the start of a highlighted field even when nothing in it matched
func extractSnippet(hit *search.DocumentMatch) string {
	fields := []string{"Content", "Summary"}

	for _, field := range fields {
		if s := joinFragments(hit.Fragments[field], true); s != "" {
			return s
		}
	}

	if summary, ok := hit.Fields["Summary"].(string); ok && strings.TrimSpace(summary) != "" {
		return Truncate(summary, maxSnippetRunes)
	}

	for _, field := range fields {
		if s := joinFragments(hit.Fragments[field], false); s != "" {
			return s
		}
	}

	return ""
}

// joinFragments cleans up to two non-empty fragments, only marked ones when markedOnly is set
func joinFragments(fragments []string, markedOnly bool) string {
	kept := make([]string, 0, 2)
	for _, f := range fragments {
		// Bleve wraps matches in <mark> tags
		if markedOnly && !strings.Contains(f, "<mark>") {
			continue
		}
		if s := cleanFragment(f); s != "" {
			kept = append(kept, s)
		}
		if len(kept) == 2 {
			break
		}
	}
	return strings.Join(kept, " ... ")
}

// cleanFragment strips markup and collapses whitespace
func cleanFragment(s string) string {
	return strings.Join(strings.Fields(stripHTMLTags(s)), " ")
}

// stripHTMLTags removes everything between < and >
func stripHTMLTags(s string) string {
	var result strings.Builder
	inTag := false
	for _, ch := range s {
		switch {
		case ch == '<':
			inTag = true
		case ch == '>':
			inTag = false
		case !inTag:
			result.WriteRune(ch)
		}
	}
	return result.String()
}

// Delete removes a post from the index
func (pi *PostIndex) Delete(slug string) error {
	return pi.index.Delete(slug)
}

// Count returns the number of indexed posts
func (pi *PostIndex) Count() (uint64, error) {
	return pi.index.DocCount()
}

// Close releases the index
func (pi *PostIndex) Close() error {
	return pi.index.Close()
}
