package index

// PostDocument is the indexed form of a post
type PostDocument struct {
	Slug    string // Document ID
	Title   string
	Summary string
	Tags    string // Space-separated
	Content string // Plain text body
}

// PostMatch is a single full-text hit
type PostMatch struct {
	Slug    string
	Snippet string  // Context around the match, markup stripped
	Score   float64 // Bleve relevance, display only
}
