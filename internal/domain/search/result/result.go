package result

// Result is a single ranked search hit.
type Result struct {
	documentID string
	title      string
	snippet    string
	tags       []string
	score      float64
	createdAt  string
}

// New creates a search result.
func New(documentID, title, snippet string, tags []string, score float64, createdAt string) Result {
	return Result{
		documentID: documentID, title: title, snippet: snippet,
		tags: tags, score: score, createdAt: createdAt,
	}
}

// DocumentID returns the matched document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// Title returns the document title.
func (r *Result) Title() string { return r.title }

// Snippet returns the highlighted excerpt around the first match.
func (r *Result) Snippet() string { return r.snippet }

// Tags returns the document tags.
func (r *Result) Tags() []string { return r.tags }

// Score returns the normalized relevance in (0, 1]; higher is better.
func (r *Result) Score() float64 { return r.score }

// CreatedAt returns the document creation timestamp.
func (r *Result) CreatedAt() string { return r.createdAt }

// Page is one page of ranked results plus the total match count.
type Page struct {
	TenantID string
	Query    string
	Limit    int
	Offset   int
	Total    int
	Results  []Result
}
