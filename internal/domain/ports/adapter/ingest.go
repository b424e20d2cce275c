package adapter

import "context"

// SourceContent is what an ingestion fetch extracts from one source page.
type SourceContent struct {
	URL   string
	Title string
	Text  string
}

// SourceFetcher retrieves and extracts readable content from a source
// descriptor. The fetch itself is opaque to the core; implementations carry
// their own bounded timeout.
type SourceFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*SourceContent, error)
}
