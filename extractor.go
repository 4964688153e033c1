package casescout

// Extraction holds the content extracted from one HTML document.
type Extraction struct {
	// Title is the page title. Empty when no title strategy succeeded.
	Title string

	// Body is the main content, cleaned. Empty when no body strategy
	// produced anything.
	Body string

	// Description is the meta description, if the page has one.
	Description string

	// Sections is the heading-delimited structure of the main content.
	// Only populated when the extractor is configured for sections.
	Sections []Section

	// Meta holds every non-empty meta content value in document order.
	Meta []string
}

// Empty reports whether neither a title nor a body was extracted.
func (e *Extraction) Empty() bool {
	return e == nil || (e.Title == "" && e.Body == "")
}

// Extractor extracts a title and body from HTML documents.
type Extractor interface {
	// Extract processes raw HTML and returns what it found. The page URL is
	// a hint and may be ignored. A document that yields nothing is not an
	// error; an error means the document could not be processed at all.
	Extract(html string, pageURL string) (*Extraction, error)
}

// ProductBodyLimit is the body length, in characters, kept for product
// pages.
const ProductBodyLimit = 20000
