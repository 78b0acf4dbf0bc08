package domain

// Page is a CMS content page addressed by slug.
type Page struct {
	ID      int    `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt,omitempty"`
	Link    string `json:"link,omitempty"`
}
