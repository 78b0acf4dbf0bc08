package domain

// CategoryImage is the optional image attached to a category.
type CategoryImage struct {
	ID   int    `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name"`
	Alt  string `json:"alt"`
}

// Category is the canonical in-process category shape. Description is plain
// text with HTML stripped.
type Category struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Display     string         `json:"display"`
	Image       *CategoryImage `json:"image"`
}
