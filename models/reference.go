package models

// Genre is a film genre from the fixed genres table.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Mpa is a content rating from the fixed content_rating table.
type Mpa struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}
