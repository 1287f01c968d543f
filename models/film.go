package models

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/akinalp/filmorate/pkg"
)

// MaxDescriptionLength is counted in characters, not bytes.
const MaxDescriptionLength = 200

// EarliestReleaseDate is the date of the first public film screening.
var EarliestReleaseDate = NewDate(1895, 12, 28)

// Film is a catalogue entry. Mpa and Genres reference fixed lookup tables;
// only their IDs are read from requests, names are filled on the way out.
type Film struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate *Date   `json:"releaseDate"`
	Duration    int     `json:"duration"`
	Mpa         *Mpa    `json:"mpa"`
	Genres      []Genre `json:"genres"`
}

// Validate checks every field and reports all failures at once.
func (f *Film) Validate() error {
	verr := &pkg.ValidationError{}

	if strings.TrimSpace(f.Name) == "" {
		verr.Add("name is required")
	}
	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		verr.Add("description must be at most 200 characters")
	}
	if f.ReleaseDate != nil && f.ReleaseDate.Before(EarliestReleaseDate) {
		verr.Add("releaseDate must not be before 1895-12-28")
	}
	if f.Duration <= 0 {
		verr.Add("duration must be positive")
	}

	return verr.OrNil()
}

// GenreIDs returns the distinct genre IDs in ascending order.
func (f *Film) GenreIDs() []int64 {
	seen := make(map[int64]bool, len(f.Genres))
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		ids = append(ids, g.ID)
	}
	slices.Sort(ids)
	return ids
}

// MpaID returns the rating ID or 0 when no rating is set.
func (f *Film) MpaID() int64 {
	if f.Mpa == nil {
		return 0
	}
	return f.Mpa.ID
}
