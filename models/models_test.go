package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/akinalp/filmorate/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(d Date) *Date { return &d }

func TestUser_Validate(t *testing.T) {
	tomorrow := Today().AddDate(0, 0, 1)

	tests := []struct {
		name    string
		user    User
		wantErr []string
	}{
		{
			name: "valid",
			user: User{Email: "mail@mail.ru", Login: "dolore", Birthday: datePtr(NewDate(1946, 8, 20))},
		},
		{
			name:    "missing email and login",
			user:    User{},
			wantErr: []string{"email is required", "login is required"},
		},
		{
			name:    "malformed email",
			user:    User{Email: "mail.ru", Login: "dolore"},
			wantErr: []string{"email must be a well-formed address"},
		},
		{
			name:    "login with space",
			user:    User{Email: "a@b.c", Login: "dolore ullamco"},
			wantErr: []string{"login must not contain whitespace"},
		},
		{
			name:    "birthday in future",
			user:    User{Email: "a@b.c", Login: "x", Birthday: &Date{tomorrow}},
			wantErr: []string{"birthday must not be in the future"},
		},
		{
			name: "birthday today",
			user: User{Email: "a@b.c", Login: "x", Birthday: datePtr(Today())},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, pkg.ErrValidation)
			var verr *pkg.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Fields)
		})
	}
}

func TestUser_ApplyDefaults(t *testing.T) {
	u := User{Email: " a@b.c ", Login: "common", Name: "  "}
	u.ApplyDefaults()
	assert.Equal(t, "common", u.Name)
	assert.Equal(t, "a@b.c", u.Email)

	named := User{Login: "common", Name: "Nick"}
	named.ApplyDefaults()
	assert.Equal(t, "Nick", named.Name)
}

func TestFilm_Validate(t *testing.T) {
	base := func() Film {
		return Film{Name: "nisi eiusmod", Description: "adipisicing", Duration: 90,
			ReleaseDate: datePtr(NewDate(1967, 3, 25))}
	}

	tests := []struct {
		name    string
		mutate  func(f *Film)
		wantErr string
	}{
		{name: "valid", mutate: func(f *Film) {}},
		{name: "blank name", mutate: func(f *Film) { f.Name = " " }, wantErr: "name is required"},
		{name: "description 200 runes", mutate: func(f *Film) { f.Description = strings.Repeat("ж", 200) }},
		{name: "description 201 chars", mutate: func(f *Film) { f.Description = strings.Repeat("a", 201) },
			wantErr: "description must be at most 200 characters"},
		{name: "release 1895-12-27", mutate: func(f *Film) { f.ReleaseDate = datePtr(NewDate(1895, 12, 27)) },
			wantErr: "releaseDate must not be before 1895-12-28"},
		{name: "release 1895-12-28", mutate: func(f *Film) { f.ReleaseDate = datePtr(NewDate(1895, 12, 28)) }},
		{name: "release absent", mutate: func(f *Film) { f.ReleaseDate = nil }},
		{name: "duration zero", mutate: func(f *Film) { f.Duration = 0 }, wantErr: "duration must be positive"},
		{name: "duration negative", mutate: func(f *Film) { f.Duration = -200 }, wantErr: "duration must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, pkg.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFilm_GenreIDsAreDistinctAndSorted(t *testing.T) {
	f := Film{Genres: []Genre{{ID: 3}, {ID: 1}, {ID: 3}, {ID: 2}}}
	assert.Equal(t, []int64{1, 2, 3}, f.GenreIDs())
	assert.Equal(t, int64(0), f.MpaID())

	f.Mpa = &Mpa{ID: 4}
	assert.Equal(t, int64(4), f.MpaID())
}

func TestDate_JSON(t *testing.T) {
	var f Film
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","releaseDate":"1967-03-25","duration":1}`), &f))
	require.NotNil(t, f.ReleaseDate)
	assert.Equal(t, "1967-03-25", f.ReleaseDate.String())

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"releaseDate":"1967-03-25"`)

	var nullDate Film
	require.NoError(t, json.Unmarshal([]byte(`{"releaseDate":null}`), &nullDate))
	assert.Nil(t, nullDate.ReleaseDate)

	var bad Film
	assert.Error(t, json.Unmarshal([]byte(`{"releaseDate":"25.03.1967"}`), &bad))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
	}{
		{"time", time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"string", "1990-05-01"},
		{"bytes", []byte("1990-05-01")},
		{"timestamp string", "1990-05-01 00:00:00+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, "1990-05-01", d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("1990"))
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(1895, 12, 27)
	b := NewDate(1895, 12, 28)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, b.Before(b))
}

func TestFriendship_Status(t *testing.T) {
	f := Friendship{UserID: 1, FriendID: 2}
	assert.Equal(t, FriendshipStatusPending, f.Status())
	assert.True(t, f.Involves(2, 1))
	assert.False(t, f.Involves(1, 3))

	f.Confirmed = true
	assert.Equal(t, FriendshipStatusConfirmed, f.Status())
}
