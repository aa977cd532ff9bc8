package igdb

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// GameRecord is the loosely structured candidate handed to the importer.
// It round-trips through JSON so an operator can post it back from the populate page.
type GameRecord struct {
	Name         string        `json:"name"`
	Summary      string        `json:"summary,omitempty"`
	Cover        *Image        `json:"cover,omitempty"`
	CoverURL     string        `json:"cover_url,omitempty"`
	ReleaseDates []ReleaseDate `json:"release_dates,omitempty"`
	Platforms    []Named       `json:"platforms,omitempty"`
	Developers   []Company     `json:"developers,omitempty"`
	Publishers   []Company     `json:"publishers,omitempty"`
	Genres       []Named       `json:"genres,omitempty"`
}

type Image struct {
	URL string `json:"url"`
}

type Named struct {
	Name string `json:"name"`
}

// ReleaseDate.Date is usually a unix timestamp but is kept untyped so a bad value
// degrades to "unknown" instead of failing the decode.
type ReleaseDate struct {
	Date any `json:"date"`
}

type Company struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	FoundedYear *int   `json:"founded_year,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// ReleaseTime converts the first release date to a UTC time.
func (g GameRecord) ReleaseTime() (time.Time, bool) {
	if len(g.ReleaseDates) == 0 {
		return time.Time{}, false
	}
	ts, ok := unixSeconds(g.ReleaseDates[0].Date)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(ts, 0).UTC(), true
}

// ReleaseYear is 0 when unknown.
func (g GameRecord) ReleaseYear() int {
	t, ok := g.ReleaseTime()
	if !ok {
		return 0
	}
	return t.Year()
}

// PlatformNames joins platform names with ", ".
func (g GameRecord) PlatformNames() string {
	names := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		name := p.Name
		if name == "" {
			name = "Unknown"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// CoverSource prefers the flattened cover_url over the nested cover.
func (g GameRecord) CoverSource() string {
	if g.CoverURL != "" {
		return g.CoverURL
	}
	if g.Cover != nil {
		return g.Cover.URL
	}
	return ""
}

func unixSeconds(v any) (int64, bool) {
	switch d := v.(type) {
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, false
		}
		return int64(d), true
	case int64:
		return d, true
	case int:
		return int64(d), true
	case json.Number:
		n, err := d.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(d), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// api* types mirror the IGDB v4 /games payload.
type apiGame struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Summary           string           `json:"summary"`
	Cover             *Image           `json:"cover"`
	ReleaseDates      []apiReleaseDate `json:"release_dates"`
	Platforms         []Named          `json:"platforms"`
	Genres            []Named          `json:"genres"`
	InvolvedCompanies []apiInvolvement `json:"involved_companies"`
}

type apiReleaseDate struct {
	Date *int64 `json:"date"`
}

type apiInvolvement struct {
	Company   apiCompany `json:"company"`
	Developer bool       `json:"developer"`
	Publisher bool       `json:"publisher"`
}

type apiCompany struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	StartDate   *int64 `json:"start_date"`
	Logo        *Image `json:"logo"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// toRecord flattens an API game into the importer's shape.
func (a apiGame) toRecord() GameRecord {
	rec := GameRecord{
		Name:      a.Name,
		Summary:   a.Summary,
		Platforms: a.Platforms,
		Genres:    a.Genres,
	}
	if a.Cover != nil && a.Cover.URL != "" {
		url := biggerCover(a.Cover.URL)
		rec.Cover = &Image{URL: url}
		rec.CoverURL = url
	}
	for _, rd := range a.ReleaseDates {
		if rd.Date == nil {
			continue
		}
		rec.ReleaseDates = append(rec.ReleaseDates, ReleaseDate{Date: float64(*rd.Date)})
	}
	for _, ic := range a.InvolvedCompanies {
		if ic.Company.Name == "" {
			continue
		}
		c := ic.Company.toCompany()
		if ic.Developer {
			rec.Developers = append(rec.Developers, c)
		}
		if ic.Publisher {
			rec.Publishers = append(rec.Publishers, c)
		}
	}
	return rec
}

func (a apiCompany) toCompany() Company {
	c := Company{
		Name:        a.Name,
		Description: a.Description,
		Website:     a.URL,
	}
	if a.StartDate != nil && *a.StartDate != 0 {
		year := time.Unix(*a.StartDate, 0).UTC().Year()
		c.FoundedYear = &year
	}
	if a.Logo != nil {
		c.LogoURL = a.Logo.URL
	}
	return c
}

// IGDB returns thumbnails by default; covers look better at t_cover_big.
func biggerCover(url string) string {
	return strings.Replace(url, "t_thumb", "t_cover_big", 1)
}
