package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamereviews/internal/http-api/models"
)

// memState is the whole fake database; Transaction snapshots and restores it.
type memState struct {
	nextID     int64
	reviews    []models.Review
	developers []models.Developer
	publishers []models.Publisher
	genres     []models.Genre
	users      []models.User
	links      map[int64]map[int64]bool
}

func (s *memState) clone() *memState {
	c := &memState{
		nextID:     s.nextID,
		reviews:    append([]models.Review(nil), s.reviews...),
		developers: append([]models.Developer(nil), s.developers...),
		publishers: append([]models.Publisher(nil), s.publishers...),
		genres:     append([]models.Genre(nil), s.genres...),
		users:      append([]models.User(nil), s.users...),
		links:      map[int64]map[int64]bool{},
	}
	for r, gs := range s.links {
		c.links[r] = map[int64]bool{}
		for g := range gs {
			c.links[r][g] = true
		}
	}
	return c
}

type memStore struct {
	state *memState

	beginErr  error  // returned by the outermost Transaction
	failGenre string // FirstOrCreateGenre fails for this name
	depth     int
	savepoint int // nested transactions opened
}

func newMemStore() *memStore {
	return &memStore{state: &memState{links: map[int64]map[int64]bool{}}}
}

func (m *memStore) id() int64 {
	m.state.nextID++
	return m.state.nextID
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if m.depth == 0 && m.beginErr != nil {
		return m.beginErr
	}
	if m.depth > 0 {
		m.savepoint++
	}
	snap := m.state.clone()
	m.depth++
	err := fn(m)
	m.depth--
	if err != nil {
		m.state = snap
	}
	return err
}

func (m *memStore) FindReview(_ context.Context, title, slug string) (*models.Review, error) {
	for _, r := range m.state.reviews {
		if strings.EqualFold(r.Title, title) || r.Slug == slug {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memStore) FirstOrCreateReview(_ context.Context, review *models.Review) (*models.Review, bool, error) {
	for _, r := range m.state.reviews {
		if r.Title == review.Title && r.Slug == review.Slug {
			r := r
			return &r, false, nil
		}
		if r.Title == review.Title || r.Slug == review.Slug {
			return nil, false, errors.New("unique constraint on reviews")
		}
	}
	row := *review
	row.ID = m.id()
	m.state.reviews = append(m.state.reviews, row)
	return &row, true, nil
}

func (m *memStore) FirstOrCreateDeveloper(_ context.Context, name string, seed func() models.Company) (*models.Developer, bool, error) {
	for _, d := range m.state.developers {
		if d.Name == name {
			d := d
			return &d, false, nil
		}
	}
	c := seed()
	c.ID = m.id()
	c.Name = name
	c.Slug = models.Slugify(name)
	row := models.Developer{Company: c}
	m.state.developers = append(m.state.developers, row)
	return &row, true, nil
}

func (m *memStore) FirstOrCreatePublisher(_ context.Context, name string, seed func() models.Company) (*models.Publisher, bool, error) {
	for _, p := range m.state.publishers {
		if p.Name == name {
			p := p
			return &p, false, nil
		}
	}
	c := seed()
	c.ID = m.id()
	c.Name = name
	c.Slug = models.Slugify(name)
	row := models.Publisher{Company: c}
	m.state.publishers = append(m.state.publishers, row)
	return &row, true, nil
}

func (m *memStore) FirstOrCreateGenre(_ context.Context, name string) (*models.Genre, error) {
	if name == m.failGenre {
		return nil, fmt.Errorf("get or create genre %q: connection reset", name)
	}
	for _, g := range m.state.genres {
		if g.Name == name {
			g := g
			return &g, nil
		}
	}
	row := models.Genre{ID: m.id(), Name: name}
	m.state.genres = append(m.state.genres, row)
	return &row, nil
}

func (m *memStore) AttachGenres(_ context.Context, review *models.Review, genres []models.Genre) error {
	if m.state.links[review.ID] == nil {
		m.state.links[review.ID] = map[int64]bool{}
	}
	for _, g := range genres {
		m.state.links[review.ID][g.ID] = true
	}
	return nil
}

func (m *memStore) RandomUser(context.Context) (*models.User, error) {
	if len(m.state.users) == 0 {
		return nil, nil
	}
	u := m.state.users[0]
	return &u, nil
}

func (m *memStore) FirstOrCreateUser(_ context.Context, username string, seed func() (models.User, error)) (*models.User, error) {
	for _, u := range m.state.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	u, err := seed()
	if err != nil {
		return nil, err
	}
	u.ID = fmt.Sprintf("user-%d", m.id())
	m.state.users = append(m.state.users, u)
	return &u, nil
}

// helpers for assertions

func (m *memStore) reviewByTitle(title string) *models.Review {
	for _, r := range m.state.reviews {
		if r.Title == title {
			r := r
			return &r
		}
	}
	return nil
}

func (m *memStore) genreNames(reviewID int64) []string {
	var names []string
	for _, g := range m.state.genres {
		if m.state.links[reviewID][g.ID] {
			names = append(names, g.Name)
		}
	}
	return names
}

func (m *memStore) developerByID(id int64) *models.Developer {
	for _, d := range m.state.developers {
		if d.ID == id {
			d := d
			return &d
		}
	}
	return nil
}

func (m *memStore) publisherByID(id int64) *models.Publisher {
	for _, p := range m.state.publishers {
		if p.ID == id {
			p := p
			return &p
		}
	}
	return nil
}
