package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pthm/hxtable"
)

// Person is a demo record. Version counts external mutations so cache
// invalidation is visible in the UI.
type Person struct {
	ID      int
	Name    string
	Email   string
	Version int
}

// Store is an in-memory dataset standing in for a real backend.
type Store struct {
	mu   sync.Mutex
	rows []Person
}

// NewStore generates a deterministic demo dataset.
func NewStore(n int) *Store {
	first := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}
	last := []string{"Archer", "Baker", "Clark", "Drake", "Ellis", "Frost", "Gray", "Hale"}

	rows := make([]Person, n)
	for i := range rows {
		name := fmt.Sprintf("%s %s", first[i%len(first)], last[(i/len(first))%len(last)])
		rows[i] = Person{
			ID:    i + 1,
			Name:  name,
			Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		}
	}
	return &Store{rows: rows}
}

// Bump increments the version of one person, simulating an external write.
func (s *Store) Bump(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Version++
			return true
		}
	}
	return false
}

// Fetch implements the hxtable fetch contract over a snapshot of the rows.
func (s *Store) Fetch(ctx context.Context, page hxtable.PageState, sort hxtable.SortState) (hxtable.FetchResult[Person], error) {
	s.mu.Lock()
	rows := make([]Person, len(s.rows))
	copy(rows, s.rows)
	s.mu.Unlock()

	return hxtable.SliceFetcher(&rows, comparePeople)(ctx, page, sort)
}

func comparePeople(a, b Person, columnID string) int {
	switch columnID {
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "version":
		return a.Version - b.Version
	default:
		return strings.Compare(a.Name, b.Name)
	}
}
