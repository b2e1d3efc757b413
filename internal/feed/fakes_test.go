package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/orgball2608/insta-dashboard/internal/domain"
)

func post(id string, mt domain.MediaType, caption string) domain.Post {
	return domain.Post{
		ID:        id,
		MediaType: mt,
		Caption:   caption,
		MediaURL:  fmt.Sprintf("https://cdn.example.com/%s", id),
		Permalink: fmt.Sprintf("https://instagram.com/p/%s", id),
	}
}

func ids(posts []domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

// pageSource serves pages keyed by cursor. When gate is set, every call
// blocks until a value is received from it.
type pageSource struct {
	mu      sync.Mutex
	pages   map[string]domain.Page
	err     error
	calls   []string
	gate    chan struct{}
	started chan struct{}
}

func newPageSource(pages map[string]domain.Page) *pageSource {
	return &pageSource{pages: pages}
}

func (s *pageSource) blocking() *pageSource {
	s.gate = make(chan struct{})
	s.started = make(chan struct{}, 8)
	return s
}

func (s *pageSource) ListMedia(ctx context.Context, cursor string) (domain.Page, error) {
	s.mu.Lock()
	s.calls = append(s.calls, cursor)
	gate, started := s.gate, s.started
	page, err := s.pages[cursor], s.err
	s.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		<-gate
	}
	return page, err
}

func (s *pageSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type commentSource struct {
	mu       sync.Mutex
	comments map[string][]domain.Comment
	err      error
	calls    int
	gate     chan struct{}
	started  chan struct{}
}

func (s *commentSource) blocking() *commentSource {
	s.gate = make(chan struct{})
	s.started = make(chan struct{}, 8)
	return s
}

func (s *commentSource) GetComments(ctx context.Context, mediaID string) ([]domain.Comment, error) {
	s.mu.Lock()
	s.calls++
	gate, started := s.gate, s.started
	comments, err := s.comments[mediaID], s.err
	s.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		<-gate
	}
	return comments, err
}

func (s *commentSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
