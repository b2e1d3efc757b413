package feed

import (
	"context"
	"slices"
	"sync"

	"github.com/orgball2608/insta-dashboard/internal/domain"
)

type CommentSource interface {
	GetComments(ctx context.Context, mediaID string) ([]domain.Comment, error)
}

type EntryState int

const (
	EntryAbsent EntryState = iota
	EntryLoading
	EntryLoaded
)

func (s EntryState) String() string {
	switch s {
	case EntryLoading:
		return "loading"
	case EntryLoaded:
		return "loaded"
	default:
		return "absent"
	}
}

// Entry is a copy of the cached thread for one post.
type Entry struct {
	State    EntryState
	Comments []domain.Comment
}

// Visible reports whether the thread is shown. Only loaded threads are,
// including loaded threads with no comments.
func (e Entry) Visible() bool {
	return e.State == EntryLoaded
}

type commentEntry struct {
	state      EntryState
	comments   []domain.Comment
	generation uint64
}

func (e *commentEntry) snapshot() Entry {
	return Entry{State: e.state, Comments: slices.Clone(e.comments)}
}

// CommentCache holds the comment threads a session has opened.
type CommentCache struct {
	source CommentSource

	mu      sync.Mutex
	entries map[string]*commentEntry
}

func NewCommentCache(source CommentSource) *CommentCache {
	return &CommentCache{
		source:  source,
		entries: make(map[string]*commentEntry),
	}
}

// Toggle opens or closes the thread of postID. Opening fetches the
// comments; closing never touches the network. A fetch whose thread was
// toggled again before it completed is dropped.
func (c *CommentCache) Toggle(ctx context.Context, postID string) (Entry, error) {
	c.mu.Lock()
	e, ok := c.entries[postID]
	if !ok {
		e = &commentEntry{}
		c.entries[postID] = e
	}
	e.generation++

	if e.state != EntryAbsent {
		e.state = EntryAbsent
		e.comments = nil
		snap := e.snapshot()
		c.mu.Unlock()
		return snap, nil
	}

	e.state = EntryLoading
	generation := e.generation
	c.mu.Unlock()

	comments, err := c.source.GetComments(ctx, postID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e.generation != generation || e.state != EntryLoading {
		return e.snapshot(), nil
	}

	if err != nil {
		e.state = EntryAbsent
		return e.snapshot(), err
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	e.state = EntryLoaded
	e.comments = comments
	return e.snapshot(), nil
}

// Get returns the current entry for postID. Unknown posts are Absent.
func (c *CommentCache) Get(postID string) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[postID]
	if !ok {
		return Entry{State: EntryAbsent}
	}
	return e.snapshot()
}
