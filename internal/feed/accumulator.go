package feed

import (
	"context"
	"slices"
	"sync"

	"github.com/orgball2608/insta-dashboard/internal/domain"
)

// PageSource fetches one page of the account's media.
type PageSource interface {
	ListMedia(ctx context.Context, cursor string) (domain.Page, error)
}

type LoadStatus string

const (
	// LoadMerged means a page was fetched and merged.
	LoadMerged LoadStatus = "merged"
	// LoadSkipped means another load was already in flight.
	LoadSkipped LoadStatus = "skipped"
	// LoadExhausted means the last page has already been merged.
	LoadExhausted LoadStatus = "exhausted"
	// LoadDiscarded means the feed was reset while the page was in flight.
	LoadDiscarded LoadStatus = "discarded"
	// LoadFailed means the fetch failed and the feed is unchanged.
	LoadFailed LoadStatus = "failed"
)

type LoadResult struct {
	Status  LoadStatus `json:"status"`
	Added   int        `json:"added"`
	HasMore bool       `json:"has_more"`
}

// Snapshot is a consistent copy of the feed state.
type Snapshot struct {
	Posts   []domain.Post
	HasMore bool
	Loading bool
}

// Accumulator is the ordered, duplicate-free set of posts loaded so far for
// one dashboard session. Posts keep the order in which they were first seen.
type Accumulator struct {
	source PageSource

	mu       sync.Mutex
	posts    []domain.Post
	index    map[string]struct{}
	cursor   Cursor
	started  bool
	inFlight bool
	// epoch changes on every Reset so results of fetches started earlier can
	// be recognised and dropped.
	epoch uint64
}

func NewAccumulator(source PageSource) *Accumulator {
	return &Accumulator{
		source: source,
		index:  make(map[string]struct{}),
	}
}

// MergePage appends the posts of page whose ID is not yet present and
// advances the cursor. It returns the updated post list.
func (a *Accumulator) MergePage(page domain.Page) []domain.Post {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mergeLocked(page)
	return slices.Clone(a.posts)
}

func (a *Accumulator) mergeLocked(page domain.Page) int {
	added := 0
	for _, post := range page.Posts {
		if _, seen := a.index[post.ID]; seen {
			continue
		}
		a.index[post.ID] = struct{}{}
		a.posts = append(a.posts, post)
		added++
	}
	a.cursor.Advance(page.Next)
	a.started = true
	return added
}

// Reset empties the feed. A page that is in flight when Reset is called is
// dropped when it arrives.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.posts = nil
	a.index = make(map[string]struct{})
	a.cursor.Reset()
	a.started = false
	a.inFlight = false
	a.epoch++
}

// LoadNext fetches and merges the next page. At most one fetch runs at a
// time; a call made while one is in flight returns LoadSkipped without
// touching the network.
func (a *Accumulator) LoadNext(ctx context.Context) (LoadResult, error) {
	a.mu.Lock()
	if a.inFlight {
		res := LoadResult{Status: LoadSkipped, HasMore: a.hasMoreLocked()}
		a.mu.Unlock()
		return res, nil
	}
	if a.started && !a.cursor.HasMore() {
		a.mu.Unlock()
		return LoadResult{Status: LoadExhausted}, nil
	}
	cursor := a.cursor.Next()
	epoch := a.epoch
	a.inFlight = true
	a.mu.Unlock()

	page, err := a.source.ListMedia(ctx, cursor)

	a.mu.Lock()
	defer a.mu.Unlock()

	if epoch != a.epoch {
		return LoadResult{Status: LoadDiscarded, HasMore: a.hasMoreLocked()}, nil
	}
	a.inFlight = false

	if err != nil {
		return LoadResult{Status: LoadFailed, HasMore: a.hasMoreLocked()}, err
	}

	added := a.mergeLocked(page)
	return LoadResult{Status: LoadMerged, Added: added, HasMore: a.hasMoreLocked()}, nil
}

// Refresh discards everything loaded so far and loads the first page again.
func (a *Accumulator) Refresh(ctx context.Context) (LoadResult, error) {
	a.Reset()
	return a.LoadNext(ctx)
}

func (a *Accumulator) hasMoreLocked() bool {
	return !a.started || a.cursor.HasMore()
}

func (a *Accumulator) Posts() []domain.Post {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.posts)
}

// HasMore reports whether another LoadNext may add posts. It is true before
// the first page has been loaded.
func (a *Accumulator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasMoreLocked()
}

func (a *Accumulator) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight
}

func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		Posts:   slices.Clone(a.posts),
		HasMore: a.hasMoreLocked(),
		Loading: a.inFlight,
	}
}

func (a *Accumulator) Lookup(id string) (domain.Post, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.index[id]; !ok {
		return domain.Post{}, false
	}
	for _, p := range a.posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}
