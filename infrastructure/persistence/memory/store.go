// Package memory provides in-process implementations of the persistence
// ports for local development and tests. Mutations hold a single mutex so
// the concurrency semantics (atomic check-and-append, atomic increments)
// match the DynamoDB implementation.
package memory

import (
	"context"
	"sort"
	"sync"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/domain/draft"
	"wishbloom-backend/domain/wishbloom"
)

// WishBloomStore is an in-memory ports.WishBloomRepository.
type WishBloomStore struct {
	mu    sync.RWMutex
	byID  map[string]*wishbloom.WishBloom
	byURL map[string]string // uniqueUrl -> id, archived included
}

// NewWishBloomStore creates an empty store.
func NewWishBloomStore() *WishBloomStore {
	return &WishBloomStore{
		byID:  make(map[string]*wishbloom.WishBloom),
		byURL: make(map[string]string),
	}
}

func (s *WishBloomStore) Create(ctx context.Context, doc *wishbloom.WishBloom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[doc.ID]; ok {
		return ports.ErrAlreadyExists
	}
	cp := cloneBloom(doc)
	s.byID[doc.ID] = cp
	s.byURL[doc.UniqueURL] = doc.ID
	return nil
}

func (s *WishBloomStore) GetByID(ctx context.Context, id string) (*wishbloom.WishBloom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneBloom(doc), nil
}

func (s *WishBloomStore) GetByUniqueURL(ctx context.Context, url string) (*wishbloom.WishBloom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byURL[url]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneBloom(s.byID[id]), nil
}

func (s *WishBloomStore) UniqueURLExists(ctx context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byURL[url]
	return ok, nil
}

func (s *WishBloomStore) List(ctx context.Context, limit int) ([]*wishbloom.WishBloom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*wishbloom.WishBloom, 0, len(s.byID))
	for _, doc := range s.byID {
		if !doc.IsArchived {
			docs = append(docs, cloneBloom(doc))
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedDate.After(docs[j].CreatedDate)
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *WishBloomStore) Patch(ctx context.Context, id string, patch ports.WishBloomPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	if patch.RecipientName != nil {
		doc.RecipientName = *patch.RecipientName
	}
	if patch.Age != nil {
		age := *patch.Age
		doc.Age = &age
	}
	if patch.CreativeAgeDescription != nil {
		doc.CreativeAgeDescription = *patch.CreativeAgeDescription
	}
	if patch.IntroMessage != nil {
		doc.IntroMessage = *patch.IntroMessage
	}
	if patch.CelebrationWishPhrases != nil {
		doc.CelebrationWishPhrases = append([]string(nil), (*patch.CelebrationWishPhrases)...)
	}
	return nil
}

func (s *WishBloomStore) Archive(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	doc.IsArchived = true
	return nil
}

func (s *WishBloomStore) IncrementViewCount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	doc.ViewCount++
	return nil
}

func (s *WishBloomStore) AppendGuestbookEntry(ctx context.Context, id string, entry wishbloom.GuestbookEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	if len(doc.Guestbook) >= wishbloom.GuestbookCap {
		return ports.ErrGuestbookFull
	}
	doc.Guestbook = append(doc.Guestbook, entry)
	return nil
}

func (s *WishBloomStore) CountActive(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, doc := range s.byID {
		if !doc.IsArchived {
			n++
		}
	}
	return n, nil
}

func cloneBloom(doc *wishbloom.WishBloom) *wishbloom.WishBloom {
	cp := *doc
	cp.Contributors = append([]wishbloom.Contributor(nil), doc.Contributors...)
	cp.Memories = append([]wishbloom.Memory(nil), doc.Memories...)
	cp.Messages = append([]wishbloom.Message(nil), doc.Messages...)
	cp.CelebrationWishPhrases = append([]string(nil), doc.CelebrationWishPhrases...)
	cp.Guestbook = append([]wishbloom.GuestbookEntry(nil), doc.Guestbook...)
	if doc.Age != nil {
		age := *doc.Age
		cp.Age = &age
	}
	return &cp
}

// DraftStore is an in-memory ports.DraftRepository.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*draft.Draft
}

// NewDraftStore creates an empty store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*draft.Draft)}
}

func (s *DraftStore) Put(ctx context.Context, d *draft.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *d
	s.drafts[d.ID] = &cp
	return nil
}

func (s *DraftStore) Get(ctx context.Context, draftID string) (*draft.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *DraftStore) GetLatestByUser(ctx context.Context, userID string) (*draft.Draft, error) {
	drafts, err := s.ListByUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ports.ErrNotFound
	}
	return drafts[0], nil
}

func (s *DraftStore) ListByUser(ctx context.Context, userID string, limit int) ([]*draft.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var drafts []*draft.Draft
	for _, d := range s.drafts {
		if d.UserID == userID {
			cp := *d
			drafts = append(drafts, &cp)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].LastUpdated.After(drafts[j].LastUpdated)
	})
	if len(drafts) > limit {
		drafts = drafts[:limit]
	}
	return drafts, nil
}

func (s *DraftStore) Delete(ctx context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, draftID)
	return nil
}
