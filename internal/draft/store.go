package draft

import (
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstinvoice/internal/clock"
	"github.com/smallbiznis/gstinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("draft_not_found")
	ErrItemNotFound = errors.New("draft_item_not_found")
)

// Draft is a read-only view of a stored draft.
type Draft struct {
	ID        snowflake.ID          `json:"id"`
	Parties   invoicedomain.Parties `json:"parties"`
	Items     []Entry               `json:"items"`
	ItemCount int                   `json:"item_count"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type record struct {
	parties    invoicedomain.Parties
	items      *ItemList
	createdAt  time.Time
	updatedAt  time.Time
	accessedAt time.Time
}

// Store keeps invoice drafts in process memory between render calls.
// Drafts not accessed for longer than the TTL are dropped on the next call.
type Store struct {
	mu     sync.Mutex
	drafts map[snowflake.ID]*record

	genID *snowflake.Node
	clock clock.Clock
	ttl   time.Duration
	log   *zap.Logger
}

type StoreParam struct {
	fx.In

	Config config.Config
	GenID  *snowflake.Node
	Log    *zap.Logger
	Clock  clock.Clock `optional:"true"`
}

func NewStore(p StoreParam) *Store {
	c := p.Clock
	if c == nil {
		c = clock.New()
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		drafts: map[snowflake.ID]*record{},
		genID:  p.GenID,
		clock:  c,
		ttl:    p.Config.DraftTTL,
		log:    log.Named("draft.store"),
	}
}

func (s *Store) Create(parties invoicedomain.Parties) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweepLocked(now)

	id := s.genID.Generate()
	rec := &record{
		parties:    parties,
		items:      NewItemList(),
		createdAt:  now,
		updatedAt:  now,
		accessedAt: now,
	}
	s.drafts[id] = rec
	s.log.Debug("draft created", zap.String("draft_id", id.String()))
	return rec.view(id)
}

func (s *Store) Get(id snowflake.ID) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(id, false)
	if err != nil {
		return Draft{}, err
	}
	return rec.view(id), nil
}

func (s *Store) UpdateParties(id snowflake.ID, parties invoicedomain.Parties) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(id, true)
	if err != nil {
		return Draft{}, err
	}
	rec.parties = parties
	return rec.view(id), nil
}

// AddItem appends item to the draft and returns its key. Derived amounts on
// item are discarded.
func (s *Store) AddItem(id snowflake.ID, item invoicedomain.LineItem) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(id, true)
	if err != nil {
		return 0, err
	}
	return rec.items.Add(item), nil
}

func (s *Store) RemoveItem(id snowflake.ID, key int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(id, true)
	if err != nil {
		return err
	}
	if !rec.items.Remove(key) {
		return ErrItemNotFound
	}
	return nil
}

func (s *Store) Delete(id snowflake.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookupLocked(id, false); err != nil {
		return err
	}
	delete(s.drafts, id)
	return nil
}

// Snapshot copies the draft into a generation request. The copy shares no
// state with the store, so rendering never races with later edits.
func (s *Store) Snapshot(id snowflake.ID) (invoicedomain.GenerateRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(id, false)
	if err != nil {
		return invoicedomain.GenerateRequest{}, err
	}
	return invoicedomain.GenerateRequest{
		Parties: rec.parties,
		Items:   rec.items.Items(),
	}, nil
}

// Len reports the number of live drafts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(s.clock.Now())
	return len(s.drafts)
}

// lookupLocked finds a live draft and marks it accessed. modify also bumps
// the draft's update time.
func (s *Store) lookupLocked(id snowflake.ID, modify bool) (*record, error) {
	now := s.clock.Now()
	s.sweepLocked(now)

	rec, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec.accessedAt = now
	if modify {
		rec.updatedAt = now
	}
	return rec, nil
}

func (s *Store) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, rec := range s.drafts {
		if now.Sub(rec.accessedAt) > s.ttl {
			delete(s.drafts, id)
			s.log.Debug("draft expired", zap.String("draft_id", id.String()))
		}
	}
}

func (r *record) view(id snowflake.ID) Draft {
	return Draft{
		ID:        id,
		Parties:   r.parties,
		Items:     r.items.Entries(),
		ItemCount: r.items.Len(),
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
	}
}
