package state

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Categories holds the flattened category list.
type Categories struct {
	api    CategoriesAPI
	logger *log.Logger

	mu         sync.Mutex
	categories []core.Category
	loading    bool
	err        error
	seq        uint64
}

type CategoriesSnapshot struct {
	Categories []core.Category
	Loading    bool
	Err        error
}

func NewCategories(categoriesAPI CategoriesAPI, logger *log.Logger) *Categories {
	if logger == nil {
		logger = log.New(log.ComponentState, log.Config{})
	}
	return &Categories{api: categoriesAPI, logger: logger}
}

func (s *Categories) Snapshot() CategoriesSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, len(s.categories))
	copy(out, s.categories)
	return CategoriesSnapshot{Categories: out, Loading: s.loading, Err: s.err}
}

func (s *Categories) Load(ctx context.Context) error {
	seq := s.begin()
	categories, err := s.api.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.DebugContext(ctx, "dropping superseded categories response", log.FieldSeq, seq)
		return err
	}
	s.loading = false
	s.err = err
	if err == nil {
		s.categories = categories
	}
	return err
}

func (s *Categories) Create(ctx context.Context, in core.CategoryInput) (core.Category, error) {
	category, err := s.api.CreateCategory(ctx, in)
	if err != nil {
		s.fail(err)
		return core.Category{}, err
	}
	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.err = nil
	s.mu.Unlock()
	return category, nil
}

func (s *Categories) Update(ctx context.Context, id string, in core.CategoryInput) (core.Category, error) {
	category, err := s.api.UpdateCategory(ctx, id, in)
	if err != nil {
		s.fail(err)
		return core.Category{}, err
	}
	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i] = category
			break
		}
	}
	s.err = nil
	s.mu.Unlock()
	return category, nil
}

func (s *Categories) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Initialize seeds the backend's default categories and reloads the
// list. Hitting an already-seeded backend is a no-op, not a failure.
func (s *Categories) Initialize(ctx context.Context) error {
	err := s.api.InitializeCategories(ctx)
	if err != nil && !errors.Is(err, api.ErrAlreadySeeded) {
		s.fail(err)
		return err
	}
	if errors.Is(err, api.ErrAlreadySeeded) {
		s.logger.InfoContext(ctx, "default categories already seeded")
	}
	return s.Load(ctx)
}

// ByType returns the local categories of one type, in order.
func (s *Categories) ByType(tt core.TransactionType) []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Category
	for _, c := range s.categories {
		if c.Type == tt {
			out = append(out, c)
		}
	}
	return out
}

func (s *Categories) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	s.err = nil
	return s.seq
}

func (s *Categories) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
