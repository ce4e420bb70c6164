package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"wordbook/internal/domain"
	"wordbook/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// WordStore holds the ordered word list and writes it through to storage
// after every mutation
type WordStore struct {
	slots  repository.SlotRepository
	logger *zap.Logger

	mu    sync.RWMutex
	items []domain.WordRecord
}

// NewWordStore creates an empty word store
func NewWordStore(slots repository.SlotRepository, logger *zap.Logger) *WordStore {
	return &WordStore{
		slots:  slots,
		logger: logger,
	}
}

// Load reads the stored word list and appends its records without
// generating ids or writing back
func (s *WordStore) Load() error {
	data, found, err := s.slots.Get(domain.WordItemsKey)
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}
	if !found {
		s.logger.Info("No stored words, starting empty")
		return nil
	}

	var stored []domain.WordRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedStoredData, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.items)+len(stored))
	for _, item := range s.items {
		seen[item.ID] = struct{}{}
	}
	for i, item := range stored {
		if item.ID == "" {
			return fmt.Errorf("%w: record %d has no id", domain.ErrMalformedStoredData, i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", domain.ErrMalformedStoredData, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	for _, item := range stored {
		item.Usages = domain.NormalizeUsages(item.Usages)
		s.items = append(s.items, item)
	}

	s.logger.Info("Words loaded", zap.Int("count", len(stored)))
	return nil
}

// Register appends a new unmemorized word and returns its id
func (s *WordStore) Register(word, meaning string, usages []domain.Usage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := domain.WordRecord{
		ID:      uuid.NewString(),
		Word:    word,
		Meaning: meaning,
		Usages:  domain.NormalizeUsages(usages),
	}

	next := append(s.snapshot(), record)
	if err := s.persist(next); err != nil {
		return "", err
	}
	s.items = next

	s.logger.Info("Word registered", zap.String("id", record.ID), zap.String("word", word))
	return record.ID, nil
}

// Update merges patch over the word with the given id, keeping its position,
// and returns the updated word
func (s *WordStore) Update(id string, patch domain.WordPatch) (domain.WordRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		return domain.WordRecord{}, fmt.Errorf("update %q: %w", id, domain.ErrWordNotFound)
	}

	next := s.snapshot()
	next[index] = patch.Apply(next[index])
	if err := s.persist(next); err != nil {
		return domain.WordRecord{}, err
	}
	s.items = next

	s.logger.Info("Word updated",
		zap.String("id", id),
		zap.Bool("memorized", next[index].IsMarkedAsMemorized),
	)
	return next[index].Clone(), nil
}

// Unregister removes the word with the given id
func (s *WordStore) Unregister(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		return fmt.Errorf("unregister %q: %w", id, domain.ErrWordNotFound)
	}

	current := s.snapshot()
	next := append(current[:index:index], current[index+1:]...)
	if err := s.persist(next); err != nil {
		return err
	}
	s.items = next

	s.logger.Info("Word unregistered", zap.String("id", id))
	return nil
}

// MarkAsMemorized moves a word to the completed list
func (s *WordStore) MarkAsMemorized(id string) error {
	memorized := true
	_, err := s.Update(id, domain.WordPatch{IsMarkedAsMemorized: &memorized})
	return err
}

// UnmarkAsMemorized moves a word back to the active list
func (s *WordStore) UnmarkAsMemorized(id string) error {
	memorized := false
	_, err := s.Update(id, domain.WordPatch{IsMarkedAsMemorized: &memorized})
	return err
}

// All returns a copy of every word in insertion order
func (s *WordStore) All() []domain.WordRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// FindByID returns a copy of the word with the given id
func (s *WordStore) FindByID(id string) (domain.WordRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := lo.Find(s.items, func(item domain.WordRecord) bool {
		return item.ID == id
	})
	if !ok {
		return domain.WordRecord{}, false
	}
	return record.Clone(), true
}

// snapshot deep-copies the collection; caller holds the lock
func (s *WordStore) snapshot() []domain.WordRecord {
	return lo.Map(s.items, func(item domain.WordRecord, _ int) domain.WordRecord {
		return item.Clone()
	})
}

// indexOf returns the position of id or -1; caller holds the lock
func (s *WordStore) indexOf(id string) int {
	_, index, _ := lo.FindIndexOf(s.items, func(item domain.WordRecord) bool {
		return item.ID == id
	})
	return index
}

// persist writes the full collection to the word slot
func (s *WordStore) persist(items []domain.WordRecord) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode words: %w", err)
	}

	if err := s.slots.Set(domain.WordItemsKey, data); err != nil {
		s.logger.Error("Failed to persist words", zap.Error(err))
		return fmt.Errorf("failed to persist words: %w", err)
	}
	return nil
}
