package service

import (
	"wordbook/internal/domain"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// StatsService reports word counts per grouping
type StatsService struct {
	store  *WordStore
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(store *WordStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// Summary counts active and completed words
func (s *StatsService) Summary() domain.Stats {
	words := s.store.All()
	completed := lo.CountBy(words, func(w domain.WordRecord) bool {
		return w.IsMarkedAsMemorized
	})

	return domain.Stats{
		Total:     len(words),
		Active:    len(words) - completed,
		Completed: completed,
	}
}

// LogSummary writes the current counts to the log
func (s *StatsService) LogSummary() {
	stats := s.Summary()
	s.logger.Info("Word list summary",
		zap.Int("total", stats.Total),
		zap.Int("active", stats.Active),
		zap.Int("completed", stats.Completed),
	)
}
