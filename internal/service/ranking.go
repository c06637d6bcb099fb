package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"redacao_service/internal/domain"
)

type RankingService struct {
	submissionRepo SubmissionStore
	cache          Cache
	cacheTTL       time.Duration
}

func NewRankingService(submissionRepo SubmissionStore, cache Cache, cacheTTL time.Duration) *RankingService {
	return &RankingService{
		submissionRepo: submissionRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
	}
}

// leaderboardGenKey versions every leaderboard cache key. Bumping it
// when grading completes makes cached boards unreachable at once, so
// stale entries only linger until their TTL reclaims them.
const leaderboardGenKey = "leaderboard:gen"

// Leaderboard builds the top-5 tier ranking over fully graded
// submissions matching the filter. Results are cached briefly under a
// generation-versioned key.
func (s *RankingService) Leaderboard(ctx context.Context, filter domain.SubmissionFilter) ([]domain.LeaderboardEntry, error) {
	gen, _ := s.cache.Get(ctx, leaderboardGenKey)
	key := leaderboardKey(string(gen), filter)

	if data, ok := s.cache.Get(ctx, key); ok {
		var cached []domain.LeaderboardEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	submissions, err := s.submissionRepo.ListCorrected(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.GradedEntry, 0, len(submissions))
	for _, submission := range submissions {
		grade := domain.Consolidate(submission.Corrector1, submission.Corrector2)
		if grade.Total == nil {
			continue
		}
		entries = append(entries, domain.GradedEntry{
			StudentName: submission.StudentName,
			Total:       *grade.Total,
		})
	}

	board := domain.TopTiers(entries, domain.LeaderboardTiers)

	if data, err := json.Marshal(board); err == nil {
		s.cache.Set(ctx, key, data, s.cacheTTL)
	}

	return board, nil
}

func leaderboardKey(gen string, filter domain.SubmissionFilter) string {
	return fmt.Sprintf("leaderboard:%s:%s:%s:%s:%s:%d-%d",
		gen, filter.ClassCode, filter.StudentEmail, filter.Category, filter.ExamID, filter.Year, int(filter.Month))
}
