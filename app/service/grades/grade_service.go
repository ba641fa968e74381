package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"grade-stats/app/calculator"
	models "grade-stats/app/models/mongodb"
	repoMongo "grade-stats/app/repository/mongodb"
	repoRedis "grade-stats/app/repository/redis"
)

// DefaultQueryTimeout bounds every store call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

type GradeService struct {
	repo    repoMongo.GradeRepository
	cache   repoRedis.StatsCache
	policy  calculator.Policy
	timeout time.Duration
	log     *zap.Logger
}

type Option func(*GradeService)

// WithCache enables read-through caching of computed results.
func WithCache(c repoRedis.StatsCache) Option {
	return func(s *GradeService) { s.cache = c }
}

func WithPolicy(p calculator.Policy) Option {
	return func(s *GradeService) { s.policy = p }
}

func WithTimeout(d time.Duration) Option {
	return func(s *GradeService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *GradeService) { s.log = l }
}

func NewGradeService(repo repoMongo.GradeRepository, opts ...Option) *GradeService {
	s := &GradeService{
		repo:    repo,
		policy:  calculator.PolicyZero,
		timeout: DefaultQueryTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClassStats returns the pass-rate summary of one class. A class without any
// scored learner yields calculator.ErrEmptyResultSet.
func (s *GradeService) ClassStats(ctx context.Context, classID int) (models.ClassSummary, error) {
	var summary models.ClassSummary
	key := fmt.Sprintf("class:%d:stats:%s", classID, s.policy)
	if s.cacheGet(ctx, key, &summary) {
		return summary, nil
	}

	learners, err := s.classLearners(ctx, classID, "stats")
	if err != nil {
		return summary, err
	}
	summary, err = calculator.Summarize(learners)
	if err != nil {
		return summary, err
	}

	s.cacheSet(ctx, key, summary)
	return summary, nil
}

// ClassLearnerAverages returns every learner's weighted average in a class,
// ordered by learner id.
func (s *GradeService) ClassLearnerAverages(ctx context.Context, classID int) ([]models.LearnerAverage, error) {
	return s.classLearners(ctx, classID, "learner averages")
}

// LearnerClassAverages returns a learner's weighted average for each class
// they have records in. No records yields an empty slice.
func (s *GradeService) LearnerClassAverages(ctx context.Context, learnerID int) ([]models.LearnerClassAverage, error) {
	averages := make([]models.LearnerClassAverage, 0)
	key := fmt.Sprintf("learner:%d:avg-class:%s", learnerID, s.policy)
	if s.cacheGet(ctx, key, &averages) {
		return averages, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.repo.FindByLearner(ctx, learnerID)
	if err != nil {
		return nil, &StorageError{Op: "class averages", Subject: "learner", ID: learnerID, Err: err}
	}

	averages = calculator.ClassAverages(records, s.policy)
	s.cacheSet(ctx, key, averages)
	return averages, nil
}

func (s *GradeService) classLearners(ctx context.Context, classID int, op string) ([]models.LearnerAverage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.repo.FindByClass(ctx, classID)
	if err != nil {
		return nil, &StorageError{Op: op, Subject: "class", ID: classID, Err: err}
	}
	return calculator.LearnerAverages(records, s.policy), nil
}

// Cache failures are logged and otherwise ignored.
func (s *GradeService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *GradeService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.log.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}
