package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	models "grade-stats/app/models/mongodb"
)

type MockGradeRepo struct {
	mock.Mock
}

func (m *MockGradeRepo) FindByClass(ctx context.Context, classID int) ([]models.GradeRecord, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GradeRecord), args.Error(1)
}

func (m *MockGradeRepo) FindByLearner(ctx context.Context, learnerID int) ([]models.GradeRecord, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GradeRecord), args.Error(1)
}

// MockStatsCache stands in for the redis cache.
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
