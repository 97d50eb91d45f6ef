package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/repo-stats/internal/domain"
)

func commitAt(year int, month time.Month, day int) domain.Commit {
	return domain.Commit{AuthorDate: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}

var fiveCommits = []domain.Commit{
	commitAt(2024, time.March, 6),
	commitAt(2024, time.March, 5),
	commitAt(2024, time.February, 14),
	commitAt(2021, time.January, 1),
	commitAt(2020, time.December, 31),
}

func TestAggregator_AggregateWeeks(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("StreamCommits", mock.Anything, testRepo, mock.Anything).
		Run(deliverCommits(fiveCommits...)).
		Return(nil)

	aggregator := NewAggregator(fetcher, log.New(io.Discard))
	weeks, err := aggregator.AggregateWeeks(context.Background(), testRepo)

	require.NoError(t, err)
	assert.Equal(t, domain.WeekBuckets{"2024-W10": 2, "2024-W07": 1, "2020-W53": 2}, weeks)
	fetcher.AssertExpectations(t)
}

func TestAggregator_AggregateWeeks_Truncated(t *testing.T) {
	truncation := errors.New("403 API rate limit exceeded")

	fetcher := new(mockFetcher)
	fetcher.On("StreamCommits", mock.Anything, testRepo, mock.Anything).
		Run(deliverCommits(fiveCommits[:2]...)).
		Return(truncation)

	aggregator := NewAggregator(fetcher, log.New(io.Discard))
	weeks, err := aggregator.AggregateWeeks(context.Background(), testRepo)

	assert.ErrorIs(t, err, truncation)
	assert.Equal(t, domain.WeekBuckets{"2024-W10": 2}, weeks)
	assert.Equal(t, 2, weeks.Total())
}

func TestAggregator_AggregateWeeks_EmptyHistory(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("StreamCommits", mock.Anything, testRepo, mock.Anything).Return(nil)

	aggregator := NewAggregator(fetcher, log.New(io.Discard))
	weeks, err := aggregator.AggregateWeeks(context.Background(), testRepo)

	require.NoError(t, err)
	assert.NotNil(t, weeks)
	assert.Empty(t, weeks)
}
