package usecase

import (
	"context"

	"github.com/naka-gawa/repo-stats/internal/domain"
)

// AggregateWeeks counts commits per ISO week. If the history cannot be read to
// the end, the weeks gathered so far are returned together with the error, which
// callers should treat as a truncation notice rather than a failure.
func (a *Aggregator) AggregateWeeks(ctx context.Context, repo *domain.RepoInfo) (domain.WeekBuckets, error) {
	weeks := domain.WeekBuckets{}
	err := a.fetcher.StreamCommits(ctx, repo, func(c domain.Commit) {
		weeks.Add(c.AuthorDate)
	})
	if err != nil {
		a.logger.Warn("Commit history truncated", "commits", weeks.Total(), "err", err)
		return weeks, err
	}
	a.logger.Debug("Commit history aggregated", "commits", weeks.Total(), "weeks", len(weeks))
	return weeks, nil
}
