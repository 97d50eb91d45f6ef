// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/repo-stats/internal/domain"
	"github.com/naka-gawa/repo-stats/internal/gateway"
)

// Reporter receives the report sections in order as soon as each one is ready.
type Reporter interface {
	RepositoryInfo(repo *domain.RepoInfo, contributors domain.Contributors)
	// Languages receives either the breakdown or the error that prevented it.
	Languages(shares []domain.LanguageShare, err error)
	CommitActivity(activity domain.CommitActivity)
	LinesOfCode(total int, allExtensions bool)
	Done()
}

// Options controls a single analysis run.
type Options struct {
	// Extensions restricts line counting to matching file names.
	Extensions []string
	// AllExtensions disables the extension filter.
	AllExtensions bool
}

// Aggregator is the use case for analyzing a repository.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// ParseFullName splits an "owner/name" identifier.
func ParseFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", fullName)
	}
	return owner, name, nil
}

// Run analyzes the repository and hands each section to out.
//
// Only two failures are fatal: resolving the repository, in which case out is
// never called, and listing the file tree. Everything else degrades the report.
func (a *Aggregator) Run(ctx context.Context, fullName string, opts Options, out Reporter) error {
	owner, name, err := ParseFullName(fullName)
	if err != nil {
		return fmt.Errorf("could not fetch '%s': %w", fullName, err)
	}
	repo, err := a.fetcher.Resolve(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("could not fetch '%s': %w", fullName, err)
	}
	a.logger.Info("Analyzing repository", "repo", repo.FullName)

	contributors := domain.Contributors{}
	if count, err := a.fetcher.FetchContributorCount(ctx, repo); err != nil {
		a.logger.Debug("Contributor count unavailable", "err", err)
	} else {
		contributors = domain.Contributors{Count: count, Available: true}
	}
	out.RepositoryInfo(repo, contributors)

	if languages, err := a.fetcher.FetchLanguages(ctx, repo); err != nil {
		out.Languages(nil, err)
	} else {
		out.Languages(domain.LanguageShares(languages), nil)
	}

	out.CommitActivity(a.commitActivity(ctx, repo))

	allExtensions := opts.AllExtensions || len(opts.Extensions) == 0
	var extensions []string
	if !allExtensions {
		extensions = opts.Extensions
	}
	entries, err := a.EnumerateFiles(ctx, repo, "")
	if err != nil {
		return fmt.Errorf("failed to enumerate repository tree: %w", err)
	}
	loc, err := a.CountLOC(ctx, repo, entries, extensions)
	if err != nil {
		return fmt.Errorf("failed to count lines of code: %w", err)
	}
	out.LinesOfCode(loc, allExtensions)

	out.Done()
	return nil
}

func (a *Aggregator) commitActivity(ctx context.Context, repo *domain.RepoInfo) domain.CommitActivity {
	weeks, truncated := a.AggregateWeeks(ctx, repo)
	activity := domain.CommitActivity{Weeks: weeks, Truncated: truncated}

	if summary, err := domain.SummarizeWeeks(weeks); err == nil {
		activity.Summary = &summary
	}

	total, err := a.fetcher.FetchCommitTotal(ctx, repo)
	switch {
	case err == nil:
		activity.TotalCommits, activity.TotalCommitsKnown = total, true
	case errors.Is(err, gateway.ErrGraphQLUnavailable):
		// Anonymous run.
	default:
		a.logger.Debug("Commit total unavailable", "err", err)
	}
	return activity
}
