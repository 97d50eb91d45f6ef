package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/repo-stats/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Resolve(ctx context.Context, owner, name string) (*domain.RepoInfo, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepoInfo), args.Error(1)
}

func (m *mockFetcher) ListDirectory(ctx context.Context, repo *domain.RepoInfo, path string) ([]domain.FileEntry, error) {
	args := m.Called(ctx, repo, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileEntry), args.Error(1)
}

func (m *mockFetcher) FetchContent(ctx context.Context, repo *domain.RepoInfo, path string) (string, error) {
	args := m.Called(ctx, repo, path)
	return args.String(0), args.Error(1)
}

func (m *mockFetcher) FetchLanguages(ctx context.Context, repo *domain.RepoInfo) (map[string]int, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockFetcher) FetchContributorCount(ctx context.Context, repo *domain.RepoInfo) (int, error) {
	args := m.Called(ctx, repo)
	return args.Int(0), args.Error(1)
}

// StreamCommits only records the call; use Run on the expectation to deliver commits.
func (m *mockFetcher) StreamCommits(ctx context.Context, repo *domain.RepoInfo, fn func(domain.Commit)) error {
	args := m.Called(ctx, repo, fn)
	return args.Error(0)
}

func (m *mockFetcher) FetchCommitTotal(ctx context.Context, repo *domain.RepoInfo) (int, error) {
	args := m.Called(ctx, repo)
	return args.Int(0), args.Error(1)
}

// deliverCommits returns a Run function that feeds commits to the StreamCommits callback.
func deliverCommits(commits ...domain.Commit) func(mock.Arguments) {
	return func(args mock.Arguments) {
		fn := args.Get(2).(func(domain.Commit))
		for _, c := range commits {
			fn(c)
		}
	}
}
