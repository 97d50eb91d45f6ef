// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/repo-stats/internal/domain"
)

var (
	// ErrNotFound is returned when a repository does not exist or is not visible to the caller.
	ErrNotFound = errors.New("repository not found")
	// ErrContentUnavailable is returned when GitHub does not inline a file's content,
	// which happens for files above the contents API size limit.
	ErrContentUnavailable = errors.New("content not available through the contents API")
	// ErrGraphQLUnavailable is returned by GraphQL-backed calls when no token was configured.
	ErrGraphQLUnavailable = errors.New("GraphQL API requires an access token")
)

const commitsPerPage = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	Resolve(ctx context.Context, owner, name string) (*domain.RepoInfo, error)
	ListDirectory(ctx context.Context, repo *domain.RepoInfo, path string) ([]domain.FileEntry, error)
	// FetchContent returns the file content exactly as GitHub sends it (base64).
	FetchContent(ctx context.Context, repo *domain.RepoInfo, path string) (string, error)
	FetchLanguages(ctx context.Context, repo *domain.RepoInfo) (map[string]int, error)
	FetchContributorCount(ctx context.Context, repo *domain.RepoInfo) (int, error)
	// StreamCommits calls fn for every commit in the order GitHub returns them.
	// An error returned after some commits were delivered means the history is truncated.
	StreamCommits(ctx context.Context, repo *domain.RepoInfo, fn func(domain.Commit)) error
	FetchCommitTotal(ctx context.Context, repo *domain.RepoInfo) (int, error)
}

// Options configures NewGitHubGateway. Every field is optional.
type Options struct {
	// Token authenticates requests. Without it the gateway runs with anonymous rate limits.
	Token string
	// BaseURL and UploadURL point the REST client at a GitHub Enterprise Server.
	BaseURL   string
	UploadURL string
	// GraphQLURL points the GraphQL client at a GitHub Enterprise Server.
	GraphQLURL string
	// MaxRateLimitSleep caps a single wait on a secondary rate limit.
	MaxRateLimitSleep time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client // nil when unauthenticated
	logger        *log.Logger
}

// commitTotalQuery reads the size of the default branch history.
type commitTotalQuery struct {
	Repository struct {
		DefaultBranchRef struct {
			Target struct {
				Commit struct {
					History struct {
						TotalCount int
					}
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *log.Logger) (*GitHubGateway, error) {
	maxSleep := opts.MaxRateLimitSleep
	if maxSleep <= 0 {
		maxSleep = time.Hour
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(maxSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	if opts.Token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	} else {
		logger.Debug("No access token configured, using anonymous rate limits")
	}

	restClient := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		uploadURL := opts.UploadURL
		if uploadURL == "" {
			uploadURL = opts.BaseURL
		}
		restClient, err = restClient.WithEnterpriseURLs(opts.BaseURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise URLs: %w", err)
		}
	}

	g := &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}
	if opts.Token != "" {
		if opts.GraphQLURL != "" {
			g.graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
		} else {
			g.graphqlClient = githubv4.NewClient(httpClient)
		}
	}
	return g, nil
}

// Resolve fetches repository metadata. A missing repository yields ErrNotFound.
func (g *GitHubGateway) Resolve(ctx context.Context, owner, name string) (*domain.RepoInfo, error) {
	g.logger.Debug("Resolving repository", "owner", owner, "name", name)
	repo, resp, err := g.restClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to get repository with REST API: %w", err)
	}
	return &domain.RepoInfo{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		DefaultBranch: repo.GetDefaultBranch(),
		CreatedAt:     repo.GetCreatedAt().Time,
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
	}, nil
}

// ListDirectory returns the immediate children of path. The empty path is the repository root.
func (g *GitHubGateway) ListDirectory(ctx context.Context, repo *domain.RepoInfo, path string) ([]domain.FileEntry, error) {
	g.logger.Debug("Listing directory", "path", path)
	_, dir, _, err := g.restClient.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents of %q: %w", path, err)
	}
	entries := make([]domain.FileEntry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, domain.FileEntry{
			Path: item.GetPath(),
			Name: item.GetName(),
			Type: domain.EntryType(item.GetType()),
			Size: item.GetSize(),
		})
	}
	return entries, nil
}

func (g *GitHubGateway) FetchContent(ctx context.Context, repo *domain.RepoInfo, path string) (string, error) {
	file, _, _, err := g.restClient.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get content of %q: %w", path, err)
	}
	if file == nil {
		return "", fmt.Errorf("%q is not a file", path)
	}
	if file.GetEncoding() == "none" || file.Content == nil {
		return "", fmt.Errorf("%q: %w", path, ErrContentUnavailable)
	}
	return *file.Content, nil
}

func (g *GitHubGateway) FetchLanguages(ctx context.Context, repo *domain.RepoInfo) (map[string]int, error) {
	g.logger.Debug("Fetching languages")
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages with REST API: %w", err)
	}
	return languages, nil
}

// FetchContributorCount asks for one contributor per page and reads the
// number of the last page, so the count costs a single request.
func (g *GitHubGateway) FetchContributorCount(ctx context.Context, repo *domain.RepoInfo) (int, error) {
	g.logger.Debug("Fetching contributor count")
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: 1}}
	contributors, resp, err := g.restClient.Repositories.ListContributors(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list contributors with REST API: %w", err)
	}
	if resp != nil && resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(contributors), nil
}

func (g *GitHubGateway) StreamCommits(ctx context.Context, repo *domain.RepoInfo, fn func(domain.Commit)) error {
	g.logger.Debug("Fetching commit history using REST API...")
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: commitsPerPage}}
	for {
		commits, resp, err := g.restClient.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return fmt.Errorf("failed to list commits with REST API: %w", err)
		}
		for _, c := range commits {
			date := c.GetCommit().GetAuthor().GetDate()
			if date.IsZero() {
				g.logger.Debug("Skipping commit without author date", "sha", c.GetSHA())
				continue
			}
			fn(domain.Commit{AuthorDate: date.Time})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("  Fetching next page of commits...", "page", opts.Page)
	}
	g.logger.Debug("Completed fetching commit history.")
	return nil
}

// FetchCommitTotal returns the number of commits on the default branch.
func (g *GitHubGateway) FetchCommitTotal(ctx context.Context, repo *domain.RepoInfo) (int, error) {
	if g.graphqlClient == nil {
		return 0, ErrGraphQLUnavailable
	}
	var q commitTotalQuery
	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for commit total: %w", err)
	}
	return q.Repository.DefaultBranchRef.Target.Commit.History.TotalCount, nil
}
