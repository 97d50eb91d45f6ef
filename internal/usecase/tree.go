package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/repo-stats/internal/domain"
)

// EnumerateFiles walks the remote tree below root breadth-first and returns every
// non-directory entry. Each directory is listed exactly once. A listing error aborts
// the walk; no partial result is returned.
func (a *Aggregator) EnumerateFiles(ctx context.Context, repo *domain.RepoInfo, root string) ([]domain.FileEntry, error) {
	queue := []string{root}
	var files []domain.FileEntry
	listed := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := a.fetcher.ListDirectory(ctx, repo, current)
		if err != nil {
			return nil, fmt.Errorf("failed to list directory %q: %w", current, err)
		}
		listed++

		for _, child := range children {
			if child.IsDir() {
				queue = append(queue, child.Path)
				continue
			}
			files = append(files, child)
		}
	}

	a.logger.Debug("Repository tree enumerated", "directories", listed, "files", len(files))
	return files, nil
}
