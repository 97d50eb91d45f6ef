package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/naka-gawa/repo-stats/internal/domain"
)

var errBinaryContent = errors.New("content is not valid UTF-8 text")

// CountLOC sums the line counts of every entry whose name ends with one of
// extensions. An empty extension list counts every file. Files that cannot be
// fetched or decoded contribute nothing; the total is an approximation.
// The only error returned is a cancelled context.
func (a *Aggregator) CountLOC(ctx context.Context, repo *domain.RepoInfo, entries []domain.FileEntry, extensions []string) (int, error) {
	total, counted := 0, 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if !matchesExtension(entry.Name, extensions) {
			continue
		}

		raw, err := a.fetcher.FetchContent(ctx, repo, entry.Path)
		if err != nil {
			a.logger.Debug("Skipping file", "path", entry.Path, "err", err)
			continue
		}
		data, err := decodeContent(raw)
		if err != nil {
			a.logger.Debug("Skipping file", "path", entry.Path, "err", err)
			continue
		}
		total += CountLines(data)
		counted++
	}
	a.logger.Debug("Lines of code counted", "files", counted, "lines", total)
	return total, nil
}

func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// decodeContent decodes the base64 payload of the contents API, which is
// wrapped with newlines, and rejects anything that is not text.
func decodeContent(raw string) ([]byte, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(raw)
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, errBinaryContent
	}
	return data, nil
}

// CountLines counts lines separated by "\n", "\r\n" or "\r".
// A final line without a terminator is counted; empty input has zero lines.
func CountLines(data []byte) int {
	lines := 0
	for len(data) > 0 {
		i := bytes.IndexAny(data, "\r\n")
		lines++
		if i < 0 {
			break
		}
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			i++
		}
		data = data[i+1:]
	}
	return lines
}
