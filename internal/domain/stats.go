// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// RepoInfo holds the metadata of a resolved repository.
// It is read-only once returned by the gateway.
type RepoInfo struct {
	Owner         string
	Name          string
	FullName      string
	Description   string
	DefaultBranch string
	CreatedAt     time.Time
	Stars         int
	Forks         int
}

// EntryType classifies a node of the remote file tree.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// FileEntry is one node returned by a directory listing.
// Path doubles as the reference used to fetch the file's content.
type FileEntry struct {
	Path string
	Name string
	Type EntryType
	Size int
}

// IsDir reports whether the entry is a directory.
func (e FileEntry) IsDir() bool {
	return e.Type == EntryDir
}

// Commit is the part of a commit the week aggregation needs.
type Commit struct {
	AuthorDate time.Time
}

// Contributors is a contributor count that may be unavailable,
// e.g. when GitHub refuses to list contributors for very large repositories.
type Contributors struct {
	Count     int
	Available bool
}

func (c Contributors) String() string {
	if !c.Available {
		return "Unavailable"
	}
	return fmt.Sprintf("%d", c.Count)
}

// LanguageShare is a single row of the language breakdown.
type LanguageShare struct {
	Name    string
	Bytes   int
	Percent float64
}

// LanguageShares converts a language -> bytes map into rows sorted by
// descending byte count. Percentages are all zero when the total is zero.
func LanguageShares(languages map[string]int) []LanguageShare {
	total := 0
	for _, size := range languages {
		total += size
	}

	shares := make([]LanguageShare, 0, len(languages))
	for name, size := range languages {
		share := LanguageShare{Name: name, Bytes: size}
		if total > 0 {
			share.Percent = 100 * float64(size) / float64(total)
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}
