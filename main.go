// repo-stats prints aggregate statistics for a single GitHub repository:
// metadata, languages, contributors, commits per ISO week and an
// approximate line-of-code total.
//
// Usage:
//
//	repo-stats golang/go
//	repo-stats --all-ext --verbose owner/name
package main

import "github.com/naka-gawa/repo-stats/cmd"

func main() {
	cmd.Execute()
}
