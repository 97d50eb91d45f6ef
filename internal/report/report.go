// Package report renders analysis results as banner-separated plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/repo-stats/internal/domain"
)

const dateLayout = "2006-01-02"

// Printer writes report sections to an io.Writer.
// Titles are bold on a terminal and plain everywhere else.
type Printer struct {
	w     io.Writer
	title lipgloss.Style
}

// NewPrinter creates a Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	renderer := lipgloss.NewRenderer(w)
	return &Printer{
		w:     w,
		title: renderer.NewStyle().Bold(true),
	}
}

func (p *Printer) banner(title string) {
	fmt.Fprintf(p.w, "\n%s\n%s\n", p.title.Render(title), strings.Repeat("-", len(title)))
}

func (p *Printer) RepositoryInfo(repo *domain.RepoInfo, contributors domain.Contributors) {
	description := repo.Description
	if description == "" {
		description = "—"
	}

	p.banner("Repository Info")
	fmt.Fprintf(p.w, "Name           : %s\n", repo.FullName)
	fmt.Fprintf(p.w, "Description    : %s\n", description)
	fmt.Fprintf(p.w, "Default branch : %s\n", repo.DefaultBranch)
	fmt.Fprintf(p.w, "Created        : %s\n", repo.CreatedAt.UTC().Format(dateLayout))
	fmt.Fprintf(p.w, "Stars          : %d\n", repo.Stars)
	fmt.Fprintf(p.w, "Forks          : %d\n", repo.Forks)
	fmt.Fprintf(p.w, "Contributors   : %s\n", contributors)
}

func (p *Printer) Languages(shares []domain.LanguageShare, err error) {
	p.banner("Languages Used")
	if err != nil {
		fmt.Fprintf(p.w, "Unavailable: %v\n", err)
		return
	}
	if len(shares) == 0 {
		fmt.Fprintln(p.w, "No languages detected")
		return
	}
	for _, s := range shares {
		fmt.Fprintf(p.w, "%-15s %10d bytes  (%5.2f%%)\n", s.Name, s.Bytes, s.Percent)
	}
}

func (p *Printer) CommitActivity(activity domain.CommitActivity) {
	p.banner("Commits per ISO Week")
	for _, week := range activity.Weeks.SortedKeys() {
		fmt.Fprintf(p.w, "%s: %d\n", week, activity.Weeks[week])
	}
	if len(activity.Weeks) == 0 && activity.Truncated == nil {
		fmt.Fprintln(p.w, "No commits found")
	}

	if activity.Summary != nil || activity.TotalCommitsKnown {
		fmt.Fprintln(p.w)
	}
	if activity.TotalCommitsKnown {
		fmt.Fprintf(p.w, "Total commits (default branch): %d\n", activity.TotalCommits)
	}
	if s := activity.Summary; s != nil {
		fmt.Fprintf(p.w, "Active weeks: %d, mean %.2f, median %.2f, busiest %s (%d)\n",
			s.ActiveWeeks, s.Mean, s.Median, s.BusiestWeek, s.BusiestCount)
	}
	if activity.Truncated != nil {
		fmt.Fprintf(p.w, "Commit history truncated: %v\n", activity.Truncated)
	}
}

func (p *Printer) LinesOfCode(total int, allExtensions bool) {
	note := "selected extensions"
	if allExtensions {
		note = "all file types"
	}
	p.banner("Lines of Code")
	fmt.Fprintf(p.w, "Total LOC (%s): %d\n", note, total)
}

func (p *Printer) Done() {
	fmt.Fprintln(p.w, "\nAnalysis complete!")
}
