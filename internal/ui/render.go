package ui

import (
	"strings"

	"github.com/five82/octoscout/internal/github"
	"github.com/five82/octoscout/internal/state"
)

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	title := styles.Logo.Render("octoscout")
	if m.width >= LayoutCompactWidth {
		title += "  " + styles.MutedText.Render("GitHub user explorer")
	}
	return styles.Header.Width(m.width).Render(title)
}

// renderSearchBar renders the query input inside a bordered box.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	box := styles.InputBlurred
	if m.focus == focusSearch {
		box = styles.InputFocused
	}
	if m.width > 2 {
		box = box.Width(m.width - 2)
	}
	return box.Render(m.input.View())
}

// refreshBody re-renders the scrollable body and keeps the cursor row on screen.
func (m *Model) refreshBody() {
	if !m.ready {
		return
	}
	content, cursorLine := m.renderBody()
	m.viewport.SetContent(content)
	if cursorLine < 0 || m.viewport.Height <= 0 {
		return
	}
	switch {
	case cursorLine < m.viewport.YOffset:
		m.viewport.SetYOffset(cursorLine)
	case cursorLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

// renderBody returns the body text and the line index of the cursor row,
// or -1 when no list is shown.
func (m Model) renderBody() (string, int) {
	styles := m.theme.Styles()
	snap := m.snapshot
	var lines []string

	if snap.HasError() {
		lines = append(lines, m.renderBanner(snap.Err), "")
	}

	switch {
	case snap.Loading:
		lines = append(lines, m.spinner.View()+" "+styles.MutedText.Render(searchingLabel))
		return strings.Join(lines, "\n"), -1
	case !snap.SearchPerformed && !snap.HasError():
		lines = append(lines, styles.FaintText.Render(startHint))
		return strings.Join(lines, "\n"), -1
	case !snap.ShowResults():
		return strings.Join(lines, "\n"), -1
	}

	lines = append(lines, styles.MutedText.Render(`Showing users for "`+snap.ExecutedQuery+`"`), "")

	cursorLine := -1
	for i, u := range snap.Users {
		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderUserRow(u, i == m.cursor))
		if u.ID == m.expanded {
			lines = append(lines, m.renderRepositories(u)...)
		}
	}
	return strings.Join(lines, "\n"), cursorLine
}

func (m Model) renderBanner(msg string) string {
	styles := m.theme.Styles()
	banner := styles.Banner
	if m.width > 4 {
		banner = banner.MaxWidth(m.width)
	}
	return banner.Render(msg)
}

func (m Model) renderUserRow(u state.User, selected bool) string {
	styles := m.theme.Styles()
	chevron := chevronCollapsed
	if u.ID == m.expanded {
		chevron = chevronExpanded
	}

	row := chevron + " " + u.Login
	if u.Active {
		row += " •"
	}
	if selected && m.focus == focusResults {
		row = styles.Selected.Render(row)
	} else {
		row = styles.Text.Render(row)
	}
	if m.showURLs && m.width >= LayoutCompactWidth && u.HTMLURL != "" {
		row += "  " + styles.FaintText.Render(u.HTMLURL)
	}
	return row
}

// renderRepositories renders the expansion panel under a user row.
func (m Model) renderRepositories(u state.User) []string {
	styles := m.theme.Styles()
	indent := "    "

	switch {
	case u.LoadingRepos:
		return []string{indent + m.spinner.View() + " " + styles.MutedText.Render(loadingReposLabel)}
	case u.RepoErr != "":
		return []string{indent + styles.DangerText.Render(u.RepoErr)}
	case !u.ReposLoaded:
		return nil
	case len(u.Repositories) == 0:
		return []string{indent + styles.MutedText.Render(emptyRepositories)}
	}

	var lines []string
	for _, repo := range u.Repositories {
		lines = append(lines, m.renderRepository(repo, indent)...)
	}
	return lines
}

func (m Model) renderRepository(repo github.Repository, indent string) []string {
	styles := m.theme.Styles()
	name := styles.AccentText.Bold(true).Render(repo.Name)
	stars := styles.Stars.Render(starGlyph + " " + formatStars(repo.Stars))
	lines := []string{indent + name + "  " + stars}

	if repo.HasDescription() {
		width := DescriptionWidth
		if m.width > 0 {
			width = min(width, m.width-len(indent)-2)
		}
		lines = append(lines, indent+"  "+styles.MutedText.Render(truncate(repo.Description, width)))
	}

	if labels := topicLabels(repo.Topics); len(labels) > 0 {
		chips := make([]string, 0, len(labels))
		for i, label := range labels {
			style := styles.Topic
			if i == MaxTopics {
				style = styles.TopicMore
			}
			chips = append(chips, style.Render(label))
		}
		lines = append(lines, indent+"  "+strings.Join(chips, " "))
	}

	if m.showURLs && repo.HTMLURL != "" {
		lines = append(lines, indent+"  "+styles.FaintText.Render(repo.HTMLURL))
	}
	return lines
}
