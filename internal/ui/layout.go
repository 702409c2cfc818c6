package ui

import "errors"

// Display limits.
const (
	// MaxTopics is the number of topic chips shown per repository.
	MaxTopics = 5

	// DescriptionWidth caps a repository description on one line.
	DescriptionWidth = 120

	// LayoutCompactWidth is the threshold below which URLs and the logo are hidden.
	LayoutCompactWidth = 80
)

// User-facing text.
const (
	searchPlaceholder = "Enter username"
	emptyRepositories = "This user has no public repositories."
	searchingLabel    = "Searching..."
	loadingReposLabel = "Loading repositories..."
	startHint         = "Type a GitHub username and press enter."
)

// Row markers.
const (
	chevronCollapsed = "▸"
	chevronExpanded  = "▾"
	starGlyph        = "★"
)

var errNoController = errors.New("ui: controller is required")
