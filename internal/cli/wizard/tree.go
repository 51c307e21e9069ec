package wizard

import (
	"fmt"
	"strings"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/ui"
)

// RenderRoutes draws the configured routes as a tree, shown between
// wizard iterations so the user sees what is already configured.
func RenderRoutes(theme *ui.Theme, routes []config.Route) string {
	var b strings.Builder
	b.WriteString(theme.Title("Routes Configuration"))
	b.WriteString("\n")

	if len(routes) == 0 {
		b.WriteString("└── " + theme.Muted("No routes added yet") + "\n")
		return b.String()
	}

	for i, route := range routes {
		last := i == len(routes)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(&b, "%s%d. %s\n", branch, i+1, theme.Accent(route.Key()))
		fmt.Fprintf(&b, "%s├── Data set: %s\n", indent, route.DataSet)
		b.WriteString(indent + "└── Middleware:\n")
		if len(route.Middleware) == 0 {
			b.WriteString(indent + "    └── " + theme.Muted("None") + "\n")
			continue
		}
		for j, name := range route.Middleware {
			mwBranch := "├── "
			if j == len(route.Middleware)-1 {
				mwBranch = "└── "
			}
			b.WriteString(indent + "    " + mwBranch + name + "\n")
		}
	}
	return b.String()
}
