// Package bombfour embeds the page templates and static assets of the web UI.
package bombfour

import "embed"

//go:embed templates static
var Content embed.FS
