// Package ui embeds the page templates and static assets into the binary.
package ui

import "embed"

//go:embed "html" "static"
var Files embed.FS
