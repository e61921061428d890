// Package web embeds the compiled frontend bundle. The dist directory is
// produced by the frontend build; a placeholder index.html keeps the embed
// valid in source-only checkouts.
package web

import "embed"

//go:embed all:dist
var DistFS embed.FS
