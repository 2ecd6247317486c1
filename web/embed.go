// Package web embeds the browser frontend served under /static.
package web

import "embed"

//go:embed static
var StaticFiles embed.FS
