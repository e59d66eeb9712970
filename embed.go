package portfolio

import "embed"

// EmbeddedAssets contains static assets shipped with the binary:
// portfolio.css and favicon.svg.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
