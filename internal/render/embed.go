package render

import "embed"

// templateFS embeds the page and README templates into the binary so the
// tool runs from any working directory.
//
//go:embed templates/*.tmpl
var templateFS embed.FS
