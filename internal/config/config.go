// Package config loads runtime configuration for specdocs from viper.
package config

import "github.com/spf13/viper"

// Version is set at build time via -ldflags.
var Version = "dev"

// Config holds all runtime configuration for specdocs.
type Config struct {
	NetworkDir   string // directory holding Network API spec files
	ProtectDir   string // directory holding Protect API spec files
	DocsDir      string // output directory for the published site
	ReadmePath   string // README to regenerate
	CatalogPath  string // SQLite version catalog; empty disables it
	GuidePath    string // markdown guide rendered into the site; missing file is skipped
	SiteTitle    string
	SiteSubtitle string
	RepoURL      string
}

// Load reads configuration from viper, which merges flag values, env vars,
// and defaults (set up by the cobra command in cmd/specdocs).
func Load() Config {
	return Config{
		NetworkDir:   viper.GetString("network_dir"),
		ProtectDir:   viper.GetString("protect_dir"),
		DocsDir:      viper.GetString("docs_dir"),
		ReadmePath:   viper.GetString("readme"),
		CatalogPath:  viper.GetString("catalog"),
		GuidePath:    viper.GetString("guide"),
		SiteTitle:    viper.GetString("site_title"),
		SiteSubtitle: viper.GetString("site_subtitle"),
		RepoURL:      viper.GetString("repo_url"),
	}
}
