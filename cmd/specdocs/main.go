package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beezly/specdocs/internal/catalog"
	"github.com/beezly/specdocs/internal/config"
	"github.com/beezly/specdocs/internal/publish"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "specdocs",
		Short: "Generate versioned OpenAPI documentation for the UniFi APIs",
		Long: "specdocs discovers versioned OpenAPI spec files for the Network and\n" +
			"Protect API families, publishes a static documentation site, and keeps\n" +
			"the repository README in sync with the available versions.",
		RunE: runAll,
	}

	// Flags live on the root so every subcommand shares them.
	f := rootCmd.PersistentFlags()
	f.String("network-dir", "unifi-network", "directory containing Network API spec files")
	f.String("protect-dir", "unifi-protect", "directory containing Protect API spec files")
	f.String("docs-dir", "docs", "output directory for the generated site")
	f.String("readme", "README.md", "path of the README to regenerate")
	f.String("catalog", "", "path of the SQLite version catalog (empty disables it)")
	f.String("guide", "", "markdown file rendered as a guide page (missing file is skipped)")
	f.String("site-title", "UniFi API Documentation", "title of the generated site")
	f.String("site-subtitle", "OpenAPI 3.1.0 Specifications for UniFi Network and Protect APIs", "subtitle shown under the site title")
	f.String("repo-url", "https://github.com/beezly/unifi-apis", "repository link shown in the site footer")

	// Bind flags to viper. Viper keys use underscores (network_dir) so they
	// match the env var suffix after stripping the SPECDOCS_ prefix.
	bindFlag := func(viperKey, flagName string) {
		_ = viper.BindPFlag(viperKey, f.Lookup(flagName))
	}
	bindFlag("network_dir", "network-dir")
	bindFlag("protect_dir", "protect-dir")
	bindFlag("docs_dir", "docs-dir")
	bindFlag("readme", "readme")
	bindFlag("catalog", "catalog")
	bindFlag("guide", "guide")
	bindFlag("site_title", "site-title")
	bindFlag("site_subtitle", "site-subtitle")
	bindFlag("repo_url", "repo-url")

	viper.SetEnvPrefix("SPECDOCS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Copy specs and generate the documentation site",
			RunE:  runBuild,
		},
		&cobra.Command{
			Use:   "readme",
			Short: "Regenerate the README version listing",
			RunE:  runReadme,
		},
		&cobra.Command{
			Use:   "catalog",
			Short: "Show recorded runs and known versions from the catalog",
			RunE:  runCatalog,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the specdocs version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(config.Version)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAll(cmd *cobra.Command, args []string) error {
	if err := runBuild(cmd, args); err != nil {
		return err
	}
	return runReadme(cmd, args)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	p, err := publish.New(cfg)
	if err != nil {
		return err
	}

	report, err := p.BuildDocs(time.Now())
	if err != nil {
		return err
	}

	for _, d := range report.Docs {
		fmt.Printf("Found %d %s API spec(s)\n", len(d.Specs), d.Family.Title)
	}
	for family, versions := range report.NewVersions {
		fmt.Printf("New %s version(s): %s\n", family, strings.Join(versions, ", "))
	}
	if report.GuideWritten {
		fmt.Println("Generated guide page")
	}
	fmt.Printf("Generated: %s\n", p.IndexPath())
	fmt.Printf("Total pages generated: %d\n", report.PageCount)
	return nil
}

func runReadme(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	p, err := publish.New(cfg)
	if err != nil {
		return err
	}

	if err := p.UpdateReadme(time.Now()); err != nil {
		return err
	}
	fmt.Printf("Updated: %s\n", cfg.ReadmePath)
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.CatalogPath == "" {
		return fmt.Errorf("no catalog configured; pass --catalog or set SPECDOCS_CATALOG")
	}

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("open catalog %s: %w", cfg.CatalogPath, err)
	}
	defer cat.Close() //nolint:errcheck

	runs, err := cat.ListRuns(10)
	if err != nil {
		return err
	}
	fmt.Println("Recent runs:")
	if len(runs) == 0 {
		fmt.Println("  (none)")
	}
	for _, r := range runs {
		fmt.Printf("  %s  families=%d specs=%d new=%d\n", r.StartedAt, r.Families, r.Specs, r.NewSpecs)
	}

	p, err := publish.New(cfg)
	if err != nil {
		return err
	}
	for _, fam := range p.Families() {
		known, err := cat.KnownVersions(fam.Name)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s API: %d known version(s)\n", fam.Title, len(known))
		for _, k := range known {
			fmt.Printf("  %s  (%s, first seen %s)\n", k.Version, k.Filename, k.FirstSeen)
		}
	}
	return nil
}
