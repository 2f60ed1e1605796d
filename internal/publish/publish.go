// Package publish orchestrates a full documentation run: discover both
// API families, copy specs, render pages, and update the version catalog.
package publish

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/beezly/specdocs/internal/catalog"
	"github.com/beezly/specdocs/internal/config"
	"github.com/beezly/specdocs/internal/discovery"
	"github.com/beezly/specdocs/internal/render"
)

// Publisher runs the documentation pipeline for one configuration.
type Publisher struct {
	cfg  config.Config
	site *render.Site
}

// BuildReport summarizes what a build run produced.
type BuildReport struct {
	Docs         []render.FamilyDocs
	SpecCount    int
	PageCount    int
	GuideWritten bool
	// NewVersions lists versions recorded in the catalog for the first
	// time, keyed by family name. Nil when no catalog is configured.
	NewVersions map[string][]string
}

// New creates a publisher from the given configuration.
func New(cfg config.Config) (*Publisher, error) {
	site, err := render.NewSite(cfg.SiteTitle, cfg.SiteSubtitle, cfg.RepoURL)
	if err != nil {
		return nil, fmt.Errorf("create site renderer: %w", err)
	}
	return &Publisher{cfg: cfg, site: site}, nil
}

// Families returns the configured API families in display order.
func (p *Publisher) Families() []render.Family {
	return []render.Family{
		{Name: "network", Title: "UniFi Network", SpecDir: p.cfg.NetworkDir},
		{Name: "protect", Title: "UniFi Protect", SpecDir: p.cfg.ProtectDir},
	}
}

// Discover scans every family's spec directory. Any filename that does
// not parse as a version fails the whole run.
func (p *Publisher) Discover() ([]render.FamilyDocs, error) {
	var docs []render.FamilyDocs
	for _, fam := range p.Families() {
		specs, err := discovery.Discover(fam.SpecDir)
		if err != nil {
			return nil, fmt.Errorf("discover %s specs: %w", fam.Name, err)
		}
		docs = append(docs, render.FamilyDocs{Family: fam, Specs: specs})
	}
	return docs, nil
}

// BuildDocs discovers all families and writes the full docs tree: spec
// copies, one viewer page per spec, the index page, and the guide page
// when a guide source exists. When a catalog is configured, every
// discovered version is recorded and newly seen versions are reported.
func (p *Publisher) BuildDocs(now time.Time) (*BuildReport, error) {
	docs, err := p.Discover()
	if err != nil {
		return nil, err
	}

	report := &BuildReport{Docs: docs}
	for _, d := range docs {
		if err := p.site.WriteSpecCopies(p.cfg.DocsDir, d.Family, d.Specs); err != nil {
			return nil, err
		}
		if err := p.site.WriteViewerPages(p.cfg.DocsDir, d.Family, d.Specs); err != nil {
			return nil, err
		}
		report.SpecCount += len(d.Specs)
		report.PageCount += len(d.Specs)
	}

	if err := p.site.WriteIndex(p.cfg.DocsDir, docs); err != nil {
		return nil, err
	}
	report.PageCount++

	if p.cfg.GuidePath != "" {
		written, err := p.site.WriteGuide(p.cfg.DocsDir, p.cfg.GuidePath)
		if err != nil {
			return nil, err
		}
		if written {
			report.GuideWritten = true
			report.PageCount++
		}
	}

	if p.cfg.CatalogPath != "" {
		if err := p.recordRun(report, now); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (p *Publisher) recordRun(report *BuildReport, now time.Time) error {
	cat, err := catalog.Open(p.cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("open catalog %s: %w", p.cfg.CatalogPath, err)
	}
	defer cat.Close() //nolint:errcheck

	report.NewVersions = make(map[string][]string)
	newCount := 0
	for _, d := range report.Docs {
		fresh, err := cat.RecordVersions(d.Family.Name, d.Specs, now)
		if err != nil {
			return err
		}
		if len(fresh) > 0 {
			report.NewVersions[d.Family.Name] = fresh
			newCount += len(fresh)
		}
	}

	return cat.RecordRun(now, len(report.Docs), report.SpecCount, newCount)
}

// UpdateReadme discovers all families and rewrites the README with the
// given date stamp.
func (p *Publisher) UpdateReadme(date time.Time) error {
	docs, err := p.Discover()
	if err != nil {
		return err
	}
	return p.site.WriteReadme(p.cfg.ReadmePath, docs, date)
}

// IndexPath returns where the generated landing page ends up.
func (p *Publisher) IndexPath() string {
	return filepath.Join(p.cfg.DocsDir, "index.html")
}
