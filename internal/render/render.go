// Package render writes the publishable documentation tree: copied spec
// files, a ReDoc viewer page per version, the index landing page, the
// repository README, and an optional markdown guide page.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/beezly/specdocs/internal/discovery"
)

// Family is one API product line whose spec versions are tracked
// independently of the others.
type Family struct {
	Name    string // URL-safe slug used in generated filenames, e.g. "network"
	Title   string // display name, e.g. "UniFi Network"
	SpecDir string // repository-relative directory holding <version>.json files
}

// FamilyDocs pairs a family with its discovered spec files.
type FamilyDocs struct {
	Family Family
	Specs  discovery.Collection
}

// Site renders all output artifacts. Construct with NewSite; the zero
// value is not usable.
type Site struct {
	title    string
	subtitle string
	repoURL  string
	html     *template.Template
	readme   *texttemplate.Template
	md       goldmark.Markdown
}

// NewSite parses the embedded templates and returns a renderer.
func NewSite(title, subtitle, repoURL string) (*Site, error) {
	html, err := template.New("").ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}

	readme, err := texttemplate.New("").ParseFS(templateFS, "templates/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse readme template: %w", err)
	}

	return &Site{
		title:    title,
		subtitle: subtitle,
		repoURL:  repoURL,
		html:     html,
		readme:   readme,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// specOutputName is the family-prefixed name a spec is copied to inside
// the output directory.
func specOutputName(fam Family, spec discovery.SpecFile) string {
	return fmt.Sprintf("%s-%s.json", fam.Name, spec.Version)
}

// pageOutputName is the viewer page filename for a spec.
func pageOutputName(fam Family, spec discovery.SpecFile) string {
	return fmt.Sprintf("%s-%s.html", fam.Name, spec.Version)
}

// WriteSpecCopies copies every spec in the collection into outDir under
// its family-prefixed name. Spec content is opaque; bytes are copied
// verbatim, never parsed.
func (s *Site) WriteSpecCopies(outDir string, fam Family, specs discovery.Collection) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}
	for _, spec := range specs {
		data, err := os.ReadFile(spec.Path)
		if err != nil {
			return fmt.Errorf("read spec %s: %w", spec.Path, err)
		}
		dest := filepath.Join(outDir, specOutputName(fam, spec))
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("copy spec to %s: %w", dest, err)
		}
	}
	return nil
}

type viewerData struct {
	Title    string
	SpecHref string
}

// WriteViewerPages writes one standalone ReDoc page per spec, referencing
// the copied spec by relative filename.
func (s *Site) WriteViewerPages(outDir string, fam Family, specs discovery.Collection) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}
	for _, spec := range specs {
		data := viewerData{
			Title:    fmt.Sprintf("%s API %s", fam.Title, spec.Version),
			SpecHref: specOutputName(fam, spec),
		}
		dest := filepath.Join(outDir, pageOutputName(fam, spec))
		if err := s.writeTemplate(dest, "viewer.html.tmpl", data); err != nil {
			return err
		}
	}
	return nil
}

type specLink struct {
	Version  string
	DocsHref string
	JSONHref string
}

type familyView struct {
	Name   string
	Title  string
	Count  int
	Latest *specLink
	Older  []specLink
}

type indexData struct {
	Title    string
	Subtitle string
	RepoURL  string
	Families []familyView
}

// WriteIndex writes the index.html landing page summarizing every family.
// Families with no versions get an explicit placeholder rather than a
// missing section.
func (s *Site) WriteIndex(outDir string, docs []FamilyDocs) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	data := indexData{
		Title:    s.title,
		Subtitle: s.subtitle,
		RepoURL:  s.repoURL,
	}
	for _, d := range docs {
		view := familyView{
			Name:  d.Family.Name,
			Title: d.Family.Title,
			Count: len(d.Specs),
		}
		if latest := d.Specs.Latest(); latest != nil {
			view.Latest = &specLink{
				Version:  latest.Version.String(),
				DocsHref: pageOutputName(d.Family, *latest),
				JSONHref: specOutputName(d.Family, *latest),
			}
		}
		for _, spec := range d.Specs.Older() {
			view.Older = append(view.Older, specLink{
				Version:  spec.Version.String(),
				DocsHref: pageOutputName(d.Family, spec),
				JSONHref: specOutputName(d.Family, spec),
			})
		}
		data.Families = append(data.Families, view)
	}

	return s.writeTemplate(filepath.Join(outDir, "index.html"), "index.html.tmpl", data)
}

type guideData struct {
	Title string
	Body  template.HTML
}

// WriteGuide renders a repository markdown file to guide.html in outDir.
// It reports whether a page was written; a missing source file skips the
// page without error.
func (s *Site) WriteGuide(outDir, srcPath string) (bool, error) {
	src, err := os.ReadFile(srcPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read guide %s: %w", srcPath, err)
	}

	var body bytes.Buffer
	if err := s.md.Convert(src, &body); err != nil {
		return false, fmt.Errorf("render guide markdown: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return false, fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	data := guideData{
		Title: s.title + " Guide",
		Body:  template.HTML(body.String()), //nolint:gosec // repository-authored markdown
	}
	if err := s.writeTemplate(filepath.Join(outDir, "guide.html"), "guide.html.tmpl", data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Site) writeTemplate(dest, name string, data any) error {
	var buf bytes.Buffer
	if err := s.html.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

type readmeFamily struct {
	Title      string
	SpecDir    string
	Count      int
	Specs      []readmeSpec
	LatestName string
}

type readmeSpec struct {
	Version string
	Href    string
}

type readmeData struct {
	Title     string
	TitleLine string
	Families  []readmeFamily
	Date      string
}

// WriteReadme regenerates the repository README at path. The date is an
// explicit input so re-runs are reproducible under test.
func (s *Site) WriteReadme(path string, docs []FamilyDocs, date time.Time) error {
	data := readmeData{
		Title:     s.title,
		TitleLine: s.subtitle,
		Date:      date.Format("2006-01-02"),
	}
	for _, d := range docs {
		fam := readmeFamily{
			Title:   d.Family.Title,
			SpecDir: d.Family.SpecDir,
			Count:   len(d.Specs),
		}
		for _, spec := range d.Specs {
			fam.Specs = append(fam.Specs, readmeSpec{
				Version: spec.Version.String(),
				Href:    strings.TrimSuffix(d.Family.SpecDir, "/") + "/" + spec.Name,
			})
		}
		if latest := d.Specs.Latest(); latest != nil {
			fam.LatestName = latest.Name
		}
		data.Families = append(data.Families, fam)
	}

	var buf bytes.Buffer
	if err := s.readme.ExecuteTemplate(&buf, "readme.md.tmpl", data); err != nil {
		return fmt.Errorf("render readme: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
