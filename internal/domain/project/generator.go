package project

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rpggio/projtrack/internal/catalog"
)

const (
	firstProjectNumber = 1000
	maxTemplates       = 5
	dateWindowDays     = 730
)

// Generator builds synthetic project records from a catalog.
type Generator struct {
	catalog catalog.Catalog
	rng     *rand.Rand
	now     func() time.Time
}

// NewGenerator creates a generator. A nil clock means time.Now.
func NewGenerator(cat catalog.Catalog, rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{catalog: cat, rng: rng, now: now}
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns count records. Non-positive counts yield no records.
func (g *Generator) Generate(count int) []Project {
	if count <= 0 {
		return []Project{}
	}

	windowStart := g.now().AddDate(0, 0, -dateWindowDays)
	projects := make([]Project, 0, count)
	for i := range count {
		name := g.pick(g.catalog.Prefixes) + "." + g.pick(g.catalog.Names)

		n := 1 + g.rng.IntN(maxTemplates)
		templates := g.sampleTemplates(n)
		versions := make([]string, len(templates))
		for j := range versions {
			versions[j] = g.version()
		}

		projects = append(projects, Project{
			ProjectID:        fmt.Sprintf("PROJ-%d", firstProjectNumber+i),
			ProjectName:      name,
			TeamName:         g.pick(g.catalog.Teams),
			TemplateCount:    len(templates),
			Templates:        templates,
			TemplateVersions: versions,
			LastUpdated:      g.date(windowStart),
			Status:           Statuses[g.rng.IntN(len(Statuses))],
			RepositoryURL:    g.catalog.RepositoryURL(name),
			CreatedDate:      g.date(windowStart),
		})
	}
	return projects
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.IntN(len(values))]
}

// sampleTemplates draws n distinct templates, clamped to the catalog size.
func (g *Generator) sampleTemplates(n int) []string {
	n = min(n, len(g.catalog.Templates))
	perm := g.rng.Perm(len(g.catalog.Templates))
	out := make([]string, n)
	for i := range out {
		out[i] = g.catalog.Templates[perm[i]]
	}
	return out
}

func (g *Generator) version() string {
	major := 1 + g.rng.IntN(5)
	minor := g.rng.IntN(21)
	patch := g.rng.IntN(51)
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

func (g *Generator) date(windowStart time.Time) string {
	return windowStart.AddDate(0, 0, g.rng.IntN(dateWindowDays+1)).Format(time.DateOnly)
}
