package project

// teamAccumulator groups projects by exact team name in first-seen order.
type teamAccumulator struct {
	order     []string
	summaries map[string]*TeamSummary
	templates map[string]map[string]struct{}
}

func newTeamAccumulator() *teamAccumulator {
	return &teamAccumulator{
		summaries: make(map[string]*TeamSummary),
		templates: make(map[string]map[string]struct{}),
	}
}

func (a *teamAccumulator) add(p Project) {
	summary, ok := a.summaries[p.TeamName]
	if !ok {
		summary = &TeamSummary{TeamName: p.TeamName, TemplatesUsed: []string{}}
		a.summaries[p.TeamName] = summary
		a.templates[p.TeamName] = make(map[string]struct{})
		a.order = append(a.order, p.TeamName)
	}

	summary.ProjectCount++
	if p.Status == StatusActive {
		summary.ActiveProjects++
	}

	seen := a.templates[p.TeamName]
	for _, tmpl := range p.Templates {
		if _, dup := seen[tmpl]; dup {
			continue
		}
		seen[tmpl] = struct{}{}
		summary.TemplatesUsed = append(summary.TemplatesUsed, tmpl)
	}
}

func (a *teamAccumulator) result() TeamsOverview {
	teams := make([]TeamSummary, 0, len(a.order))
	for _, name := range a.order {
		teams = append(teams, *a.summaries[name])
	}
	return TeamsOverview{TotalTeams: len(teams), Teams: teams}
}

// statsAccumulator tallies dataset-wide counts. Template order is kept so
// usage ties resolve to the template seen first.
type statsAccumulator struct {
	stats         Stats
	teams         map[string]struct{}
	templateOrder []string
}

func newStatsAccumulator() *statsAccumulator {
	return &statsAccumulator{
		stats: Stats{TemplateUsage: make(map[string]int)},
		teams: make(map[string]struct{}),
	}
}

func (a *statsAccumulator) add(p Project) {
	a.stats.TotalProjects++
	switch p.Status {
	case StatusActive:
		a.stats.ActiveProjects++
	case StatusArchived:
		a.stats.ArchivedProjects++
	case StatusDeprecated:
		a.stats.DeprecatedProjects++
	}

	a.teams[p.TeamName] = struct{}{}

	for _, tmpl := range p.Templates {
		if _, ok := a.stats.TemplateUsage[tmpl]; !ok {
			a.templateOrder = append(a.templateOrder, tmpl)
		}
		a.stats.TemplateUsage[tmpl]++
	}
}

func (a *statsAccumulator) result() Stats {
	out := a.stats
	out.TotalTeams = len(a.teams)

	best := 0
	for _, tmpl := range a.templateOrder {
		if count := out.TemplateUsage[tmpl]; count > best {
			best = count
			name := tmpl
			out.MostUsedTemplate = &name
		}
	}
	return out
}
