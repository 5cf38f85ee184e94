// Package query is the project filtering engine: a pure, stable filter
// over an in-memory project list. It never mutates its input and never
// reorders it.
package query

import (
	"sort"
	"strings"

	"github.com/vitrine-app/vitrine-api/internal/modules/model"
)

// Spec is the set of optional constraints applied to a project list.
// Empty fields impose no constraint on their axis.
type Spec struct {
	Search     string
	Difficulty string
	Status     string
	Category   string
	Promotion  string
	Tag        string

	// IncludeHidden lifts the visibility filter. Only admin callers may
	// set it; the handler enforces that.
	IncludeHidden bool
}

// Filter returns the projects matching every axis of spec, preserving
// input order. Hidden projects are excluded unconditionally unless
// IncludeHidden is set.
func Filter(projects []model.Project, spec Spec) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if matches(&p, spec) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *model.Project, spec Spec) bool {
	if p.Hidden && !spec.IncludeHidden {
		return false
	}
	if !matchesSearch(p, spec.Search) {
		return false
	}
	if spec.Difficulty != "" && string(p.Difficulty) != spec.Difficulty {
		return false
	}
	if spec.Status != "" && string(p.Status) != spec.Status {
		return false
	}
	if spec.Category != "" && p.Category != spec.Category {
		return false
	}
	if spec.Promotion != "" && p.Promotion != spec.Promotion {
		return false
	}
	if spec.Tag != "" && !contains(p.Tags, spec.Tag) {
		return false
	}
	return true
}

// matchesSearch checks the free-text axis: a case-insensitive substring
// match against name, description, technologies, tags and student
// names. An empty term matches everything.
func matchesSearch(p *model.Project, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)

	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, list := range [][]string{p.Technologies, p.Tags, p.Students} {
		for _, v := range list {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Distinct collects the deduplicated non-blank values yielded by
// extract across all projects, sorted for stable option lists.
func Distinct(projects []model.Project, extract func(model.Project) []string) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		for _, v := range extract(p) {
			if strings.TrimSpace(v) == "" {
				continue
			}
			seen[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Facets are the distinct values of each filterable axis, used to
// populate the view layer's filter dropdowns.
type Facets struct {
	Categories   []string `json:"categories"`
	Promotions   []string `json:"promotions"`
	Tags         []string `json:"tags"`
	Technologies []string `json:"technologies"`
}

func CollectFacets(projects []model.Project) Facets {
	return Facets{
		Categories:   Distinct(projects, func(p model.Project) []string { return []string{p.Category} }),
		Promotions:   Distinct(projects, func(p model.Project) []string { return []string{p.Promotion} }),
		Tags:         Distinct(projects, func(p model.Project) []string { return p.Tags }),
		Technologies: Distinct(projects, func(p model.Project) []string { return p.Technologies }),
	}
}
