// Package scoring rates extracted resume text against fixed ATS keyword catalogs.
package scoring

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog holds the three keyword lists a resume is matched against.
// Entries are lower-case and unique within a list. List order is the
// order in which matches and suggestions are reported.
type Catalog struct {
	skills      []string
	actionVerbs []string
	softSkills  []string
}

var defaultSkills = []string{
	"javascript", "react", "node.js", "python", "java", "sql", "mongodb",
	"aws", "docker", "kubernetes", "ci/cd", "agile", "scrum", "html", "css",
	"git", "rest api", "typescript", "angular", "vue.js", "express", "php",
	"c++", "c#", "ruby", "swift", "kotlin", "android", "ios", "mobile development",
	"web development", "database", "api", "testing", "debugging",
}

var defaultActionVerbs = []string{
	"developed", "implemented", "managed", "led", "created", "designed",
	"improved", "increased", "reduced", "achieved", "collaborated", "built",
	"optimized", "architected", "debugged", "deployed", "maintained", "tested",
	"automated", "streamlined", "coordinated", "mentored", "launched",
}

var defaultSoftSkills = []string{
	"communication", "leadership", "teamwork", "problem solving",
	"analytical", "attention to detail", "time management", "project management",
	"critical thinking", "adaptability", "creativity", "collaboration",
}

// NewCatalog builds a catalog from the given lists. Entries are lower-cased
// and trimmed; empty lists, blank entries and duplicates are rejected since
// each list length is a scoring denominator.
func NewCatalog(skills, actionVerbs, softSkills []string) (*Catalog, error) {
	s, err := normalizeList("skills", skills)
	if err != nil {
		return nil, err
	}
	v, err := normalizeList("action verbs", actionVerbs)
	if err != nil {
		return nil, err
	}
	ss, err := normalizeList("soft skills", softSkills)
	if err != nil {
		return nil, err
	}
	return &Catalog{skills: s, actionVerbs: v, softSkills: ss}, nil
}

// DefaultCatalog returns the built-in ATS keyword catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultSkills, defaultActionVerbs, defaultSoftSkills)
	if err != nil {
		panic(fmt.Sprintf("scoring: invalid default catalog: %v", err))
	}
	return c
}

// Skills returns a copy of the technical skills list.
func (c *Catalog) Skills() []string { return slices.Clone(c.skills) }

// ActionVerbs returns a copy of the action verbs list.
func (c *Catalog) ActionVerbs() []string { return slices.Clone(c.actionVerbs) }

// SoftSkills returns a copy of the soft skills list.
func (c *Catalog) SoftSkills() []string { return slices.Clone(c.softSkills) }

func normalizeList(name string, entries []string) ([]string, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s list must not be empty", name)
	}
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for i, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			return nil, fmt.Errorf("%s list has a blank entry at index %d", name, i)
		}
		if seen[e] {
			return nil, fmt.Errorf("%s list has duplicate entry %q", name, e)
		}
		seen[e] = true
		out = append(out, e)
	}
	return out, nil
}
