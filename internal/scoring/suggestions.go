package scoring

import (
	"slices"
	"strings"
)

// suggest builds the improvement suggestions that follow the contact checks.
// Each check is independent; the order is fixed.
func (s *Scorer) suggest(d Details, hasEducation, hasExperience bool, length int) []string {
	var out []string

	if belowThreshold(len(d.SkillsFound), len(s.catalog.skills)) {
		out = append(out, "Include more relevant technical skills. Consider adding: "+
			strings.Join(unmatched(s.catalog.skills, d.SkillsFound, maxSkillSuggestions), ", "))
	}
	if belowThreshold(len(d.VerbsFound), len(s.catalog.actionVerbs)) {
		out = append(out, "Use more action verbs to describe your experiences. Consider using: "+
			strings.Join(unmatched(s.catalog.actionVerbs, d.VerbsFound, maxVerbSuggestions), ", "))
	}
	if belowThreshold(len(d.SoftSkillsFound), len(s.catalog.softSkills)) {
		out = append(out, "Add more soft skills to your resume. Consider adding: "+
			strings.Join(unmatched(s.catalog.softSkills, d.SoftSkillsFound, maxSoftSkillSuggestions), ", "))
	}
	if !hasEducation {
		out = append(out, "Add an education section to your resume")
	}
	if !hasExperience {
		out = append(out, "Add work experience section to your resume")
	}
	if length < minResumeLength {
		out = append(out, "Your resume might be too short. Consider adding more details about your experiences")
	}

	return out
}

func belowThreshold(found, total int) bool {
	return float64(found) < float64(total)*suggestionThreshold
}

// unmatched returns up to limit catalog entries not in found, in catalog order.
func unmatched(catalog, found []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, kw := range catalog {
		if len(out) == limit {
			break
		}
		if !slices.Contains(found, kw) {
			out = append(out, kw)
		}
	}
	return out
}
