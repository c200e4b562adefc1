package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Contribution weights. They sum to 100.
const (
	skillsWeight     = 35.0
	verbsWeight      = 25.0
	softSkillsWeight = 20.0
	educationWeight  = 10.0
	experienceWeight = 10.0
)

const (
	// suggestionThreshold is the fraction of a catalog list below which a
	// suggestion is emitted for that list.
	suggestionThreshold = 0.3
	// minResumeLength is the rune count below which the resume is reported as short.
	minResumeLength = 2000

	maxSkillSuggestions     = 5
	maxVerbSuggestions      = 5
	maxSoftSkillSuggestions = 3
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\b\d{10}\b|\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)

	educationMarkers  = []string{"education", "university", "college"}
	experienceMarkers = []string{"experience", "work", "employment"}
)

// Missing element identifiers reported in Details.MissingElements.
const (
	MissingEmail = "email"
	MissingPhone = "phone"
)

// Result is the outcome of scoring one resume.
type Result struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
	Details     Details  `json:"details"`
}

// Details lists the catalog entries found and the contact fields missing.
type Details struct {
	SkillsFound     []string `json:"skillsFound"`
	VerbsFound      []string `json:"verbsFound"`
	SoftSkillsFound []string `json:"softSkillsFound"`
	MissingElements []string `json:"missingElements"`
}

// Scorer computes Results against a fixed Catalog. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	catalog *Catalog
}

// NewScorer returns a Scorer for the given catalog.
func NewScorer(catalog *Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Catalog returns the catalog the scorer matches against.
func (s *Scorer) Catalog() *Catalog {
	return s.catalog
}

// Score rates the resume text. It never fails: missing structure lowers
// the score and adds suggestions.
func (s *Scorer) Score(text string) Result {
	text = strings.ToLower(text)

	res := Result{
		Suggestions: []string{},
		Details: Details{
			MissingElements: []string{},
		},
	}

	if !emailPattern.MatchString(text) {
		res.Suggestions = append(res.Suggestions, "Add a professional email address")
		res.Details.MissingElements = append(res.Details.MissingElements, MissingEmail)
	}
	if !phonePattern.MatchString(text) {
		res.Suggestions = append(res.Suggestions, "Include a phone number")
		res.Details.MissingElements = append(res.Details.MissingElements, MissingPhone)
	}

	res.Details.SkillsFound = matchKeywords(text, s.catalog.skills)
	res.Details.VerbsFound = matchKeywords(text, s.catalog.actionVerbs)
	res.Details.SoftSkillsFound = matchKeywords(text, s.catalog.softSkills)

	hasEducation := containsAny(text, educationMarkers)
	hasExperience := containsAny(text, experienceMarkers)

	res.Score = clampScore(math.Round(s.rawScore(
		len(res.Details.SkillsFound),
		len(res.Details.VerbsFound),
		len(res.Details.SoftSkillsFound),
		hasEducation,
		hasExperience,
	)))

	res.Suggestions = append(res.Suggestions, s.suggest(res.Details, hasEducation, hasExperience, utf8.RuneCountInString(text))...)

	return res
}

// rawScore is the unrounded weighted sum of all contributions.
func (s *Scorer) rawScore(skills, verbs, softSkills int, hasEducation, hasExperience bool) float64 {
	skillsScore := float64(skills) / float64(len(s.catalog.skills)) * skillsWeight
	verbsScore := float64(verbs) / float64(len(s.catalog.actionVerbs)) * verbsWeight
	softSkillsScore := float64(softSkills) / float64(len(s.catalog.softSkills)) * softSkillsWeight

	educationScore := 0.0
	if hasEducation {
		educationScore = educationWeight
	}
	experienceScore := 0.0
	if hasExperience {
		experienceScore = experienceWeight
	}

	return skillsScore + verbsScore + softSkillsScore + educationScore + experienceScore
}

func clampScore(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

func matchKeywords(text string, keywords []string) []string {
	found := []string{}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
