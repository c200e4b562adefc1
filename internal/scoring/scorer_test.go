package scoring

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = "Experienced software engineer. Education: BS Computer Science. " +
	"Skills: javascript, react, python. Developed and implemented several projects. " +
	"Strong communication and teamwork. Email: a@b.com Phone: 555-123-4567"

func TestScore_EmptyText(t *testing.T) {
	s := NewScorer(DefaultCatalog())

	res := s.Score("")

	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Details.SkillsFound)
	assert.Empty(t, res.Details.VerbsFound)
	assert.Empty(t, res.Details.SoftSkillsFound)
	assert.Equal(t, []string{MissingEmail, MissingPhone}, res.Details.MissingElements)
	assert.Equal(t, []string{
		"Add a professional email address",
		"Include a phone number",
		"Include more relevant technical skills. Consider adding: javascript, react, node.js, python, java",
		"Use more action verbs to describe your experiences. Consider using: developed, implemented, managed, led, created",
		"Add more soft skills to your resume. Consider adding: communication, leadership, teamwork",
		"Add an education section to your resume",
		"Add work experience section to your resume",
		"Your resume might be too short. Consider adding more details about your experiences",
	}, res.Suggestions)
}

func TestScore_EmptyListsSerializeAsArrays(t *testing.T) {
	res := NewScorer(DefaultCatalog()).Score("")

	assert.NotNil(t, res.Details.SkillsFound)
	assert.NotNil(t, res.Details.VerbsFound)
	assert.NotNil(t, res.Details.SoftSkillsFound)
	assert.NotNil(t, res.Details.MissingElements)
}

func TestScore_SampleResume(t *testing.T) {
	s := NewScorer(DefaultCatalog())

	res := s.Score(sampleResume)

	assert.Empty(t, res.Details.MissingElements)
	assert.Subset(t, res.Details.SkillsFound, []string{"javascript", "react", "python"})
	assert.Equal(t, []string{"javascript", "react", "python", "java"}, res.Details.SkillsFound)
	assert.Equal(t, []string{"developed", "implemented"}, res.Details.VerbsFound)
	assert.Equal(t, []string{"communication", "teamwork"}, res.Details.SoftSkillsFound)

	// 4/35*35 + 2/23*25 + 2/12*20 + 10 + 10 = 29.507...
	assert.Equal(t, 30, res.Score)

	assert.Equal(t, []string{
		"Include more relevant technical skills. Consider adding: node.js, sql, mongodb, aws, docker",
		"Use more action verbs to describe your experiences. Consider using: managed, led, created, designed, improved",
		"Add more soft skills to your resume. Consider adding: leadership, problem solving, analytical",
		"Your resume might be too short. Consider adding more details about your experiences",
	}, res.Suggestions)
}

func TestScore_AllSkillsOnly(t *testing.T) {
	c := DefaultCatalog()
	s := NewScorer(c)

	res := s.Score(strings.Join(c.Skills(), " "))

	assert.Equal(t, c.Skills(), res.Details.SkillsFound)
	assert.Empty(t, res.Details.VerbsFound)
	assert.Empty(t, res.Details.SoftSkillsFound)
	assert.Equal(t, 35, res.Score)
}

func TestScore_CaseInsensitive(t *testing.T) {
	s := NewScorer(DefaultCatalog())

	upper := s.Score("I write REACT every day")
	lower := s.Score("I write react every day")

	assert.Contains(t, upper.Details.SkillsFound, "react")
	assert.Equal(t, lower, upper)
}

func TestScore_Deterministic(t *testing.T) {
	s := NewScorer(DefaultCatalog())

	assert.Equal(t, s.Score(sampleResume), s.Score(sampleResume))
}

func TestScore_Contact(t *testing.T) {
	s := NewScorer(DefaultCatalog())

	tests := []struct {
		name    string
		text    string
		missing []string
	}{
		{"ten digits", "jane@example.org 5551234567", []string{}},
		{"dashed phone", "jane@example.org 555-123-4567", []string{}},
		{"dotted phone", "jane@example.org 555.123.4567", []string{}},
		{"no phone", "jane@example.org call me", []string{MissingPhone}},
		{"short tld", "jane@example.c 5551234567", []string{MissingEmail}},
		{"nothing", "hello", []string{MissingEmail, MissingPhone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, s.Score(tt.text).Details.MissingElements)
		})
	}
}

func TestScore_Monotonic(t *testing.T) {
	c := DefaultCatalog()
	s := NewScorer(c)

	text := "resume"
	prev := s.Score(text).Score
	all := append(append(c.Skills(), c.ActionVerbs()...), c.SoftSkills()...)
	for _, kw := range all {
		text += " " + kw
		cur := s.Score(text).Score
		assert.GreaterOrEqual(t, cur, prev, "adding %q lowered the score", kw)
		prev = cur
	}
}

func TestScore_Bounds(t *testing.T) {
	c := DefaultCatalog()
	s := NewScorer(c)
	vocab := append(append(append(c.Skills(), c.ActionVerbs()...), c.SoftSkills()...),
		"education", "work", "lorem", "ipsum", "a@b.com", "5551234567", "")
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		words := make([]string, rng.IntN(80))
		for j := range words {
			words[j] = vocab[rng.IntN(len(vocab))]
		}
		res := s.Score(strings.Join(words, " "))
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Score, 100)
	}
}

func TestRawScore_NeverNeedsClamp(t *testing.T) {
	c := DefaultCatalog()
	s := NewScorer(c)

	full := s.rawScore(len(c.skills), len(c.actionVerbs), len(c.softSkills), true, true)
	assert.Equal(t, 100.0, full)

	res := s.Score(strings.Join(append(append(c.Skills(), c.ActionVerbs()...), c.SoftSkills()...), " ") +
		" education experience")
	assert.Equal(t, 100, res.Score)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-3))
	assert.Equal(t, 100, clampScore(101))
	assert.Equal(t, 42, clampScore(42))
}

func TestScore_LengthSuggestion(t *testing.T) {
	s := NewScorer(DefaultCatalog())
	short := "Your resume might be too short. Consider adding more details about your experiences"

	assert.Contains(t, s.Score(strings.Repeat("x", 1999)).Suggestions, short)
	assert.NotContains(t, s.Score(strings.Repeat("x", 2000)).Suggestions, short)
}

func TestScore_SubstitutedCatalog(t *testing.T) {
	c, err := NewCatalog([]string{"Go", "Rust"}, []string{"shipped"}, []string{"empathy"})
	require.NoError(t, err)
	s := NewScorer(c)

	res := s.Score("Shipped Go services with empathy. Work history and education included.")

	assert.Equal(t, []string{"go"}, res.Details.SkillsFound)
	assert.Equal(t, []string{"shipped"}, res.Details.VerbsFound)
	assert.Equal(t, []string{"empathy"}, res.Details.SoftSkillsFound)
	// 1/2*35 + 25 + 20 + 10 + 10 = 82.5
	assert.Equal(t, 83, res.Score)
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name              string
		skills, verbs, ss []string
	}{
		{"empty skills", nil, []string{"a"}, []string{"b"}},
		{"empty verbs", []string{"a"}, []string{}, []string{"b"}},
		{"blank entry", []string{"a", " "}, []string{"b"}, []string{"c"}},
		{"duplicate after lowercase", []string{"Go", "go"}, []string{"b"}, []string{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.skills, tt.verbs, tt.ss)
			assert.Error(t, err)
		})
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := DefaultCatalog()
	skills := c.Skills()
	skills[0] = "mutated"

	assert.Equal(t, "javascript", c.Skills()[0])
}
