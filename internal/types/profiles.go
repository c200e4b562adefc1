package types

// UserProfile is the job seeker's profile.
type UserProfile struct {
	Disability     string            `json:"disability,omitempty"`
	Accommodations []string          `json:"accommodations"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience" validate:"dive"`
	Education      []EducationEntry  `json:"education" validate:"dive"`
	Preferences    JobPreferences    `json:"preferences"`
}

// ExperienceEntry is one position in a user's work history.
type ExperienceEntry struct {
	Title       string `json:"title" validate:"max=200"`
	Company     string `json:"company" validate:"max=200"`
	StartDate   *Date  `json:"startDate,omitempty"`
	EndDate     *Date  `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one degree or program.
type EducationEntry struct {
	Institution    string `json:"institution" validate:"max=200"`
	Degree         string `json:"degree,omitempty"`
	Field          string `json:"field,omitempty"`
	GraduationDate *Date  `json:"graduationDate,omitempty"`
}

// JobPreferences narrows the jobs a user is interested in.
type JobPreferences struct {
	RemoteOnly bool     `json:"remoteOnly"`
	Industries []string `json:"industries"`
	JobTypes   []string `json:"jobTypes" validate:"dive,oneof=full-time part-time contract internship"`
}

// UserSettings are accessibility display settings.
type UserSettings struct {
	HighContrast bool   `json:"highContrast"`
	FontSize     string `json:"fontSize" validate:"omitempty,oneof=small medium large x-large"`
	ScreenReader bool   `json:"screenReader"`
}

// DefaultUserSettings returns the settings of a newly registered user.
func DefaultUserSettings() UserSettings {
	return UserSettings{FontSize: "medium"}
}

// Normalize replaces nil slices with empty ones so they encode as [].
func (p *UserProfile) Normalize() {
	p.Accommodations = nonNil(p.Accommodations)
	p.Skills = nonNil(p.Skills)
	if p.Experience == nil {
		p.Experience = []ExperienceEntry{}
	}
	if p.Education == nil {
		p.Education = []EducationEntry{}
	}
	p.Preferences.Industries = nonNil(p.Preferences.Industries)
	p.Preferences.JobTypes = nonNil(p.Preferences.JobTypes)
}

// Company sizes accepted in an employer profile.
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000+"}

// Employer verification states.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// EmployerProfile describes a hiring company.
type EmployerProfile struct {
	Description        string             `json:"description,omitempty"`
	Industry           string             `json:"industry,omitempty"`
	Website            string             `json:"website,omitempty" validate:"omitempty,url"`
	Logo               string             `json:"logo,omitempty"`
	Size               string             `json:"size,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	Location           string             `json:"location,omitempty"`
	InclusivityMetrics InclusivityMetrics `json:"inclusivityMetrics"`
}

// InclusivityMetrics lists what an employer offers candidates with disabilities.
type InclusivityMetrics struct {
	DisabilityAccommodations  []string `json:"disabilityAccommodations"`
	AccessibilityFeatures     []string `json:"accessibilityFeatures"`
	InclusivityCertifications []string `json:"inclusivityCertifications"`
}

// SocialMedia holds an employer's public profile links.
type SocialMedia struct {
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Twitter  string `json:"twitter,omitempty" validate:"omitempty,url"`
	Facebook string `json:"facebook,omitempty" validate:"omitempty,url"`
}

// Normalize replaces nil slices with empty ones so they encode as [].
func (p *EmployerProfile) Normalize() {
	m := &p.InclusivityMetrics
	m.DisabilityAccommodations = nonNil(m.DisabilityAccommodations)
	m.AccessibilityFeatures = nonNil(m.AccessibilityFeatures)
	m.InclusivityCertifications = nonNil(m.InclusivityCertifications)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
