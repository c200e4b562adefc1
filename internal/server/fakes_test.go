package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/analysis"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/config"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/db"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/scoring"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server/middleware"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// memStore is an in-memory UserStore, EmployerStore and JobStore.
type memStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*db.User
	employers   map[uuid.UUID]*db.Employer
	jobs        map[uuid.UUID]*db.Job
	searchCalls int
	clock       time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]*db.User),
		employers: make(map[uuid.UUID]*db.Employer),
		jobs:      make(map[uuid.UUID]*db.Job),
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so listing order is stable.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) CreateUser(_ context.Context, in db.UserCreateInput) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == in.Email {
			return nil, db.ErrDuplicateEmail
		}
	}
	profile := types.UserProfile{}
	profile.Normalize()
	now := m.tick()
	u := &db.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Profile:      profile,
		Settings:     types.DefaultUserSettings(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == types.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, id uuid.UUID, profile *types.UserProfile, settings *types.UserSettings) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if profile != nil {
		profile.Normalize()
		u.Profile = *profile
	}
	if settings != nil {
		u.Settings = *settings
	}
	u.UpdatedAt = m.tick()
	cp := *u
	return &cp, nil
}

func (m *memStore) CreateEmployer(_ context.Context, in db.EmployerCreateInput) (*db.Employer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employers {
		if e.Email == in.Email {
			return nil, db.ErrDuplicateEmail
		}
	}
	now := m.tick()
	e := &db.Employer{
		ID:                 uuid.New(),
		CompanyName:        in.CompanyName,
		Email:              in.Email,
		PasswordHash:       in.PasswordHash,
		Profile:            in.Profile,
		VerificationStatus: types.VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	m.employers[e.ID] = e
	cp := *e
	return &cp, nil
}

func (m *memStore) GetEmployer(_ context.Context, id uuid.UUID) (*db.Employer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employers[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) GetEmployerByEmail(_ context.Context, email string) (*db.Employer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employers {
		if e.Email == types.NormalizeEmail(email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateEmployerProfile(_ context.Context, id uuid.UUID, profile *types.EmployerProfile, social *types.SocialMedia) (*db.Employer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employers[id]
	if !ok {
		return nil, nil
	}
	if profile != nil {
		profile.Normalize()
		e.Profile = *profile
	}
	if social != nil {
		e.SocialMedia = *social
	}
	e.UpdatedAt = m.tick()
	cp := *e
	return &cp, nil
}

// SearchJobs applies the type, remote and skills filters, newest first.
func (m *memStore) SearchJobs(_ context.Context, f db.JobFilter) (*db.JobPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	f.Normalize()

	var matched []db.Job
	for _, j := range m.jobs {
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		if f.RemoteWork != nil && j.Accessibility.RemoteWork != *f.RemoteWork {
			continue
		}
		if len(f.Skills) > 0 && !slices.ContainsFunc(f.Skills, func(s string) bool { return slices.Contains(j.Skills, s) }) {
			continue
		}
		matched = append(matched, *j)
	}
	sort.Slice(matched, func(a, b int) bool { return matched[a].CreatedAt.After(matched[b].CreatedAt) })

	total := len(matched)
	start := min(f.Offset(), total)
	end := min(start+f.Limit, total)
	return &db.JobPage{
		Jobs:        matched[start:end],
		TotalPages:  (total + f.Limit - 1) / f.Limit,
		CurrentPage: f.Page,
		Total:       total,
	}, nil
}

func (m *memStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (m *memStore) ListJobsByEmployer(_ context.Context, employerID uuid.UUID) ([]db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	jobs := []db.Job{}
	for _, j := range m.jobs {
		if j.Company.ID == employerID {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (m *memStore) CreateJob(_ context.Context, employerID uuid.UUID, in types.JobInput) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in.Normalize()
	e := m.employers[employerID]
	now := m.tick()
	j := &db.Job{
		ID:        uuid.New(),
		Company:   db.JobCompany{ID: employerID, CompanyName: e.CompanyName, Logo: e.Profile.Logo},
		CreatedAt: now,
	}
	applyJobInput(j, in, now)
	m.jobs[j.ID] = j
	cp := *j
	return &cp, nil
}

func (m *memStore) UpdateJob(_ context.Context, id uuid.UUID, in types.JobInput) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	in.Normalize()
	applyJobInput(j, in, m.tick())
	cp := *j
	return &cp, nil
}

func (m *memStore) DeleteJob(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return false, nil
	}
	delete(m.jobs, id)
	return true, nil
}

func applyJobInput(j *db.Job, in types.JobInput, now time.Time) {
	j.Title = in.Title
	j.Description = in.Description
	j.Requirements = in.Requirements
	j.Accessibility = in.Accessibility
	j.Location = in.Location
	j.Type = in.Type
	j.Salary = in.Salary
	j.Skills = in.Skills
	j.ApplicationDeadline = in.ApplicationDeadline
	j.Status = in.Status
	j.UpdatedAt = now
}

// fakeAnalyzer records the upload it receives and returns a canned outcome.
type fakeAnalyzer struct {
	maxBytes int64
	result   scoring.Result
	err      error

	mu       sync.Mutex
	calls    int
	upload   analysis.Upload
	received []byte
}

func (f *fakeAnalyzer) Analyze(_ context.Context, up analysis.Upload) (scoring.Result, error) {
	body, err := io.ReadAll(up.Body)
	if err != nil {
		return scoring.Result{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.upload = up
	f.received = body
	return f.result, f.err
}

func (f *fakeAnalyzer) MaxBytes() int64 {
	if f.maxBytes > 0 {
		return f.maxBytes
	}
	return analysis.DefaultMaxBytes
}

// harness is a Server backed by in-memory fakes.
type harness struct {
	t        *testing.T
	srv      *Server
	store    *memStore
	analyzer *fakeAnalyzer
	jwt      *JWTService
	cfg      *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Env:            config.EnvDevelopment,
		Port:           5000,
		FrontendURL:    "http://localhost:3000",
		MaxUploadBytes: config.DefaultMaxUploadBytes,
		MetricsEnabled: true,
	}
}

func newHarness(t *testing.T, opts ...func(cfg *config.Config, deps *Deps)) *harness {
	t.Helper()

	h := &harness{
		t:        t,
		store:    newMemStore(),
		analyzer: &fakeAnalyzer{},
		jwt: NewJWTService(&config.JWTConfig{
			Secret:          testSecret,
			ExpirationHours: 24,
			Issuer:          "job-portal",
		}),
		cfg: testConfig(),
	}
	deps := Deps{
		Users:     h.store,
		Employers: h.store,
		Jobs:      h.store,
		Analyzer:  h.analyzer,
		JWT:       h.jwt,
		Passwords: &config.PasswordConfig{BcryptCost: bcrypt.MinCost},
		Logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h.cfg, &deps)
	}

	srv, err := New(h.cfg, deps)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	h.srv = srv
	return h
}

// do sends a request through the full middleware chain. body may be nil,
// a []byte sent verbatim, or a value encoded as JSON.
func (h *harness) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(w, req)
	return w
}

func (h *harness) token(id uuid.UUID, kind middleware.Kind) string {
	h.t.Helper()
	token, err := h.jwt.GenerateToken(middleware.Principal{ID: id, Kind: kind})
	require.NoError(h.t, err)
	return token
}

// seedEmployer stores an employer directly and returns it with a token.
func (h *harness) seedEmployer(name string) (*db.Employer, string) {
	h.t.Helper()
	e, err := h.store.CreateEmployer(context.Background(), db.EmployerCreateInput{
		CompanyName: name,
		Email:       types.NormalizeEmail(name + "@example.com"),
	})
	require.NoError(h.t, err)
	return e, h.token(e.ID, middleware.KindEmployer)
}

// seedJob stores a job for employer directly.
func (h *harness) seedJob(employerID uuid.UUID, in types.JobInput) *db.Job {
	h.t.Helper()
	j, err := h.store.CreateJob(context.Background(), employerID, in)
	require.NoError(h.t, err)
	return j
}

func validJobInput(title string) types.JobInput {
	return types.JobInput{
		Title:       title,
		Description: "Build accessible services",
		Location:    "Remote",
		Type:        types.JobTypeFullTime,
		Skills:      []string{"Go"},
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, w).Error
}
