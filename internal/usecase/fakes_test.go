package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"joinup/internal/domain/application"
	"joinup/internal/domain/project"
	"joinup/internal/domain/saved"
	"joinup/internal/domain/user"
	"joinup/internal/infrastructure/storage"
	"joinup/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	testNow    = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	testLogger = zerolog.Nop()
	errBoom    = errors.New("connection refused")
)

func fixedNow() time.Time { return testNow }

// calls counts repository calls, so tests can assert that validation
// happened before any I/O.
type calls struct {
	mu sync.Mutex
	n  int
}

func (c *calls) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *calls) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type fakeUsers struct {
	calls
	mu      sync.Mutex
	byID    map[uuid.UUID]user.User
	failGet map[uuid.UUID]error
	listErr error
}

func newFakeUsers(us ...user.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]user.User{}, failGet: map[uuid.UUID]error{}}
	for _, u := range us {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u user.User) error {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	u.CreatedAt = testNow
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failGet[id]; err != nil {
		return user.User{}, err
	}
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUsers) ListStudents(context.Context) ([]user.User, error) {
	f.inc()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id uuid.UUID, in user.ProfileUpdate) (user.User, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if in.FullName != nil {
		u.FullName = in.FullName
	}
	if in.University != nil {
		u.University = in.University
	}
	if in.Bio != nil {
		u.Bio = in.Bio
	}
	if in.Availability != nil {
		u.Availability = in.Availability
	}
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) SetProfileImage(_ context.Context, id uuid.UUID, url string) error {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.ProfileImage = &url
	f.byID[id] = u
	return nil
}

type fakeProjects struct {
	calls
	mu        sync.Mutex
	byID      map[uuid.UUID]project.Project
	listErr   error
	createErr error
}

func newFakeProjects(ps ...project.Project) *fakeProjects {
	f := &fakeProjects{byID: map[uuid.UUID]project.Project{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProjects) Create(_ context.Context, in project.NewProject) (project.Project, error) {
	f.inc()
	if f.createErr != nil {
		return project.Project{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	desc := in.Description
	loc := in.Location
	p := project.Project{
		ID:           uuid.New(),
		OwnerID:      in.OwnerID,
		Title:        in.Title,
		Description:  &desc,
		Location:     &loc,
		Budget:       in.Budget,
		Compensation: in.Budget,
		Category:     in.Category,
		Status:       project.StatusActive,
		MaxHires:     max(in.MaxHires, 1),
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (project.Project, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	return p, nil
}

func (f *fakeProjects) ListActive(context.Context) ([]project.Project, error) {
	f.inc()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]project.Project, 0)
	for _, p := range f.byID {
		if p.Status == project.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]project.Project, error) {
	f.inc()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]project.Project, 0)
	for _, p := range f.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Close(_ context.Context, id, ownerID uuid.UUID) (project.Project, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	switch {
	case !ok:
		return project.Project{}, project.ErrNotFound
	case p.OwnerID != ownerID:
		return project.Project{}, project.ErrForbidden
	case p.Status != project.StatusActive:
		return project.Project{}, project.ErrNotActive
	}
	p.Status = project.StatusClosed
	f.byID[id] = p
	return p, nil
}

func (f *fakeProjects) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	switch {
	case !ok:
		return project.ErrNotFound
	case p.OwnerID != ownerID:
		return project.ErrForbidden
	}
	delete(f.byID, id)
	return nil
}

// fakeApplications shares the projects fake so Hire can bump the count the
// way the transaction does.
type fakeApplications struct {
	calls
	mu       sync.Mutex
	byID     map[uuid.UUID]application.Application
	projects *fakeProjects
	listErr  error
	hireErr  error
}

func newFakeApplications(projects *fakeProjects, as ...application.Application) *fakeApplications {
	f := &fakeApplications{byID: map[uuid.UUID]application.Application{}, projects: projects}
	for _, a := range as {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeApplications) Create(_ context.Context, in application.NewApplication) (application.Application, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	cover := in.CoverLetter
	a := application.Application{
		ID:          uuid.New(),
		ProjectID:   in.ProjectID,
		ApplicantID: in.ApplicantID,
		CoverLetter: &cover,
		Status:      application.StatusPending,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeApplications) Exists(_ context.Context, projectID, applicantID uuid.UUID) (bool, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.ProjectID == projectID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplications) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (f *fakeApplications) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	f.inc()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]application.Application, 0)
	for _, a := range f.byID {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplications) ListByProject(_ context.Context, projectID uuid.UUID) ([]application.Application, error) {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]application.Application, 0)
	for _, a := range f.byID {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplications) Hire(_ context.Context, id, ownerID uuid.UUID, role string) (application.HireResult, error) {
	f.inc()
	if f.hireErr != nil {
		return application.HireResult{}, f.hireErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return application.HireResult{}, application.ErrNotFound
	}

	f.projects.mu.Lock()
	defer f.projects.mu.Unlock()
	p := f.projects.byID[a.ProjectID]
	if p.OwnerID != ownerID {
		return application.HireResult{}, application.ErrForbidden
	}
	if !a.Status.CanHire() {
		return application.HireResult{}, application.ErrInvalidTransition
	}

	a.Status = application.StatusHired
	a.Role = &role
	f.byID[id] = a
	p.CurrentHires++
	f.projects.byID[p.ID] = p
	return application.HireResult{Application: a, ProjectID: p.ID, CurrentHires: p.CurrentHires}, nil
}

type fakeSaved struct {
	calls
	mu      sync.Mutex
	rows    []saved.SavedProject
	listErr error
	saveErr error
}

func (f *fakeSaved) Save(_ context.Context, userID, projectID uuid.UUID) (saved.SavedProject, error) {
	f.inc()
	if f.saveErr != nil {
		return saved.SavedProject{}, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if s.UserID == userID && s.ProjectID == projectID {
			return s, nil
		}
	}
	s := saved.SavedProject{ID: uuid.New(), UserID: userID, ProjectID: projectID, CreatedAt: testNow}
	f.rows = append(f.rows, s)
	return s, nil
}

func (f *fakeSaved) Remove(_ context.Context, userID, projectID uuid.UUID) error {
	f.inc()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.rows {
		if s.UserID == userID && s.ProjectID == projectID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return saved.ErrNotFound
}

func (f *fakeSaved) ListByUser(_ context.Context, userID uuid.UUID) ([]saved.SavedProject, error) {
	f.inc()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]saved.SavedProject, 0)
	for _, s := range f.rows {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(evt ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeImages struct {
	objects []storage.Object
	err     error
}

func (f *fakeImages) PutProfileImage(_ context.Context, obj storage.Object) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.objects = append(f.objects, obj)
	return "https://cdn.example.com/profile-images/" + obj.UserID.String() + "." + obj.Ext, nil
}

func ptr[T any](v T) *T { return &v }
