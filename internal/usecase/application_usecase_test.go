package usecase

import (
	"context"
	"testing"

	"joinup/internal/domain/application"
	"joinup/internal/domain/project"
	"joinup/internal/domain/user"
	"joinup/internal/session"
	"joinup/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type hiringFixture struct {
	owner     session.Session
	applicant session.Session
	target    project.Project
	other     project.Project
	pending   application.Application

	users    *fakeUsers
	projects *fakeProjects
	apps     *fakeApplications
	cache    *memCache
	events   *recordingPublisher
	uc       *Applications
}

func newHiringFixture() *hiringFixture {
	f := &hiringFixture{
		owner:     session.Session{UserID: uuid.New(), Email: "owner@example.com"},
		applicant: session.Session{UserID: uuid.New(), Email: "student@example.com"},
	}
	f.target = project.Project{ID: uuid.New(), OwnerID: f.owner.UserID, Title: "Campus App", Status: project.StatusActive, MaxHires: 2, CreatedAt: testNow}
	f.other = project.Project{ID: uuid.New(), OwnerID: f.owner.UserID, Title: "Other", Status: project.StatusActive, CurrentHires: 3, MaxHires: 5, CreatedAt: testNow}
	f.pending = application.Application{
		ID:          uuid.New(),
		ProjectID:   f.target.ID,
		ApplicantID: f.applicant.UserID,
		Status:      application.StatusPending,
		CreatedAt:   testNow,
	}

	f.users = newFakeUsers(user.User{ID: f.applicant.UserID, Email: f.applicant.Email, FullName: ptr("Ana Lopez")})
	f.projects = newFakeProjects(f.target, f.other)
	f.apps = newFakeApplications(f.projects, f.pending)
	f.cache = newMemCache()
	f.events = &recordingPublisher{}
	f.uc = NewApplicationUsecase(f.apps, f.projects, f.users, f.cache, f.events, testLogger)
	f.uc.now = fixedNow
	return f
}

func TestHire_TransitionsAndIncrementsExactlyOnce(t *testing.T) {
	f := newHiringFixture()

	out, err := f.uc.Hire(context.Background(), f.owner, f.pending.ID, "  Frontend Developer ")
	require.NoError(t, err)

	assert.Equal(t, string(application.StatusHired), out.Application.Status)
	assert.Equal(t, "Frontend Developer", out.Application.Role)
	assert.Equal(t, f.target.ID, out.ProjectID)
	assert.Equal(t, 1, out.CurrentHires)

	assert.Equal(t, 1, f.projects.byID[f.target.ID].CurrentHires)
	assert.Equal(t, 3, f.projects.byID[f.other.ID].CurrentHires, "other project's counter must not change")

	assert.Equal(t, []string{ws.EventApplicationHired}, f.events.types())
	require.NotNil(t, f.events.events[0].CurrentHires)
	assert.Equal(t, 1, *f.events.events[0].CurrentHires)
}

func TestHire_ValidationBeforeIO(t *testing.T) {
	f := newHiringFixture()

	_, err := f.uc.Hire(context.Background(), f.owner, f.pending.ID, "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.uc.Hire(context.Background(), f.owner, uuid.Nil, "Dev")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.uc.Hire(context.Background(), session.Anonymous, f.pending.ID, "Dev")
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.Zero(t, f.apps.count())
	assert.Zero(t, f.projects.byID[f.target.ID].CurrentHires)
}

func TestHire_Errors(t *testing.T) {
	f := newHiringFixture()
	ctx := context.Background()

	_, err := f.uc.Hire(ctx, f.applicant, f.pending.ID, "Dev")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.uc.Hire(ctx, f.owner, uuid.New(), "Dev")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.uc.Hire(ctx, f.owner, f.pending.ID, "Dev")
	require.NoError(t, err)
	_, err = f.uc.Hire(ctx, f.owner, f.pending.ID, "Dev")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 1, f.projects.byID[f.target.ID].CurrentHires)

	f.apps.hireErr = errBoom
	_, err = f.uc.Hire(ctx, f.owner, f.pending.ID, "Dev")
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "operation failed: connection refused", err.Error())
}

func TestHire_DoesNotEnforceMaxHires(t *testing.T) {
	f := newHiringFixture()
	p := f.projects.byID[f.target.ID]
	p.CurrentHires = p.MaxHires
	f.projects.byID[p.ID] = p

	out, err := f.uc.Hire(context.Background(), f.owner, f.pending.ID, "Dev")
	require.NoError(t, err)
	assert.Equal(t, p.MaxHires+1, out.CurrentHires)
}

func TestApply(t *testing.T) {
	f := newHiringFixture()
	ctx := context.Background()
	other := session.Session{UserID: uuid.New()}

	got, err := f.uc.Apply(ctx, other, f.target.ID, ApplyInput{CoverLetter: " I can help "})
	require.NoError(t, err)
	assert.Equal(t, string(application.StatusPending), got.Status)
	assert.Equal(t, "I can help", got.CoverLetter)
	assert.Equal(t, "Applied today", got.AppliedLabel)
	require.NotNil(t, got.Project)
	assert.Equal(t, "Campus App", got.Project.Title)
	assert.Equal(t, []string{ws.EventApplicationSubmitted}, f.events.types())

	_, err = f.uc.Apply(ctx, other, f.target.ID, ApplyInput{CoverLetter: "again"})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestApply_Rules(t *testing.T) {
	f := newHiringFixture()
	ctx := context.Background()
	s := session.Session{UserID: uuid.New()}

	_, err := f.uc.Apply(ctx, s, f.target.ID, ApplyInput{CoverLetter: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, f.projects.count()+f.apps.count(), "validation must precede I/O")

	_, err = f.uc.Apply(ctx, s, uuid.New(), ApplyInput{CoverLetter: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)

	closed := f.projects.byID[f.other.ID]
	closed.Status = project.StatusClosed
	f.projects.byID[closed.ID] = closed
	_, err = f.uc.Apply(ctx, s, closed.ID, ApplyInput{CoverLetter: "hi"})
	assert.ErrorIs(t, err, ErrProjectClosed)

	_, err = f.uc.Apply(ctx, session.Anonymous, f.target.ID, ApplyInput{CoverLetter: "hi"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListForProject_AttachesApplicantsAndToleratesMissingProfiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newHiringFixture()
	ghost := application.Application{
		ID:          uuid.New(),
		ProjectID:   f.target.ID,
		ApplicantID: uuid.New(),
		Status:      application.StatusPending,
		CreatedAt:   testNow,
	}
	f.apps.byID[ghost.ID] = ghost
	f.users.failGet[ghost.ApplicantID] = errBoom

	out, err := f.uc.ListForProject(context.Background(), f.owner, f.target.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)

	byID := map[uuid.UUID]bool{}
	for _, a := range out {
		byID[a.ID] = a.Applicant != nil
		if a.ID == f.pending.ID {
			require.NotNil(t, a.Applicant)
			assert.Equal(t, "Ana Lopez", a.Applicant.Name)
			assert.Equal(t, "AL", a.Applicant.Initials)
		}
	}
	assert.True(t, byID[f.pending.ID])
	assert.False(t, byID[ghost.ID])
}

func TestListForProject_OwnerOnly(t *testing.T) {
	f := newHiringFixture()

	_, err := f.uc.ListForProject(context.Background(), f.applicant, f.target.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.uc.ListForProject(context.Background(), f.owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMineApplications(t *testing.T) {
	f := newHiringFixture()

	out, err := f.uc.ListMine(context.Background(), f.applicant)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, f.pending.ID, out[0].ID)

	f.apps.listErr = errBoom
	_, err = f.uc.ListMine(context.Background(), f.applicant)
	assert.EqualError(t, err, "operation failed: connection refused")
}
