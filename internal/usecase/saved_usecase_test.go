package usecase

import (
	"context"
	"testing"

	"joinup/internal/domain/project"
	"joinup/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaved_SaveListUnsave(t *testing.T) {
	repo := &fakeSaved{}
	uc := NewSavedUsecase(repo, testLogger)
	uc.now = fixedNow
	ctx := context.Background()
	s := session.Session{UserID: uuid.New()}
	pid := uuid.New()

	first, err := uc.Save(ctx, s, pid)
	require.NoError(t, err)
	again, err := uc.Save(ctx, s, pid)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "saving twice keeps one bookmark")

	list, err := uc.List(ctx, s)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Unsave(ctx, s, pid))
	assert.ErrorIs(t, uc.Unsave(ctx, s, pid), ErrNotFound)
}

func TestSaved_MissingTable(t *testing.T) {
	repo := &fakeSaved{listErr: errMissingTable, saveErr: errMissingTable}
	uc := NewSavedUsecase(repo, testLogger)
	s := session.Session{UserID: uuid.New()}

	list, err := uc.List(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Save(context.Background(), s, uuid.New())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSaved_Errors(t *testing.T) {
	repo := &fakeSaved{saveErr: project.ErrNotFound}
	uc := NewSavedUsecase(repo, testLogger)

	_, err := uc.Save(context.Background(), session.Session{UserID: uuid.New()}, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.Save(context.Background(), session.Session{UserID: uuid.New()}, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.List(context.Background(), session.Anonymous)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
