package usecase

import (
	"bytes"
	"context"
	"testing"

	"joinup/internal/domain/user"
	"joinup/internal/infrastructure/cache"
	"joinup/internal/infrastructure/storage"
	"joinup/internal/session"
	ucuser "joinup/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_GetStudent(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: "hash"}
	uc := NewProfileUsecase(newFakeUsers(u), nil, nil, testLogger)

	got, err := uc.GetStudent(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Name)
	assert.Equal(t, "Not specified", got.University)

	_, err = uc.GetStudent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfile_UpdateMe(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "ana@example.com"}
	users := newFakeUsers(u)
	c := newMemCache()
	c.data[cache.KeyStudentsList] = []byte(`[]`)
	uc := NewProfileUsecase(users, nil, c, testLogger)
	s := session.Session{UserID: u.ID, Email: u.Email}

	got, err := uc.UpdateMe(context.Background(), s, user.ProfileUpdate{
		FullName:     ptr("  Ana Lopez "),
		Availability: ptr("12 hours"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "10–15 hours/week", got.AvailabilityBucket)
	assert.NotContains(t, c.data, cache.KeyStudentsList)
}

func TestProfile_UpdateMe_ValidationBeforeIO(t *testing.T) {
	users := newFakeUsers()
	uc := NewProfileUsecase(users, nil, nil, testLogger)
	s := session.Session{UserID: uuid.New()}

	_, err := uc.UpdateMe(context.Background(), s, user.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.UpdateMe(context.Background(), s, user.ProfileUpdate{FullName: ptr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: full name cannot be empty", err.Error())
	assert.Zero(t, users.count())
}

func TestProfile_UploadImage(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "ana@example.com"}
	users := newFakeUsers(u)
	images := &fakeImages{}
	uc := NewProfileUsecase(users, images, nil, testLogger)
	s := session.Session{UserID: u.ID}

	url, err := uc.UploadImage(context.Background(), s, ucuser.Image{
		Filename: "me.PNG", ContentType: "image/png", Body: []byte("png"),
	})
	require.NoError(t, err)
	require.Len(t, images.objects, 1)
	assert.Equal(t, "png", images.objects[0].Ext)
	assert.Equal(t, url, *users.byID[u.ID].ProfileImage)
}

func TestProfile_UploadImage_Rejects(t *testing.T) {
	s := session.Session{UserID: uuid.New()}
	images := &fakeImages{}
	uc := NewProfileUsecase(newFakeUsers(), images, nil, testLogger)
	ctx := context.Background()

	_, err := uc.UploadImage(ctx, s, ucuser.Image{Filename: "a.pdf", ContentType: "application/pdf", Body: []byte("x")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	big := bytes.Repeat([]byte{1}, ucuser.MaxImageBytes+1)
	_, err = uc.UploadImage(ctx, s, ucuser.Image{Filename: "a.png", ContentType: "image/png", Body: big})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.UploadImage(ctx, s, ucuser.Image{Filename: "a.png", ContentType: "image/png"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, images.objects)

	noStore := NewProfileUsecase(newFakeUsers(), nil, nil, testLogger)
	_, err = noStore.UploadImage(ctx, s, ucuser.Image{Filename: "a.png", ContentType: "image/png", Body: []byte("x")})
	assert.ErrorIs(t, err, ErrUnavailable)

	disabled := NewProfileUsecase(newFakeUsers(), &fakeImages{err: storage.ErrDisabled}, nil, testLogger)
	_, err = disabled.UploadImage(ctx, s, ucuser.Image{Filename: "a.png", ContentType: "image/png", Body: []byte("x")})
	assert.ErrorIs(t, err, ErrUnavailable)
}
