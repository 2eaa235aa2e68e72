package usecase

import (
	"context"
	"errors"

	"joinup/internal/domain/user"
	"joinup/internal/infrastructure/cache"
	"joinup/internal/infrastructure/storage"
	"joinup/internal/session"
	ucuser "joinup/internal/usecase/user"
	"joinup/internal/viewmodel"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ProfileUsecase interface {
	GetStudent(ctx context.Context, id uuid.UUID) (viewmodel.Student, error)
	GetMe(ctx context.Context, sess session.Session) (viewmodel.Profile, error)
	UpdateMe(ctx context.Context, sess session.Session, in user.ProfileUpdate) (viewmodel.Profile, error)
	UploadImage(ctx context.Context, sess session.Session, img ucuser.Image) (string, error)
}

type Profile struct {
	svc    *ucuser.Service
	images ImageStore
	cache  ListCache
	log    zerolog.Logger
}

// NewProfileUsecase wires the profile operations. images may be nil, in
// which case uploads report ErrUnavailable.
func NewProfileUsecase(users user.Repository, images ImageStore, c ListCache, logger zerolog.Logger) *Profile {
	return &Profile{
		svc:    ucuser.NewService(users),
		images: images,
		cache:  cacheOrNoop(c),
		log:    logger.With().Str("component", "profile").Logger(),
	}
}

func (u *Profile) GetStudent(ctx context.Context, id uuid.UUID) (viewmodel.Student, error) {
	if id == uuid.Nil {
		return viewmodel.Student{}, invalid("student id is required")
	}
	usr, err := u.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return viewmodel.Student{}, ErrNotFound
		}
		return viewmodel.Student{}, opFailed("get student", err)
	}
	return viewmodel.NewStudent(usr), nil
}

func (u *Profile) GetMe(ctx context.Context, sess session.Session) (viewmodel.Profile, error) {
	if !sess.Authenticated() {
		return viewmodel.Profile{}, ErrUnauthorized
	}
	usr, err := u.svc.Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return viewmodel.Profile{}, ErrNotFound
		}
		return viewmodel.Profile{}, opFailed("get profile", err)
	}
	return viewmodel.NewProfile(usr), nil
}

func (u *Profile) UpdateMe(ctx context.Context, sess session.Session, in user.ProfileUpdate) (viewmodel.Profile, error) {
	if !sess.Authenticated() {
		return viewmodel.Profile{}, ErrUnauthorized
	}
	usr, err := u.svc.UpdateProfile(ctx, sess.UserID, in)
	if err != nil {
		var ve *ucuser.ValidationError
		switch {
		case errors.As(err, &ve):
			return viewmodel.Profile{}, invalid("%s", ve.Reason)
		case errors.Is(err, user.ErrNotFound):
			return viewmodel.Profile{}, ErrNotFound
		default:
			return viewmodel.Profile{}, opFailed("update profile", err)
		}
	}

	u.invalidateStudents(ctx)
	return viewmodel.NewProfile(usr), nil
}

// UploadImage stores the image and points the profile at its public URL.
func (u *Profile) UploadImage(ctx context.Context, sess session.Session, img ucuser.Image) (string, error) {
	if !sess.Authenticated() {
		return "", ErrUnauthorized
	}
	ext, err := ucuser.ValidateImage(img)
	if err != nil {
		var ve *ucuser.ValidationError
		if errors.As(err, &ve) {
			return "", invalid("%s", ve.Reason)
		}
		return "", err
	}
	if u.images == nil {
		return "", ErrUnavailable
	}

	url, err := u.images.PutProfileImage(ctx, storage.Object{
		UserID:      sess.UserID,
		Ext:         ext,
		ContentType: img.ContentType,
		Body:        img.Body,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			return "", ErrUnavailable
		}
		return "", opFailed("upload profile image", err)
	}

	if err := u.svc.SetImage(ctx, sess.UserID, url); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", opFailed("save profile image", err)
	}

	u.invalidateStudents(ctx)
	u.log.Info().Str("user_id", sess.UserID.String()).Msg("profile image updated")
	return url, nil
}

func (u *Profile) invalidateStudents(ctx context.Context) {
	if err := u.cache.Delete(ctx, cache.KeyStudentsList); err != nil {
		u.log.Warn().Err(err).Msg("students cache invalidation failed")
	}
}
