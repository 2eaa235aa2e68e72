package user

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"joinup/internal/domain/user"

	"github.com/google/uuid"
)

const MaxImageBytes = 10 << 20

// ValidationError describes input rejected before any I/O.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

type Image struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in user.ProfileUpdate) (user.User, error) {
	in, err := NormalizeUpdate(in)
	if err != nil {
		return user.User{}, err
	}
	usr, err := s.users.UpdateProfile(ctx, id, in)
	if err != nil {
		return user.User{}, err
	}
	return sanitizeUser(usr), nil
}

// NormalizeUpdate trims every field. A blank full name is rejected; other
// blank text fields are stored as blank. Skills are trimmed and blanks
// dropped.
func NormalizeUpdate(in user.ProfileUpdate) (user.ProfileUpdate, error) {
	if in.Empty() {
		return in, invalid("no profile fields to update")
	}

	for _, f := range []**string{
		&in.FullName, &in.University, &in.Major, &in.AcademicYear,
		&in.Bio, &in.Availability, &in.Location,
	} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
	if in.FullName != nil && *in.FullName == "" {
		return in, invalid("full name cannot be empty")
	}

	if in.Skills != nil {
		skills := make([]string, 0, len(in.Skills))
		for _, s := range in.Skills {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		in.Skills = skills
	}
	return in, nil
}

// ValidateImage checks an upload and returns the file extension to store it
// under.
func ValidateImage(img Image) (string, error) {
	if len(img.Body) == 0 {
		return "", invalid("image file is empty")
	}
	if len(img.Body) > MaxImageBytes {
		return "", invalid("image must be 10 MiB or smaller")
	}
	ct := strings.ToLower(strings.TrimSpace(img.ContentType))
	if !strings.HasPrefix(ct, "image/") {
		return "", invalid("file must be an image")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(img.Filename), "."))
	if ext == "" {
		ext = extFromContentType(ct)
	}
	if ext == "" {
		return "", invalid("cannot determine image type")
	}
	return ext, nil
}

func extFromContentType(ct string) string {
	sub := strings.TrimPrefix(ct, "image/")
	if i := strings.IndexAny(sub, ";+"); i >= 0 {
		sub = sub[:i]
	}
	switch sub {
	case "jpeg", "pjpeg":
		return "jpg"
	default:
		return strings.TrimSpace(sub)
	}
}

func (s *Service) SetImage(ctx context.Context, id uuid.UUID, url string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("empty image url")
	}
	return s.users.SetProfileImage(ctx, id, url)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
