package anonymous

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidDeviceID = errors.New("invalid device id")

// Service issues the identifiers that tie a browser profile to its stored state.
type Service struct {
	cookieTTL time.Duration
}

func New() *Service {
	return &Service{cookieTTL: 365 * 24 * time.Hour}
}

// Issue returns a new random device id.
func (s *Service) Issue() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Validate accepts only ids this service could have issued.
func (s *Service) Validate(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 4 {
		return "", ErrInvalidDeviceID
	}
	return parsed.String(), nil
}

func (s *Service) CookieTTLSeconds() int {
	return int(s.cookieTTL.Seconds())
}
