package customer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"bosko-storefront/internal/api"
	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/identity"
)

var (
	// ErrInvalidCredentials is returned when the backend issued a token that cannot be used.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type authAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	GoogleLogin(ctx context.Context, googleToken string) (*api.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, req api.ResetPasswordRequest) (string, error)
	Me(ctx context.Context) (*domain.User, error)
	UpdateMe(ctx context.Context, in api.ProfileUpdate) (*domain.User, error)

	Addresses(ctx context.Context) ([]domain.Address, error)
	CreateAddress(ctx context.Context, in domain.Address) (*domain.Address, error)
	UpdateAddress(ctx context.Context, id int64, in domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
	SetDefaultAddress(ctx context.Context, id int64) (*domain.Address, error)
}

type sessionControl interface {
	SignIn(ctx context.Context, token string) (*identity.Identity, error)
	SignOut(ctx context.Context)
	Identity() *identity.Identity
}

type preferences interface {
	RememberEmail(ctx context.Context, email string) error
	RememberedEmail(ctx context.Context) string
}

// Service handles sign in, registration and profile flows for one device.
type Service struct {
	api         authAPI
	session     sessionControl
	prefs       preferences
	passwordMin int
}

func New(api authAPI, session sessionControl, prefs preferences) *Service {
	return &Service{api: api, session: session, prefs: prefs, passwordMin: 6}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ResetInput struct {
	Email           string `json:"email"`
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Result is what the browser learns about a successful sign in. The bearer
// credential itself stays in device storage.
type Result struct {
	User     domain.User        `json:"user"`
	Identity *identity.Identity `json:"identity"`
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password, s.passwordMin); err != nil {
		return nil, err
	}
	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: in.Password})
	if err != nil {
		return nil, err
	}
	res, err := s.signIn(ctx, resp)
	if err != nil {
		return nil, err
	}
	remembered := ""
	if in.Remember {
		remembered = email
	}
	if err := s.prefs.RememberEmail(ctx, remembered); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 2 {
		return nil, errors.New("name must be at least 2 characters")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password, s.passwordMin); err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	resp, err := s.api.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: in.Password})
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, resp)
}

func (s *Service) GoogleLogin(ctx context.Context, googleToken string) (*Result, error) {
	googleToken = strings.TrimSpace(googleToken)
	if googleToken == "" {
		return nil, errors.New("token required")
	}
	resp, err := s.api.GoogleLogin(ctx, googleToken)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, resp)
}

func (s *Service) Logout(ctx context.Context) {
	s.session.SignOut(ctx)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	return s.api.ForgotPassword(ctx, email)
}

func (s *Service) ResetPassword(ctx context.Context, in ResetInput) (string, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Token) == "" {
		return "", errors.New("token required")
	}
	if err := validatePassword(in.NewPassword, s.passwordMin); err != nil {
		return "", err
	}
	if in.NewPassword != in.ConfirmPassword {
		return "", ErrPasswordMismatch
	}
	return s.api.ResetPassword(ctx, api.ResetPasswordRequest{Email: email, Token: in.Token, NewPassword: in.NewPassword})
}

func (s *Service) Profile(ctx context.Context) (*domain.User, error) {
	return s.api.Me(ctx)
}

func (s *Service) UpdateProfile(ctx context.Context, in api.ProfileUpdate) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, errors.New("name required")
	}
	in.Phone = strings.TrimSpace(in.Phone)
	return s.api.UpdateMe(ctx, in)
}

func (s *Service) Addresses(ctx context.Context) ([]domain.Address, error) {
	return s.api.Addresses(ctx)
}

// SaveAddress creates the address when id is zero and updates it otherwise.
func (s *Service) SaveAddress(ctx context.Context, id int64, in domain.Address) (*domain.Address, error) {
	if id < 0 {
		return nil, domain.ErrNotFound
	}
	in.ID = id
	if err := validateAddress(in); err != nil {
		return nil, err
	}
	if id == 0 {
		return s.api.CreateAddress(ctx, in)
	}
	return s.api.UpdateAddress(ctx, id, in)
}

func (s *Service) DeleteAddress(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.api.DeleteAddress(ctx, id)
}

func (s *Service) SetDefaultAddress(ctx context.Context, id int64) (*domain.Address, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.api.SetDefaultAddress(ctx, id)
}

func (s *Service) RememberedEmail(ctx context.Context) string {
	return s.prefs.RememberedEmail(ctx)
}

func (s *Service) signIn(ctx context.Context, resp *api.AuthResponse) (*Result, error) {
	id, err := s.session.SignIn(ctx, resp.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return &Result{User: resp.User, Identity: id}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", errors.New("email required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errors.New("email is not valid")
	}
	return email, nil
}

func validatePassword(p string, min int) error {
	if strings.TrimSpace(p) == "" {
		return errors.New("password required")
	}
	if len([]rune(p)) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	return nil
}

func validateAddress(a domain.Address) error {
	for name, v := range map[string]string{
		"fullName":   a.FullName,
		"street":     a.Street,
		"city":       a.City,
		"postalCode": a.PostalCode,
		"country":    a.Country,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s required", name)
		}
	}
	return nil
}
