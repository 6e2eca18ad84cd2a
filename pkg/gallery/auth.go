package gallery

import (
	"context"
	"errors"
	"strings"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

const (
	pathLogin    = "/debug/users/login"
	pathRegister = "/debug/users/register"
	pathVerify   = "/users/verify"

	defaultRegisterMessage = "Registration successful!"
)

// ErrNoToken is returned when the backend accepts a login without a token.
var ErrNoToken = errors.New("login succeeded but no token was received")

// AuthService talks to the user endpoints.
type AuthService struct {
	c *apiclient.Client
}

// NewAuthService returns an AuthService using c.
func NewAuthService(c *apiclient.Client) *AuthService {
	return &AuthService{c: c}
}

// Login exchanges a name and password for a bearer token.
func (s *AuthService) Login(ctx context.Context, name, password string, opts ...apiclient.RequestOption) (LoginResult, error) {
	res, err := apiclient.Post[LoginResult](ctx, s.c, pathLogin, credentials{Name: strings.TrimSpace(name), Password: password}, opts...)
	if err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return LoginResult{}, ErrNoToken
	}
	return res, nil
}

// Register creates an account.
func (s *AuthService) Register(ctx context.Context, name, password string, opts ...apiclient.RequestOption) (RegisterResult, error) {
	res, err := apiclient.Post[RegisterResult](ctx, s.c, pathRegister, credentials{Name: strings.TrimSpace(name), Password: password}, opts...)
	if err != nil {
		return RegisterResult{}, err
	}
	if res.Message == "" {
		res.Message = defaultRegisterMessage
	}
	return res, nil
}

// VerifyToken reports whether the current credential is still accepted. It
// never notifies the user.
func (s *AuthService) VerifyToken(ctx context.Context) (bool, error) {
	res, err := apiclient.Get[verifyResult](ctx, s.c, pathVerify, nil, apiclient.SkipErrorHandler())
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}
