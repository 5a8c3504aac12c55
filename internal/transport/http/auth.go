package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried by bearer tokens.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Claims is the bearer token payload. CentreID is the acting centre for
// entry recording.
type Claims struct {
	Role     string `json:"role"`
	CentreID string `json:"centreId"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller.
type Principal struct {
	Subject  string
	Role     string
	CentreID string
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

type principalKey struct{}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller stored by the auth middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
	opts   []jwt.ParserOption
}

// NewAuthenticator creates an Authenticator. An empty secret rejects every
// token.
func NewAuthenticator(secret, issuer string) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Authenticator{secret: []byte(secret), opts: opts}
}

// Authenticate extracts and verifies the bearer token of r.
func (a *Authenticator) Authenticate(r *http.Request) (Principal, error) {
	if len(a.secret) == 0 {
		return Principal{}, errUnauthorized
	}

	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return Principal{}, errUnauthorized
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, a.opts...)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", errUnauthorized, err)
	}

	switch claims.Role {
	case RoleAdmin, RoleUser:
	default:
		return Principal{}, fmt.Errorf("%w: unknown role %q", errUnauthorized, claims.Role)
	}
	return Principal{Subject: claims.Subject, Role: claims.Role, CentreID: claims.CentreID}, nil
}
