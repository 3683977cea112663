package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller's identity for a request. Requests without a
// valid bearer token run as Anonymous; no endpoint requires identity.
type Identity struct {
	Subject   string
	Anonymous bool
}

type identityContextKey struct{}

// IdentityFromContext returns the request identity, defaulting to
// anonymous.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityContextKey{}).(Identity); ok {
		return id
	}
	return Identity{Anonymous: true}
}

// IdentityService decodes already-issued bearer tokens. It never issues
// tokens itself; authentication lives upstream.
type IdentityService struct {
	secret []byte
}

// NewIdentityService builds a service for the given HMAC secret. An
// empty secret disables decoding and every request runs anonymous.
func NewIdentityService(secret string) *IdentityService {
	return &IdentityService{secret: []byte(secret)}
}

// Decode validates a token string and returns the identity it carries.
func (s *IdentityService) Decode(tokenString string) (Identity, error) {
	if len(s.secret) == 0 {
		return Identity{Anonymous: true}, nil
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{Anonymous: true}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{Anonymous: true}, fmt.Errorf("token carries no subject")
	}

	return Identity{Subject: claims.Subject}, nil
}

// withIdentity attaches the caller's identity to the request context.
// A missing or invalid token degrades to anonymous rather than failing
// the request.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := Identity{Anonymous: true}

		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			decoded, err := s.identity.Decode(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				log.Printf("[identity] ignoring invalid token: %v", err)
			} else {
				identity = decoded
			}
		}

		ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
