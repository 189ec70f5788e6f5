package service

import (
	"crypto/subtle"
	"errors"
	"net/url"
	"strings"
	"time"

	"konsert-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DraftService issues and checks the signed token that switches the rendered
// site into preview mode.
type DraftService struct {
	secret     string
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewDraftService(secret, signingKey string, ttl time.Duration) *DraftService {
	if signingKey == "" {
		signingKey = secret
	}
	return &DraftService{
		secret:     secret,
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *DraftService) Enabled() bool {
	return s != nil && strings.TrimSpace(s.secret) != ""
}

func (s *DraftService) TTL() time.Duration {
	return s.ttl
}

// Enable checks secret and returns a draft token together with the path the
// client should be sent to.
func (s *DraftService) Enable(secret, redirect string) (string, string, error) {
	if !s.Enabled() {
		return "", "", ErrDraftModeDisabled
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return "", "", ErrDraftSecretInvalid
	}

	now := s.now()
	claims := jwt.MapClaims{
		"draft": true,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", "", err
	}

	return token, SafeRedirect(redirect), nil
}

func (s *DraftService) Verify(tokenString string) bool {
	if !s.Enabled() || tokenString == "" {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	draft, _ := claims["draft"].(bool)
	return draft
}

// SafeRedirect reduces target to a site-relative path whose segments are
// normalized slugs. Anything pointing off-site becomes "/".
func SafeRedirect(target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return "/"
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" || parsed.User != nil {
		return "/"
	}

	segments := make([]string, 0)
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment = utils.NormalizeSlug(segment); segment != "" {
			segments = append(segments, segment)
		}
	}
	return "/" + strings.Join(segments, "/")
}
