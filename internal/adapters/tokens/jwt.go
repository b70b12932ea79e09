package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hostel_pms/internal/domain"
)

const issuer = "hostel-pms"

// Claims carries the principal behind a bearer token. The token id (jti) is
// the session id, so revoking the session revokes the token.
type Claims struct {
	Kind domain.PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}

// Service signs and validates HS256 bearer tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for sess.
func (s *Service) Issue(sess domain.Session) (string, error) {
	issued := sess.IssuedAt
	if issued.IsZero() {
		issued = s.now()
	}
	claims := Claims{
		Kind: sess.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns the session it names. Any failure is
// reported as domain.ErrUnauthorized.
func (s *Service) Parse(token string) (domain.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return domain.Session{}, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	sess := domain.Session{ID: claims.ID, Kind: claims.Kind, UserID: claims.Subject}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	return sess, nil
}
