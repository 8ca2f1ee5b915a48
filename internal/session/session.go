// Package session issues and verifies the signed session cookie and the
// short-lived OTP challenge used by two-step login.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName = "session"

	sessionTTL = 24 * time.Hour
	otpTTL     = 5 * time.Minute
	otpDigits  = 6

	audienceSession = "session"
	audienceOTP     = "otp"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrInvalidOTP     = errors.New("invalid or expired one-time code")
)

// Claims is the payload of both token kinds. OTPHash is only set on
// challenges.
type Claims struct {
	OTPHash string `json:"otp,omitempty"`
	jwt.RegisteredClaims
}

// Session identifies the logged in user of a request.
type Session struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	now    func() time.Time

	// Redeemed challenge IDs until their expiry. Per process only.
	mu       sync.Mutex
	redeemed map[string]time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret:   []byte(secret),
		now:      time.Now,
		redeemed: make(map[string]time.Time),
	}
}

// Issue signs a session token for userID valid for 24 hours.
func (m *Manager) Issue(userID uuid.UUID) (string, time.Time, error) {
	expiresAt := m.now().Add(sessionTTL)
	token, err := m.sign(Claims{
		RegisteredClaims: m.registered(userID, audienceSession, expiresAt),
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse validates a session token and returns its session.
func (m *Manager) Parse(token string) (*Session, error) {
	claims, err := m.parse(token, audienceSession)
	if err != nil {
		return nil, ErrInvalidSession
	}

	userID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil, ErrInvalidSession
	}

	return &Session{UserID: userID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// IssueOTPChallenge creates a fresh six digit code and a challenge token that
// can later prove knowledge of it. The code itself is not in the token.
func (m *Manager) IssueOTPChallenge(userID uuid.UUID) (challenge string, code string, err error) {
	code, err = newOTPCode()
	if err != nil {
		return "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	challengeID, err := uuid.NewV4()
	if err != nil {
		return "", "", err
	}

	registered := m.registered(userID, audienceOTP, m.now().Add(otpTTL))
	registered.ID = challengeID.String()
	challenge, err = m.sign(Claims{
		OTPHash:          string(hash),
		RegisteredClaims: registered,
	})
	if err != nil {
		return "", "", err
	}
	return challenge, code, nil
}

// VerifyOTP returns the user the challenge was issued for when code matches
// and the challenge has not expired. A challenge is redeemed at most once;
// wrong codes do not use it up.
func (m *Manager) VerifyOTP(challenge, code string) (uuid.UUID, error) {
	claims, err := m.parse(challenge, audienceOTP)
	if err != nil || claims.OTPHash == "" || claims.ID == "" {
		return uuid.Nil, ErrInvalidOTP
	}

	if err := bcrypt.CompareHashAndPassword([]byte(claims.OTPHash), []byte(code)); err != nil {
		return uuid.Nil, ErrInvalidOTP
	}

	userID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidOTP
	}

	if !m.redeem(claims.ID, claims.ExpiresAt.Time) {
		return uuid.Nil, ErrInvalidOTP
	}
	return userID, nil
}

// redeem marks challengeID used and reports whether it was still unused.
func (m *Manager) redeem(challengeID string, expiresAt time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.redeemed {
		if now.After(exp) {
			delete(m.redeemed, id)
		}
	}

	if _, used := m.redeemed[challengeID]; used {
		return false
	}
	m.redeemed[challengeID] = expiresAt
	return true
}

// Cookie wraps a session token for Set-Cookie.
func Cookie(token string, expiresAt time.Time) http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func ClearCookie() http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) registered(userID uuid.UUID, audience string, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(m.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
}

func (m *Manager) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(token, audience string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
