package session

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(now time.Time) *Manager {
	m := NewManager("test-secret")
	m.now = func() time.Time { return now }
	return m
}

func TestIssueAndParse(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)
	userID := uuid.Must(uuid.NewV4())

	token, expiresAt, err := m.Issue(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(24*time.Hour), expiresAt, time.Second)

	sess, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
}

func TestParse_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-48 * time.Hour)
	token, _, err := newTestManager(issuedAt).Issue(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = newTestManager(time.Now()).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := NewManager("one").Issue(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = NewManager("two").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParse_RejectsOTPChallenge(t *testing.T) {
	m := NewManager("test-secret")
	challenge, _, err := m.IssueOTPChallenge(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = m.Parse(challenge)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestOTP_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")
	userID := uuid.Must(uuid.NewV4())

	challenge, code, err := m.IssueOTPChallenge(userID)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{6}$`), code)
	assert.NotContains(t, challenge, code)

	got, err := m.VerifyOTP(challenge, code)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestOTP_WrongCode(t *testing.T) {
	m := NewManager("test-secret")
	challenge, code, err := m.IssueOTPChallenge(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = m.VerifyOTP(challenge, wrong)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestOTP_SingleUse(t *testing.T) {
	m := NewManager("test-secret")
	userID := uuid.Must(uuid.NewV4())
	challenge, code, err := m.IssueOTPChallenge(userID)
	require.NoError(t, err)

	got, err := m.VerifyOTP(challenge, code)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = m.VerifyOTP(challenge, code)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestOTP_WrongCodeKeepsChallenge(t *testing.T) {
	m := NewManager("test-secret")
	challenge, code, err := m.IssueOTPChallenge(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = m.VerifyOTP(challenge, wrong)
	assert.ErrorIs(t, err, ErrInvalidOTP)

	_, err = m.VerifyOTP(challenge, code)
	assert.NoError(t, err)
}

func TestOTP_RedeemedForgottenAfterExpiry(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)
	challenge, code, err := m.IssueOTPChallenge(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	_, err = m.VerifyOTP(challenge, code)
	require.NoError(t, err)
	assert.Len(t, m.redeemed, 1)

	m.now = func() time.Time { return now.Add(otpTTL + time.Minute) }
	other, otherCode, err := m.IssueOTPChallenge(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	_, err = m.VerifyOTP(other, otherCode)
	require.NoError(t, err)
	assert.Len(t, m.redeemed, 1)
}

func TestOTP_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-6 * time.Minute)
	challenge, code, err := newTestManager(issuedAt).IssueOTPChallenge(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = newTestManager(time.Now()).VerifyOTP(challenge, code)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestOTP_SessionTokenIsNotAChallenge(t *testing.T) {
	m := NewManager("test-secret")
	token, _, err := m.Issue(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = m.VerifyOTP(token, "123456")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"userID"`
	}
}

func newTestAPI(t *testing.T, m *Manager) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(m.Middleware())
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
	}, func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		userID, err := RequireUser(ctx)
		if err != nil {
			return nil, err
		}
		out := &whoAmIOutput{}
		out.Body.UserID = userID.String()
		return out, nil
	})
	return api
}

func TestMiddleware_ValidCookie(t *testing.T) {
	m := NewManager("test-secret")
	userID := uuid.Must(uuid.NewV4())
	token, _, err := m.Issue(userID)
	require.NoError(t, err)

	resp := newTestAPI(t, m).Get("/whoami", "Cookie: session="+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestMiddleware_NoCookie(t *testing.T) {
	resp := newTestAPI(t, NewManager("test-secret")).Get("/whoami")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMiddleware_TamperedCookie(t *testing.T) {
	resp := newTestAPI(t, NewManager("test-secret")).Get("/whoami", "Cookie: session=not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
