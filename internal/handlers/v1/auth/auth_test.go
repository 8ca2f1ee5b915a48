package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bank-server/internal/handlers/v1/handlertest"
	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*service.Registration, error) {
	args := m.Called(ctx, name, email, password)
	reg, _ := args.Get(0).(*service.Registration)
	return reg, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*service.User)
	return user, args.Error(1)
}

// -- register --

func TestHTTP_Register_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockAuthService)
	mockSvc.On("Register", mock.Anything, "Ana", "ana@example.com", "secret1").Return(&service.Registration{
		User:          service.User{ID: userID},
		AccountNumber: "AC0000000001",
	}, nil)

	resp := handlertest.NewAPI(t, NewRegisterHandler(mockSvc)).Post("/register", RegisterBody{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID.String(), body.ID)
	assert.Equal(t, "AC0000000001", body.AccountNumber)
}

func TestHTTP_Register_Duplicate(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, actions.ErrDuplicateEmail)

	resp := handlertest.NewAPI(t, NewRegisterHandler(mockSvc)).Post("/register", RegisterBody{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHTTP_Register_InvalidFields(t *testing.T) {
	mockSvc := new(mockAuthService)

	resp := handlertest.NewAPI(t, NewRegisterHandler(mockSvc)).Post("/register", RegisterBody{
		Name:     "",
		Email:    "not-an-email",
		Password: "123",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_Register_ServiceError(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	resp := handlertest.NewAPI(t, NewRegisterHandler(mockSvc)).Post("/register", RegisterBody{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

// -- login --

func TestHTTP_Login_SetsCookie(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	sessions := session.NewManager("test-secret")
	mockSvc := new(mockAuthService)
	mockSvc.On("Login", mock.Anything, "ana@example.com", "secret1").Return(&service.User{ID: userID}, nil)

	resp := handlertest.NewAPI(t, NewLoginHandler(mockSvc, sessions, false, nil)).Post("/login", LoginBody{
		Email:    "ana@example.com",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	sess, err := sessions.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
}

func TestHTTP_Login_BadCredentials(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

	resp := handlertest.NewAPI(t, NewLoginHandler(mockSvc, session.NewManager("test-secret"), false, nil)).Post("/login", LoginBody{
		Email:    "ana@example.com",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Empty(t, resp.Result().Cookies())
}

var otpLine = regexp.MustCompile(`"otp":"([0-9]{6})"`)

func TestHTTP_Login_OTPFlow(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	sessions := session.NewManager("test-secret")
	logger := logging.SetupLogging()
	logBuf := &bytes.Buffer{}
	logger.Out = logBuf

	mockSvc := new(mockAuthService)
	mockSvc.On("Login", mock.Anything, "ana@example.com", "secret1").Return(&service.User{ID: userID}, nil)
	api := handlertest.NewAPI(t, NewLoginHandler(mockSvc, sessions, true, logger))

	resp := api.Post("/login", LoginBody{Email: "ana@example.com", Password: "secret1"})

	assert.Equal(t, http.StatusAccepted, resp.Code)
	assert.Empty(t, resp.Result().Cookies())
	var body LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OTPRequired)
	require.NotEmpty(t, body.Challenge)

	match := otpLine.FindStringSubmatch(logBuf.String())
	require.Len(t, match, 2, "code is written to the operator log")
	code := match[1]

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	resp = api.Post("/login/otp", OTPBody{Challenge: body.Challenge, OTP: wrong})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = api.Post("/login/otp", OTPBody{Challenge: body.Challenge, OTP: code})
	assert.Equal(t, http.StatusOK, resp.Code)
	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	sess, err := sessions.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)

	// a redeemed challenge cannot log in again
	resp = api.Post("/login/otp", OTPBody{Challenge: body.Challenge, OTP: code})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHTTP_Logout_ClearsCookie(t *testing.T) {
	resp := handlertest.NewAPI(t, NewLogoutHandler()).Get("/logout")

	assert.Equal(t, http.StatusOK, resp.Code)
	header := resp.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, session.CookieName+"="))
	assert.Contains(t, header, "Max-Age=0")
}
