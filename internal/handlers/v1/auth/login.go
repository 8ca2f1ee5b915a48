package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
)

type LoginBody struct {
	Email    string `json:"email" required:"true" minLength:"1" doc:"Login email"`
	Password string `json:"password" required:"true" minLength:"1" doc:"Password"`
}

type LoginInput struct {
	Body LoginBody
}

type LoginResponse struct {
	UserID      string `json:"userID,omitempty" doc:"Logged in user, set once the session is issued"`
	OTPRequired bool   `json:"otpRequired" doc:"True when a one-time code must be posted to /login/otp"`
	Challenge   string `json:"challenge,omitempty" doc:"Opaque token to send back with the one-time code"`
}

// LoginOutput carries the session cookie unless a one-time code is pending.
type LoginOutput struct {
	Status    int
	SetCookie string `header:"Set-Cookie"`
	Body      LoginResponse
}

type authenticator interface {
	Login(ctx context.Context, email, password string) (*service.User, error)
}

// LoginHandler handles POST /login and POST /login/otp.
type LoginHandler struct {
	AuthService authenticator
	Sessions    *session.Manager
	RequireOTP  bool
	Logger      *logrus.Logger
}

func NewLoginHandler(svc authenticator, sessions *session.Manager, requireOTP bool, logger *logrus.Logger) *LoginHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LoginHandler{
		AuthService: svc,
		Sessions:    sessions,
		RequireOTP:  requireOTP,
		Logger:      logger,
	}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Log in",
		Description: "Checks the password and sets the session cookie, or returns an OTP challenge (202) when OTP is required.",
		Tags:        []string{"Auth"},
	}, h.handleLogin)

	huma.Register(api, huma.Operation{
		OperationID: "login-otp",
		Method:      http.MethodPost,
		Path:        "/login/otp",
		Summary:     "Complete OTP login",
		Description: "Verifies the one-time code for a challenge and sets the session cookie.",
		Tags:        []string{"Auth"},
	}, h.handleOTP)
}

func (h *LoginHandler) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return nil, huma.NewError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to log in", err)
	}
	logging.AddData(ctx, "userID", user.ID.String())

	if !h.RequireOTP {
		return h.issueSession(user.ID)
	}

	challenge, code, err := h.Sessions.IssueOTPChallenge(user.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to issue one-time code", err)
	}

	// Demo delivery channel: the code only ever goes to the server log.
	h.Logger.WithFields(logrus.Fields{
		"userID": user.ID.String(),
		"otp":    code,
	}).Warn("LoginHandler.OTP.issued (insecure demo delivery)")

	return &LoginOutput{
		Status: http.StatusAccepted,
		Body: LoginResponse{
			OTPRequired: true,
			Challenge:   challenge,
		},
	}, nil
}

type OTPBody struct {
	Challenge string `json:"challenge" required:"true" minLength:"1" doc:"Challenge from /login"`
	OTP       string `json:"otp" required:"true" pattern:"^[0-9]{6}$" doc:"Six digit one-time code"`
}

type OTPInput struct {
	Body OTPBody
}

func (h *LoginHandler) handleOTP(ctx context.Context, input *OTPInput) (*LoginOutput, error) {
	userID, err := h.Sessions.VerifyOTP(input.Body.Challenge, input.Body.OTP)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, err.Error())
	}
	logging.AddData(ctx, "userID", userID.String())

	return h.issueSession(userID)
}

func (h *LoginHandler) issueSession(userID uuid.UUID) (*LoginOutput, error) {
	token, expiresAt, err := h.Sessions.Issue(userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to issue session", err)
	}

	cookie := session.Cookie(token, expiresAt)
	return &LoginOutput{
		Status:    http.StatusOK,
		SetCookie: cookie.String(),
		Body:      LoginResponse{UserID: userID.String()},
	}, nil
}
