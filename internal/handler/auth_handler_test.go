package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/univ-api/internal/middleware"
	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

type authServiceMock struct {
	login       *models.LoginRequest
	logoutToken string
	logoutUser  string
	verified    string
	reset       *models.ConfirmResetPasswordRequest
	err         error
}

func (m *authServiceMock) Signup(_ context.Context, req models.SignupRequest) (*models.User, error) {
	return &models.User{ID: "u1", Email: req.Email}, m.err
}

func (m *authServiceMock) VerifyEmail(_ context.Context, token string) error {
	m.verified = token
	return m.err
}

func (m *authServiceMock) ResendVerification(context.Context, models.EmailRequest) error {
	return m.err
}

func (m *authServiceMock) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.login = &req
	if m.err != nil {
		return nil, m.err
	}
	return &models.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *authServiceMock) RefreshToken(context.Context, models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	return &models.RefreshTokenResponse{AccessToken: "access-2"}, m.err
}

func (m *authServiceMock) Logout(_ context.Context, refreshToken, userID, _, _ string) error {
	m.logoutToken = refreshToken
	m.logoutUser = userID
	return m.err
}

func (m *authServiceMock) Profile(_ context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID}, m.err
}

func (m *authServiceMock) ChangePassword(context.Context, string, models.ChangePasswordRequest) error {
	return m.err
}

func (m *authServiceMock) ForgotPassword(context.Context, models.EmailRequest) error {
	return m.err
}

func (m *authServiceMock) ResetPassword(_ context.Context, req models.ConfirmResetPasswordRequest) error {
	m.reset = &req
	return m.err
}

type avatarServiceMock struct {
	uploaded []byte
	userID   string
	file     string
	err      error
}

func (m *avatarServiceMock) Upload(_ context.Context, userID string, r io.Reader) (*service.AvatarLink, error) {
	m.userID = userID
	m.uploaded, _ = io.ReadAll(r)
	return &service.AvatarLink{URL: "http://files/token"}, m.err
}

func (m *avatarServiceMock) Link(context.Context, string) (*service.AvatarLink, error) {
	return nil, m.err
}

func (m *avatarServiceMock) Open(token string) (*os.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	return os.Open(m.file)
}

func withClaims(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID, Role: models.RoleStudent})
		c.Next()
	}
}

func authRouter(svc *authServiceMock, avatars *avatarServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, avatars)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/auth/verify/:token", h.VerifyEmail)
	r.PATCH("/auth/reset-password/:token", h.ResetPassword)
	r.POST("/auth/logout", withClaims("u1"), h.Logout)
	r.GET("/auth/profile", h.Profile)
	r.POST("/auth/profile/avatar", withClaims("u1"), h.UploadAvatar)
	r.GET("/files/:token", h.Download)
	return r
}

func TestAuthHandlerLoginCapturesClientMeta(t *testing.T) {
	svc := &authServiceMock{}
	r := authRouter(svc, &avatarServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@uni.edu","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "tests")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.login)
	assert.Equal(t, "tests", svc.login.UserAgent)
	assert.NotEmpty(t, svc.login.IP)
	assert.Contains(t, w.Body.String(), `"accessToken":"access"`)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	svc := &authServiceMock{err: appErrors.ErrInvalidCredentials}
	w := doJSON(authRouter(svc, &avatarServiceMock{}), http.MethodPost, "/auth/login", `{"email":"a@uni.edu","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerVerifyAndReset(t *testing.T) {
	svc := &authServiceMock{}
	r := authRouter(svc, &avatarServiceMock{})

	w := doJSON(r, http.MethodGet, "/auth/verify/tok-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-1", svc.verified)

	w = doJSON(r, http.MethodPatch, "/auth/reset-password/tok-2", `{"password":"Newpass1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.reset)
	assert.Equal(t, "tok-2", svc.reset.Token)
	assert.Equal(t, "Newpass1", svc.reset.NewPassword)
}

func TestAuthHandlerLogoutUsesSessionUser(t *testing.T) {
	svc := &authServiceMock{}
	w := doJSON(authRouter(svc, &avatarServiceMock{}), http.MethodPost, "/auth/logout", `{"refreshToken":"r-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r-1", svc.logoutToken)
	assert.Equal(t, "u1", svc.logoutUser)
}

func TestAuthHandlerProfileRequiresClaims(t *testing.T) {
	w := doJSON(authRouter(&authServiceMock{}, &avatarServiceMock{}), http.MethodGet, "/auth/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerUploadAvatar(t *testing.T) {
	avatars := &avatarServiceMock{}
	r := authRouter(&authServiceMock{}, avatars)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", "me.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("image-bytes"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/profile/avatar", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", avatars.userID)
	assert.Equal(t, []byte("image-bytes"), avatars.uploaded)
	assert.Contains(t, w.Body.String(), "http://files/token")
}

func TestAuthHandlerUploadAvatarMissingFile(t *testing.T) {
	avatars := &avatarServiceMock{}
	w := doJSON(authRouter(&authServiceMock{}, avatars), http.MethodPost, "/auth/profile/avatar", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, avatars.userID)
}

func TestAuthHandlerDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte("png-data"), 0o600))
	r := authRouter(&authServiceMock{}, &avatarServiceMock{file: path})

	w := doJSON(r, http.MethodGet, "/files/signed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-data", w.Body.String())
}

func TestAuthHandlerDownloadExpired(t *testing.T) {
	avatars := &avatarServiceMock{err: appErrors.Clone(appErrors.ErrForbidden, "download link has expired")}
	w := doJSON(authRouter(&authServiceMock{}, avatars), http.MethodGet, "/files/old", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}
