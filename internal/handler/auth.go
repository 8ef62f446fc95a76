package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/olympics-logistics/internal/model"
	"github.com/iliyamo/olympics-logistics/internal/utils"
)

// Authenticator checks member credentials.
type Authenticator interface {
	CheckLogin(ctx context.Context, memberID, password string) (*model.Member, error)
}

// AuthHandler issues access tokens to members who pass checkLogin.
type AuthHandler struct {
	auth   Authenticator
	secret string
	ttlMin int
}

func NewAuthHandler(auth Authenticator, secret string, ttlMin int) *AuthHandler {
	return &AuthHandler{auth: auth, secret: secret, ttlMin: ttlMin}
}

type loginReq struct {
	MemberID string `json:"member_id"`
	Password string `json:"password"`
}

type loginResp struct {
	Member      *model.Member     `json:"member"`
	AccessToken utils.AccessToken `json:"access_token"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.MemberID = strings.TrimSpace(req.MemberID)
	if req.MemberID == "" || req.Password == "" {
		return badRequest(c, "member_id/password required")
	}

	m, err := h.auth.CheckLogin(c.Request().Context(), req.MemberID, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	if m == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.secret, m.MemberID, string(m.MemberType), h.ttlMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Member: m, AccessToken: tok})
}
