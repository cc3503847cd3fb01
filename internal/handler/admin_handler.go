package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminSessionKey = "admin"

type loginPayload struct {
	Password string `json:"password"`
}

type adminSessionResponse struct {
	IsAdmin      bool `json:"isAdmin"`
	Enforced     bool `json:"enforced"`
	LoginEnabled bool `json:"loginEnabled"`
}

func isAdminSession(c *gin.Context) bool {
	admin, _ := sessions.Default(c).Get(adminSessionKey).(bool)
	return admin
}

func (a *API) sessionState(c *gin.Context) adminSessionResponse {
	return adminSessionResponse{
		IsAdmin:      isAdminSession(c),
		Enforced:     a.adminEnforce,
		LoginEnabled: a.admin.Enabled(),
	}
}

// AdminSession reports the admin flag of the current session.
func (a *API) AdminSession(c *gin.Context) {
	c.JSON(http.StatusOK, a.sessionState(c))
}

// AdminLogin 校验管理员密码并在会话中记录管理员标记
func (a *API) AdminLogin(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "invalid login payload") {
		return
	}

	if err := a.admin.Verify(payload.Password); err != nil {
		a.log.Info("admin login rejected", zap.String("client_ip", c.ClientIP()), zap.Error(err))
		a.fail(c, err, "admin login")
		return
	}

	session := sessions.Default(c)
	session.Set(adminSessionKey, true)
	if err := session.Save(); err != nil {
		a.fail(c, err, "save session")
		return
	}
	c.JSON(http.StatusOK, a.sessionState(c))
}

// AdminLogout clears the session.
func (a *API) AdminLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		a.fail(c, err, "save session")
		return
	}
	noContent(c)
}

// AdminRequired 在启用 ADMIN_ENFORCE 时拦截未登录的写操作
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.adminEnforce || isAdminSession(c) {
			c.Next()
			return
		}
		respondError(c, http.StatusUnauthorized, "admin session required")
		c.Abort()
	}
}
