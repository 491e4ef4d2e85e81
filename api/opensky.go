package api

import (
	"net/http"

	"github.com/DoROAD-AI/skylink/internal/token"
	"github.com/DoROAD-AI/skylink/types"
	"github.com/gin-gonic/gin"
)

// ReconnectHandler godoc
// @Summary Force a token refresh for the caller's effective credentials
// @Tags OpenSky
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 502 {object} types.ErrorResponse
// @Router /api/opensky/reconnect [post]
func ReconnectHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tm := d.effectiveTokenManager(c)
		if _, err := tm.GetAuthorizationHeader(token.GetHeaderOpts{ForceRefresh: true}); err != nil {
			c.JSON(http.StatusBadGateway, types.ErrorResponse{Error: "reconnect failed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// SubmitCredentialsHandler godoc
// @Summary Exchange OpenSky client credentials for a session token
// @Description Only available when BYOK is enabled. Validates the
// @Description credentials against the token endpoint before minting a
// @Description session.
// @Tags OpenSky
// @Param credentials body types.CredentialsRequest true "Client credentials"
// @Produce json
// @Success 200 {object} types.CredentialsResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /api/opensky/credentials [post]
func SubmitCredentialsHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !d.BYOKEnabled {
			c.JSON(http.StatusForbidden, types.ErrorResponse{Error: "BYOK is disabled on this deployment"})
			return
		}

		var req types.CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "clientId and clientSecret are required"})
			return
		}

		probe := token.New(req.ClientID, req.ClientSecret, d.tokenURL())
		if _, err := probe.GetAuthorizationHeader(token.GetHeaderOpts{}); err != nil {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "credential validation failed"})
			return
		}

		sessionTok, err := d.Sessions.Create(req.ClientID, req.ClientSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "could not create session"})
			return
		}

		c.JSON(http.StatusOK, types.CredentialsResponse{Success: true, SessionToken: sessionTok})
	}
}

// GetOpenSkyStatusHandler godoc
// @Summary Report BYOK configuration and the caller's session state
// @Tags OpenSky
// @Produce json
// @Success 200 {object} types.OpenSkyStatusResponse
// @Router /api/opensky/status [get]
func GetOpenSkyStatusHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := sessionToken(c)
		hasSession := tok != "" && d.Sessions.Has(tok)
		active := false
		if hasSession {
			if mgr := d.Sessions.Resolve(tok); mgr != nil {
				active = mgr.HasCredentials()
			}
		}

		c.JSON(http.StatusOK, types.OpenSkyStatusResponse{
			Success:       true,
			BYOKEnabled:   d.BYOKEnabled,
			HasSession:    hasSession,
			SessionActive: active,
		})
	}
}

// DeleteCredentialsHandler godoc
// @Summary Delete the caller's BYOK session
// @Tags OpenSky
// @Produce json
// @Success 204
// @Router /api/opensky/credentials [delete]
func DeleteCredentialsHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := sessionToken(c)
		if tok != "" {
			d.Sessions.Delete(tok)
		}
		c.Status(http.StatusNoContent)
	}
}
