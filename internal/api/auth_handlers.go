package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/fitplanner/internal/auth"
)

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PostAuthToken exchanges the caller's current credentials for a signed JWT,
// so clients authenticated by the remote service can call without it.
func PostAuthToken(app App, issuer *auth.JWTAuthProvider, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		token, expires, err := issuer.Issue(user, ttl)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to issue token")
			return
		}
		app.Logger().Infof("[request_id=%s] issued token for user %s", c.GetString("request_id"), user.ID)
		HandleCreated(c, app.Logger(), tokenResponse{Token: token, ExpiresAt: expires})
	}
}
