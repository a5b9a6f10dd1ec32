package middleware

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/config"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

const identityKey = "identity"

// Authenticator resolves the caller identity for every request. With
// Casdoor configured it parses the Bearer token; otherwise it falls
// back to the X-Identity header, which is development-only.
type Authenticator struct {
	client *casdoorsdk.Client
	logger utils.Logger
}

func NewAuthenticator(cfg *config.Config, logger utils.Logger) *Authenticator {
	a := &Authenticator{logger: logger}
	if cfg.Casdoor.Endpoint != "" {
		a.client = casdoorsdk.NewClient(
			cfg.Casdoor.Endpoint,
			cfg.Casdoor.ClientID,
			cfg.Casdoor.ClientSecret,
			cfg.Casdoor.Certificate,
			cfg.Casdoor.Organization,
			cfg.Casdoor.Application,
		)
	} else {
		logger.Warn("Casdoor not configured, using header identities (development only)")
	}
	return a
}

// Authenticate sets the caller identity on the request context, or
// rejects the request when no identity can be established.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := a.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireOwner allows only the configured owner identity through.
func RequireOwner(ownerIdentity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Identity(c) != ownerIdentity {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "owner access required"})
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated caller identity for the request.
func Identity(c *gin.Context) string {
	return c.GetString(identityKey)
}

func (a *Authenticator) resolve(c *gin.Context) (string, bool) {
	if a.client == nil {
		identity := c.GetHeader("X-Identity")
		return identity, identity != ""
	}

	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}

	claims, err := a.client.ParseJwtToken(token)
	if err != nil {
		a.logger.Warn("Rejected invalid token", "error", err)
		return "", false
	}
	return claims.Name, true
}
