package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/poolsim/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the plain API key on guarded requests.
const APIKeyHeader = "X-API-Key"

// VerifyAPIKey checks a plain key against its bcrypt hash.
func VerifyAPIKey(hashedKey, plainKey string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedKey), []byte(plainKey))
	return err == nil
}

// HashAPIKey returns the bcrypt hash to put in API_KEY_HASH.
func HashAPIKey(plainKey string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// APIKeyAuth rejects requests without a key matching cfg.APIKeyHash. With no
// hash configured every request passes.
func APIKeyAuth(cfg *config.Config) gin.HandlerFunc {
	if cfg.APIKeyHash == "" {
		log.Println("[AUTH] API_KEY_HASH not set; simulation routes are open")
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}
		if !VerifyAPIKey(cfg.APIKeyHash, key) {
			log.Printf("[AUTH] invalid API key from %s on %s", c.ClientIP(), c.FullPath())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}
		c.Next()
	}
}
