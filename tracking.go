package portfolio

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// untrackedPrefixes are paths that never show up in the visitor log.
var untrackedPrefixes = []string{"/static/", "/assets/", "/favicon", "/healthz"}

// visitorLog records page views with a salted hash instead of the client IP.
type visitorLog struct {
	salt   string
	logger *slog.Logger
}

func newVisitorLog(logger *slog.Logger) (*visitorLog, error) {
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate visitor salt: %w", err)
	}
	return &visitorLog{salt: salt, logger: logger}, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP is stable for an IP within one process.
func (v *visitorLog) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + v.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Middleware logs each tracked request after it is served. Requests with
// "DNT: 1" are not logged.
func (v *visitorLog) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		begin := time.Now()
		c.Next()
		v.logger.Info("visit",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
			"visitor", v.hashIP(c.ClientIP()),
			"user_agent", c.Request.UserAgent(),
		)
	}
}
