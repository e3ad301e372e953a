package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"

	"grimoire/internal/config"
)

// IngestAuth guards machine-to-machine endpoints with a shared bearer token.
type IngestAuth struct {
	token   string
	openDev bool
}

// NewIngestAuth creates a new ingest auth middleware instance. Without a
// configured token the guarded routes are open in development and closed
// otherwise.
func NewIngestAuth(cfg *config.Config) *IngestAuth {
	return &IngestAuth{token: cfg.IngestToken, openDev: cfg.IsDev()}
}

// RequireToken rejects requests that do not carry the ingest token.
func (m *IngestAuth) RequireToken(c fiber.Ctx) error {
	if m.token == "" {
		if m.openDev {
			return c.Next()
		}
		return unauthorized(c)
	}

	presented := ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
	if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(m.token)) != 1 {
		return unauthorized(c)
	}
	return c.Next()
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>"
// header value, or "" when the header is not a bearer credential.
func ExtractBearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": "error",
		"error":  "unauthorized",
	})
}
