// Package msgplusfiber wires msgplus into a fiber/v2 HTTP server: a body
// parser that decodes an application/x-msgpack request into a Value, a
// response writer that encodes one back, a JWT-gated handler wrapper, and
// request-id tagging.
package msgplusfiber

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"msgplus"
	"msgplus/version"
)

// ContentType is the media type this middleware recognizes as a
// msgplus-encoded body.
const ContentType = "application/x-msgpack"

// ParseBody decodes c's request body as a msgplus Value. It fails the
// request with 400 Bad Request on a malformed body rather than returning
// the error for the handler to interpret, matching this module's other
// fiber middleware.
func ParseBody(c *fiber.Ctx) (msgplus.Value, error) {
	v, err := msgplus.Unmarshal(c.Body())
	if err != nil {
		return msgplus.Value{}, fmt.Errorf("msgplusfiber: decode request body: %w", err)
	}
	return v, nil
}

// WriteValue encodes v and writes it as the response body with the
// msgplus content type and the given status code.
func WriteValue(c *fiber.Ctx, status int, v msgplus.Value) error {
	wire, err := msgplus.Marshal(v)
	if err != nil {
		return fmt.Errorf("msgplusfiber: encode response body: %w", err)
	}
	c.Set(fiber.HeaderContentType, ContentType)
	return c.Status(status).Send(wire)
}

// TagRequestID assigns c a fresh request id under fiber Locals "requestID"
// and the X-Request-Id response header, for correlating logs across a
// request's handler chain.
func TagRequestID(c *fiber.Ctx) error {
	id := uuid.NewString()
	c.Locals("requestID", id)
	c.Set("X-Request-Id", id)
	return c.Next()
}

// RequireWireVersion rejects requests declaring an incompatible wire
// format version in the X-Msgplus-Version header before the handler ever
// attempts to decode the body.
func RequireWireVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		declared := c.Get("X-Msgplus-Version")
		if declared == "" {
			return c.Next()
		}
		if err := version.CheckCompatible(declared); err != nil {
			return c.Status(fiber.StatusUpgradeRequired).SendString(err.Error())
		}
		return c.Next()
	}
}

// RequireSignedPayload builds a fiber.Handler gating access on an HMAC-signed
// JWT carried in header, verified against secret. On success the token's
// MapClaims are stored in fiber Locals under claimsKey for the next handler.
func RequireSignedPayload(header, secret, claimsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(header)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).SendString("missing " + header)
		}
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrForbidden
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusForbidden).SendString("invalid or expired token")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusForbidden).SendString("invalid token claims")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}
