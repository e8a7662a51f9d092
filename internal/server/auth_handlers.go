package server

import (
	"fmt"
	"strconv"
	"time"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "clipstream-api"
	tokenAudience = "clipstream-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// Signup handles POST /api/v1/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	if !s.flags.Enabled("signups", 0, true) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Signups are temporarily disabled"))
	}

	var req service.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Signup(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return models.RespondWithData(c, fiber.StatusCreated, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/v1/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/v1/auth/logout. The token's JTI is blacklisted
// until the token would have expired anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis == nil {
		return models.RespondWithMessage(c, fiber.StatusOK, "Logged out")
	}

	tokenString := extractBearerToken(c)
	if tokenString == "" {
		return models.RespondWithMessage(c, fiber.StatusOK, "Logged out")
	}

	// AuthRequired already validated the token; parse again just to read
	// the jti and exp claims.
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	})
	if err == nil && token.Valid {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if jti, ok := claims["jti"].(string); ok && jti != "" {
				ttl := tokenLifetime
				if exp, ok := claims["exp"].(float64); ok {
					if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
						ttl = remaining
					}
				}
				s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
			}
		}
	}

	return models.RespondWithMessage(c, fiber.StatusOK, "Logged out")
}

func extractBearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(tokenLifetime).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID so individual tokens can be revoked
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
