package server

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PageParams holds the parsed page and limit query parameters.
type PageParams struct {
	Page  int
	Limit int
}

// parsePageParams reads the page and limit query parameters. Absent values
// fall back to defaults; present but malformed or out-of-range values are a
// 400, never silently coerced. On failure the response is already written
// and errResponseWritten is returned.
func (s *Server) parsePageParams(c *fiber.Ctx) (PageParams, error) {
	params := PageParams{Page: 1, Limit: defaultPageLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid page parameter"))
			return PageParams{}, errResponseWritten
		}
		params.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageLimit {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid limit parameter"))
			return PageParams{}, errResponseWritten
		}
		params.Limit = limit
	}

	return params, nil
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// fail writes the failure envelope with the status derived from the error.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// currentUserID returns the authenticated user ID placed in locals by
// AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "videoId" -> "video ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}
