package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"videoId", "video ID"},
		{"commentId", "comment ID"},
		{"tweetId", "tweet ID"},
		{"channelId", "channel ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func paramsApp(srv *Server) *fiber.App {
	app := fiber.New()
	app.Get("/page", func(c *fiber.Ctx) error {
		params, err := srv.parsePageParams(c)
		if err != nil {
			return nil
		}
		return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
			"page": params.Page, "limit": params.Limit,
		})
	})
	return app
}

func TestParsePageParams(t *testing.T) {
	srv := &Server{}
	app := paramsApp(srv)

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantPage   float64
		wantLimit  float64
	}{
		{"defaults when absent", "/page", http.StatusOK, 1, 10},
		{"explicit values", "/page?page=3&limit=25", http.StatusOK, 3, 25},
		{"non-numeric page", "/page?page=abc", http.StatusBadRequest, 0, 0},
		{"zero page", "/page?page=0", http.StatusBadRequest, 0, 0},
		{"negative page", "/page?page=-1", http.StatusBadRequest, 0, 0},
		{"non-numeric limit", "/page?limit=ten", http.StatusBadRequest, 0, 0},
		{"limit above cap", "/page?limit=101", http.StatusBadRequest, 0, 0},
		{"limit at cap", "/page?limit=100", http.StatusOK, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.url, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var envelope models.Envelope
			require.NoError(t, json.Unmarshal(body, &envelope))

			if tt.wantStatus == http.StatusOK {
				assert.True(t, envelope.Success)
				data := envelope.Data.(map[string]any)
				assert.Equal(t, tt.wantPage, data["page"])
				assert.Equal(t, tt.wantLimit, data["limit"])
			} else {
				assert.False(t, envelope.Success)
				assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	srv := &Server{}
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := srv.parseID(c, "id")
		if err != nil {
			return nil
		}
		return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"id": id})
	})

	t.Run("valid", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non-numeric", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/abc", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("zero", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/0", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
