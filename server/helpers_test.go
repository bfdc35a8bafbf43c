package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		defaultLimit int
		wantLimit    int
		wantOffset   int
	}{
		{"defaults", "", 10, 10, 0},
		{"explicit", "?limit=25&offset=50", 10, 25, 50},
		{"zero limit falls back", "?limit=0", 20, 20, 0},
		{"negative limit falls back", "?limit=-5", 20, 20, 0},
		{"limit clamped to max", "?limit=500", 10, 100, 0},
		{"negative offset clamped", "?offset=-1", 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePagination(c, tt.defaultLimit)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			_, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestPaginationHasMore(t *testing.T) {
	tests := []struct {
		name  string
		pag   Pagination
		total int64
		want  bool
	}{
		{"more pages", Pagination{Limit: 10, Offset: 0}, 25, true},
		{"exactly done", Pagination{Limit: 10, Offset: 15}, 25, false},
		{"past the end", Pagination{Limit: 10, Offset: 30}, 25, false},
		{"empty", Pagination{Limit: 10, Offset: 0}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pag.HasMore(tt.total))
		})
	}
}
