package handlers_test

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideMeetingRouteRequiresInstructorRole(t *testing.T) {
	app := newTestApp(t)
	url := fmt.Sprintf("/api/v1/instructor/meetings/%s/decide", uuid.New())

	studentToken := signToken(t, uuid.New(), "student")
	req := httptest.NewRequest(fiber.MethodPut, url, strings.NewReader(`{"decision":"reject"}`))
	req.Header.Set("Authorization", "Bearer "+studentToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// An instructor clears the role guard and reaches the handler, which
	// reports the unknown meeting rather than a forbidden access.
	instructorToken := signToken(t, uuid.New(), "instructor")
	req = httptest.NewRequest(fiber.MethodPut, url, strings.NewReader(`{"decision":"reject"}`))
	req.Header.Set("Authorization", "Bearer "+instructorToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInstructorMeetingListingRequiresInstructorRole(t *testing.T) {
	app := newTestApp(t)

	studentToken := signToken(t, uuid.New(), "student")
	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/instructor/meetings/me", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	instructorToken := signToken(t, uuid.New(), "instructor")
	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/instructor/meetings/me", nil)
	req.Header.Set("Authorization", "Bearer "+instructorToken)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
