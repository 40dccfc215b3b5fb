package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"vitrine/internal/domain"
)

func TestVerifyPassword(t *testing.T) {
	app, _ := newTestApp(t)

	// wrong password -> 401
	req := httptest.NewRequest("POST", "/api/admin/verify-password",
		strings.NewReader(`{"password":"wrongpass!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("want 401 for bad password, got %d", resp.StatusCode)
	}

	// right password -> 204
	req = httptest.NewRequest("POST", "/api/admin/verify-password",
		strings.NewReader(`{"password":"Passw0rd!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("want 204, got %d", resp.StatusCode)
	}
}

func placeTestOrder(t *testing.T, app *fiber.App) domain.Order {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(draftJSON))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("place: want 201, got %d", resp.StatusCode)
	}
	var ord domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&ord); err != nil {
		t.Fatal(err)
	}
	return ord
}

func fetchStatus(t *testing.T, app *fiber.App, id string) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/api/orders/"+id, nil))
	if err != nil {
		t.Fatal(err)
	}
	var ord domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&ord); err != nil {
		t.Fatal(err)
	}
	return ord.Status
}

func TestAdminStatusUpdateRequiresPassword(t *testing.T) {
	app, _ := newTestApp(t)
	ord := placeTestOrder(t, app)

	// bad bearer -> 401 and status untouched
	req := httptest.NewRequest("POST", "/api/admin/orders/"+ord.ID+"/status",
		strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer letmein")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
	if got := fetchStatus(t, app, ord.ID); got != domain.StatusPending {
		t.Fatalf("status must be unchanged, got %s", got)
	}

	// good bearer -> 204 and status applied
	req = httptest.NewRequest("POST", "/api/admin/orders/"+ord.ID+"/status",
		strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer Passw0rd!")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("want 204, got %d", resp.StatusCode)
	}
	if got := fetchStatus(t, app, ord.ID); got != domain.StatusApproved {
		t.Fatalf("want approved, got %s", got)
	}
}

func TestAdminStatusUpdateValidation(t *testing.T) {
	app, _ := newTestApp(t)
	ord := placeTestOrder(t, app)

	// unknown status -> 400
	req := httptest.NewRequest("POST", "/api/admin/orders/"+ord.ID+"/status",
		strings.NewReader(`{"status":"yeeted"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer Passw0rd!")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("want 400 for unknown status, got %d", resp.StatusCode)
	}

	// unknown order -> 404
	req = httptest.NewRequest("POST", "/api/admin/orders/ghost/status",
		strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer Passw0rd!")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404 for unknown order, got %d", resp.StatusCode)
	}
}
