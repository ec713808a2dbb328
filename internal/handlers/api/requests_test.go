package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func testRequestApp() *fiber.App {
	app := fiber.New()
	handler := NewRequestHandler(nil, nil)
	app.Get("/api/requests", handler.List)
	app.Get("/api/requests/:id", handler.Get)
	app.Post("/api/requests/:id/resolve", handler.Resolve)
	return app
}

func TestList_RejectsBadLimit(t *testing.T) {
	app := testRequestApp()

	for _, limit := range []string{"abc", "0", "-5", "1.5"} {
		req, _ := http.NewRequest("GET", "/api/requests?limit="+limit, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, resp.StatusCode)
		}
	}
}

func TestGet_RejectsBadID(t *testing.T) {
	app := testRequestApp()

	req, _ := http.NewRequest("GET", "/api/requests/not-a-uuid", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if msg := decodeError(t, resp); msg != "invalid request id" {
		t.Errorf("error = %q", msg)
	}
}

func TestResolve_RejectsBadID(t *testing.T) {
	app := testRequestApp()

	resp := postJSON(t, app, "/api/requests/not-a-uuid/resolve", `{"answer":"Yes."}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResolve_RequiresAnswer(t *testing.T) {
	app := testRequestApp()

	id := "b9f0e6f0-0000-4000-8000-000000000000"
	for _, body := range []string{`{}`, `{"answer":""}`, `{"answer":"   "}`} {
		resp := postJSON(t, app, "/api/requests/"+id+"/resolve", body)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}
