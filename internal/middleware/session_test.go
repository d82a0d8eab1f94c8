package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSessionIssuesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(Session())
	router.GET("/ping", func(c *gin.Context) {
		seen = SessionID(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

	if seen == "" {
		t.Fatal("expected a session id to be set")
	}

	var issued *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			issued = cookie
		}
	}
	if issued == nil {
		t.Fatal("expected session cookie in response")
	}
	if issued.Value != seen {
		t.Fatalf("cookie %q does not match context id %q", issued.Value, seen)
	}
	if !issued.HttpOnly {
		t.Fatal("expected httpOnly session cookie")
	}
}

func TestSessionReusesExistingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(Session())
	router.GET("/ping", func(c *gin.Context) {
		seen = SessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "existing-id"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if seen != "existing-id" {
		t.Fatalf("expected existing session id reused, got %q", seen)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			t.Fatal("expected no new cookie when one already exists")
		}
	}
}
