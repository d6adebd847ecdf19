package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trivia/testutil"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authErrorBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newGuardedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.GET("/drinks-detail", RequirePermission(testutil.NewVerifier(t), "get:drinks-detail"), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "sub": claims.Subject})
	})
	return r
}

func TestRequirePermission(t *testing.T) {
	r := newGuardedRouter(t)

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "", http.StatusUnauthorized, "authorization_header_missing"},
		{"wrong scheme", "Token abc", http.StatusUnauthorized, "invalid_header"},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, "invalid_token"},
		{"lacks permission", "Bearer " + testutil.SignToken(t, "guest", "get:drinks"), http.StatusForbidden, "unauthorized"},
		{"granted", "Bearer " + testutil.SignToken(t, "barista", "get:drinks-detail"), http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantCode == "" {
				var ok struct {
					Sub string `json:"sub"`
				}
				if err := json.NewDecoder(rec.Body).Decode(&ok); err != nil || ok.Sub != "barista" {
					t.Fatalf("claims not passed to handler: %+v %v", ok, err)
				}
				return
			}

			var body authErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Error != tc.wantStatus || body.Code != tc.wantCode || body.Message == "" {
				t.Fatalf("unexpected error body: %+v", body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if generated == "" || rec.Body.String() != generated {
		t.Fatalf("generated id %q, body %q", generated, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("propagated id = %q, want abc-123", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.PATCH("/drinks/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/drinks/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q", got)
	}
}
