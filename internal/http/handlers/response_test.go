package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// envelopeRouter serves one route that calls write, behind a stub of the
// RequestID middleware that also installs a logger writing to logs.
func envelopeRouter(logs *bytes.Buffer, write gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	lg := zerolog.New(logs)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-1")
		c.Set("logger", &lg)
		c.Next()
	})
	r.GET("/x", write)
	return r
}

func TestErrorEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		write  gin.HandlerFunc
		status int
		want   ErrorResponse
		logged bool
	}{
		{
			name:   "client error is not logged",
			write:  func(c *gin.Context) { fail(c, http.StatusNotFound, "not_found", "listing not found") },
			status: http.StatusNotFound,
			want:   ErrorResponse{RequestID: "rid-1", Code: "not_found", Message: "listing not found"},
		},
		{
			name: "field is carried",
			write: func(c *gin.Context) {
				failField(c, http.StatusBadRequest, "validation_failed", "phone", "phone: invalid")
			},
			status: http.StatusBadRequest,
			want:   ErrorResponse{RequestID: "rid-1", Code: "validation_failed", Field: "phone", Message: "phone: invalid"},
		},
		{
			name:   "server error is logged",
			write:  func(c *gin.Context) { Fail(c, http.StatusInternalServerError, "internal_error", "store down") },
			status: http.StatusInternalServerError,
			want:   ErrorResponse{RequestID: "rid-1", Code: "internal_error", Message: "store down"},
			logged: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			w := httptest.NewRecorder()
			envelopeRouter(&logs, tc.write).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var got ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v (%s)", err, w.Body.String())
			}
			if got != tc.want {
				t.Fatalf("body = %+v, want %+v", got, tc.want)
			}
			if logged := strings.Contains(logs.String(), `"code":"`+tc.want.Code+`"`); logged != tc.logged {
				t.Fatalf("logged = %v, want %v: %s", logged, tc.logged, logs.String())
			}
		})
	}
}

func TestFail_AbortsChain(t *testing.T) {
	var logs bytes.Buffer
	reached := false
	r := envelopeRouter(&logs, func(c *gin.Context) {
		fail(c, http.StatusConflict, "nothing_pending", "no delete pending")
		if c.IsAborted() {
			return
		}
		reached = true
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if reached || w.Code != http.StatusConflict {
		t.Fatalf("reached=%v status=%d", reached, w.Code)
	}
}

func TestOKAndNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"id": "apt_1"}) })
	r.GET("/none", noContent)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusCreated || strings.TrimSpace(w.Body.String()) != `{"id":"apt_1"}` {
		t.Fatalf("ok: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/none", nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("noContent: %d %q", w.Code, w.Body.String())
	}
}
