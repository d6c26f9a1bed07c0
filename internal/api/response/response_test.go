package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		write       func(c *gin.Context)
		wantStatus  int
		wantSuccess bool
		wantErrors  int
	}{
		{"ok", func(c *gin.Context) { OK(c, "done", gin.H{"a": 1}) }, http.StatusOK, true, 0},
		{"created", func(c *gin.Context) { Created(c, "made", nil) }, http.StatusCreated, true, 0},
		{"bad request with details", func(c *gin.Context) { BadRequest(c, "invalid", "a is required", "b is too long") }, http.StatusBadRequest, false, 2},
		{"not found", func(c *gin.Context) { NotFound(c, "missing") }, http.StatusNotFound, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["statusCode"] != float64(tt.wantStatus) {
				t.Errorf("statusCode = %v", body["statusCode"])
			}
			if body["success"] != tt.wantSuccess {
				t.Errorf("success = %v, want %v", body["success"], tt.wantSuccess)
			}
			if _, ok := body["data"]; !ok {
				t.Error("data key must always be present")
			}

			errs, hasErrors := body["errors"].([]interface{})
			if tt.wantSuccess && hasErrors {
				t.Error("successful responses carry no errors list")
			}
			if !tt.wantSuccess && (!hasErrors || len(errs) != tt.wantErrors) {
				t.Errorf("errors = %v, want %d entries", body["errors"], tt.wantErrors)
			}
		})
	}
}
