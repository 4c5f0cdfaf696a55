package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessPageResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, PageResponse{
		List:  []string{"a", "b"},
		Total: 42,
		Page:  2,
		Limit: 20,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			List  []string `json:"list"`
			Total int64    `json:"total"`
			Page  int      `json:"page"`
			Limit int      `json:"limit"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Code != http.StatusOK || resp.Message != "success" {
		t.Errorf("envelope = %d %q", resp.Code, resp.Message)
	}
	if resp.Data.Total != 42 || resp.Data.Page != 2 || resp.Data.Limit != 20 {
		t.Errorf("page data = %+v", resp.Data)
	}
	if len(resp.Data.List) != 2 {
		t.Errorf("list = %v, want two items", resp.Data.List)
	}
}

func TestErrorHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		respond func(*gin.Context)
		code    int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "nope") }, http.StatusBadRequest},
		{"not found", func(c *gin.Context) { NotFound(c, "gone missing") }, http.StatusNotFound},
		{"gone", func(c *gin.Context) { Gone(c, "expired") }, http.StatusGone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c)

			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d", w.Code, tt.code)
			}
			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Code != tt.code || resp.Message == "" {
				t.Errorf("envelope = %d %q", resp.Code, resp.Message)
			}
		})
	}
}
