package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type sample struct {
	Name  string `json:"name" binding:"required"`
	Theme string `json:"theme" binding:"omitempty,oneof=light dark"`
}

type sampleQuery struct {
	Free string `form:"free" binding:"omitempty,oneof=all free premium"`
}

type sampleURI struct {
	Number int `uri:"number" binding:"required,min=1,max=118"`
}

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func newContext(method, target, body string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c
}

func TestBindUsesJSONNames(t *testing.T) {
	var dst sample
	fields := Bind(newContext(http.MethodPost, "/", `{"theme":"blue"}`), &dst)
	if fields == nil {
		t.Fatal("expected validation errors")
	}
	if _, ok := fields["name"]; !ok {
		t.Errorf("fields = %v, want key name", fields)
	}
	if msg := fields["theme"]; !strings.Contains(msg, "light dark") {
		t.Errorf("theme message = %q", msg)
	}
}

func TestBindSyntaxError(t *testing.T) {
	var dst sample
	fields := Bind(newContext(http.MethodPost, "/", `{`), &dst)
	if _, ok := fields["detail"]; !ok {
		t.Errorf("fields = %v, want detail", fields)
	}
}

func TestBindQueryUsesFormNames(t *testing.T) {
	var dst sampleQuery
	fields := BindQuery(newContext(http.MethodGet, "/?free=maybe", ""), &dst)
	if _, ok := fields["free"]; !ok {
		t.Errorf("fields = %v, want key free", fields)
	}
	if BindQuery(newContext(http.MethodGet, "/?free=premium", ""), &dst) != nil || dst.Free != "premium" {
		t.Errorf("valid query rejected, dst = %+v", dst)
	}
}

func TestBindURI(t *testing.T) {
	c := newContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "number", Value: "200"}}
	var dst sampleURI
	fields := BindURI(c, &dst)
	if _, ok := fields["number"]; !ok {
		t.Errorf("fields = %v, want key number", fields)
	}
}

func TestValidateOutsideRequest(t *testing.T) {
	fields := Validate(&sample{Theme: "neon"})
	if _, ok := fields["name"]; !ok {
		t.Errorf("fields = %v, want key name", fields)
	}
	if _, ok := fields["theme"]; !ok {
		t.Errorf("fields = %v, want key theme", fields)
	}
	if fields := Validate(&sample{Name: "x", Theme: "dark"}); fields != nil {
		t.Errorf("valid struct rejected: %v", fields)
	}
}
