package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingModule struct{ calls int }

func (m *pingModule) Register(rg *gin.RouterGroup) {
	m.calls++
	rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestRegistry_MountsModulesUnderAPIWithMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	reg := NewRegistry(e)
	reg.Use(func(c *gin.Context) {
		c.Header("X-Seen", "yes")
		c.Next()
	})
	mod := &pingModule{}
	reg.Add(mod)
	reg.Add(nil)

	reg.RegisterAll()
	reg.RegisterAll()
	assert.Equal(t, 1, mod.calls)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "yes", w.Header().Get("X-Seen"))

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
