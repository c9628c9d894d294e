package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Memehub/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbesAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	RegisterProbes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"msg":"success","data":{"status":"ok"}}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/anything", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestServerID(t *testing.T) {
	assert.Regexp(t, `:8080$`, ServerID(8080))
}

func TestInitNode(t *testing.T) {
	configured := int64(7)
	nodeID, err := InitNode(&config.Server{NodeID: &configured}, 8080)
	require.NoError(t, err)
	assert.Equal(t, int64(7), nodeID)

	nodeID, err = InitNode(&config.Server{}, 8080)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, nodeID, int64(0))
	assert.Less(t, nodeID, int64(1024))

	invalid := int64(4096)
	_, err = InitNode(&config.Server{NodeID: &invalid}, 8080)
	assert.Error(t, err)
}
