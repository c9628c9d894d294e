package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Memehub/config"
	"Memehub/dao"
	"Memehub/dao/cache"
	"Memehub/dao/daotest"
	"Memehub/pkg/jwt"
	"Memehub/pkg/meili/meilitest"
	"Memehub/pkg/socket"
	"Memehub/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret = "handler-test-secret"
	hookSecret = "hook-secret"
)

type envelope struct {
	Code    int             `json:"code"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

type fixture struct {
	db     *gorm.DB
	engine *meilitest.Engine
	outbox *dao.IndexOutboxDAO
	hub    *socket.Hub
	router *gin.Engine
}

func newFixture(t *testing.T, engine *meilitest.Engine) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := daotest.NewDB(t)
	conf := &config.Config{
		Jwt:         &config.Jwt{Secret: testSecret},
		Hook:        &config.Hook{Secret: hookSecret},
		Redis:       &config.Redis{LockTTL: time.Second},
		Meilisearch: &config.Meilisearch{BackfillBatch: 100},
	}

	memeDAO := dao.NewMemeDAO(db)
	userDAO := dao.NewUserDAO(db)
	outbox := dao.NewIndexOutboxDAO(db)
	builder := &service.DocumentBuilder{MemeDAO: memeDAO, UserDAO: userDAO, TagDAO: dao.NewTagDAO(db)}
	hub := socket.NewHub()

	r := gin.New()
	(&Like{Config: conf, LikeService: &service.LikeService{
		Config:      conf,
		Tx:          dao.NewTx(db),
		MemeDAO:     memeDAO,
		MemeLikeDAO: dao.NewMemeLikeDAO(db),
		UserDAO:     userDAO,
		OutboxDAO:   outbox,
		Locker:      cache.NewLocalLock(),
		Notifier:    &service.Notifier{Hub: hub},
	}}).RegisterRouter(r)
	(&SearchSetup{Config: conf, SetupService: &service.SetupService{
		Config:    conf.Meilisearch,
		Engine:    engine,
		Builder:   builder,
		MemeDAO:   memeDAO,
		OutboxDAO: outbox,
	}}).RegisterRouter(r)
	(&Search{SearchService: &service.SearchService{Engine: engine}}).RegisterRouter(r)
	(&Hook{Config: conf, Sync: &service.Synchronizer{OutboxDAO: outbox, Builder: builder, Engine: engine}}).RegisterRouter(r)
	(&WebSocket{Config: conf, Hub: hub}).RegisterRouter(r)

	return &fixture{db: db, engine: engine, outbox: outbox, hub: hub, router: r}
}

func token(t *testing.T, userID, role string) string {
	t.Helper()
	tk, err := jwt.GenerateToken([]byte(testSecret), userID, role, jwt.TypeAccess, time.Hour)
	require.NoError(t, err)
	return tk
}

// do 发起请求，headers 按 key, value 成对传入
func (f *fixture) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusSwitchingProtocols && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func bearer(tk string) []string {
	return []string{"Authorization", "Bearer " + tk}
}
