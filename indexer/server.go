package indexer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Memehub/config"
	"Memehub/indexer/process"
	"Memehub/middleware"
	"Memehub/pkg/log"
	"Memehub/pkg/rocketmq"
	"Memehub/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrServerClosed = errors.New("shutting down server")

type AppProvider struct {
	Config    *config.Config
	Engine    *gin.Engine
	Coroutine *process.Server
	DB        *gorm.DB
	Producer  *rocketmq.Rocketmq
}

// NewGinEngine sync-server 只暴露探针
func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.GinZap(), gin.Recovery())
	server.RegisterProbes(r)
	return r
}

func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)

	if app.Config.Debug() {
		gin.SetMode(gin.DebugMode)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	app.Coroutine.Start(eg, groupCtx)

	log.L.Info("server_id", zap.String("server_id", server.ServerID(app.Config.Server.Metrics)))
	log.L.Info("server pid", zap.Int("pid", os.Getpid()))
	log.L.Info("metrics listen", zap.Int("port", app.Config.Server.Metrics))

	defer app.Producer.Shutdown()
	return start(c, eg, groupCtx, app)
}

func start(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider) error {
	serv := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Config.Server.Metrics),
		Handler: app.Engine,
	}

	eg.Go(func() error {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() (err error) {
		defer func() {
			log.L.Info("shutting down component...")

			timeCtx, timeCancel := context.WithTimeout(context.TODO(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Error("server shutdown failed", zap.Error(err))
			}

			// 通知其余任务退出
			err = ErrServerClosed
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrServerClosed) {
		log.L.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	log.L.Info("server exiting")

	return nil
}
