package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Memehub/config"
	"Memehub/middleware"
	"Memehub/pkg/log"
	"Memehub/pkg/response"
	"Memehub/pkg/rocketmq"
	"Memehub/pkg/snowflake"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type AppProvider struct {
	Config   *config.Config
	Engine   *gin.Engine
	DB       *gorm.DB
	Producer *rocketmq.Rocketmq
}

// ServerID 本机内网 IP + 端口，取不到 IP 时退回主机名
func ServerID(port int) string {
	if ip, err := getLocalIP(); err == nil {
		return fmt.Sprintf("%s:%d", ip, port)
	}
	host, _ := os.Hostname()
	return fmt.Sprintf("%s:%d", host, port)
}

// InitNode 设置 snowflake 节点号，未配置时由 ServerID 与 pid 散列
func InitNode(conf *config.Server, port int) (int64, error) {
	nodeID := snowflake.NodeID(fmt.Sprintf("%s/%d", ServerID(port), os.Getpid()))
	if conf != nil && conf.NodeID != nil {
		nodeID = *conf.NodeID
	}
	return nodeID, snowflake.Init(nodeID)
}

func getLocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		// 排除回环地址
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	return "", errors.New("no ip address found")
}

func NewGinEngine(h *Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.Use(middleware.GinZap(), gin.Recovery(), response.ErrorMiddleware(), middleware.PrometheusMiddleware())

	RegisterProbes(r)
	h.Like.RegisterRouter(r)
	h.SearchSetup.RegisterRouter(r)
	h.Search.RegisterRouter(r)
	h.Hook.RegisterRouter(r)
	h.WebSocket.RegisterRouter(r)
	return r
}

// RegisterProbes /healthz 与 /metrics
func RegisterProbes(r gin.IRouter) {
	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Content-Length, X-Requested-With, X-Hook-Secret")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		// OPTIONS 直接返回 204
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func Run(ctx *cli.Context, app *AppProvider) error {
	if app.Config.Debug() {
		gin.SetMode(gin.DebugMode)
	}

	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	// 终止的信号 服务要停止了
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	serverID := ServerID(app.Config.Server.Http)
	log.L.Info("server starting", zap.String("serverId", serverID),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
	)

	defer app.Producer.Shutdown()
	return run(c, eg, groupCtx, serverID, app)
}

func run(c chan os.Signal, eg *errgroup.Group, ctx context.Context, serverID string, app *AppProvider) error {
	serv := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler: app.Engine,
	}

	// 启动 http 服务
	eg.Go(func() error {
		err := serv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping", zap.String("serverId", serverID))

			// 等待中断信号以优雅地关闭服务器
			timeCtx, timeCancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Info("server stopping", zap.String("serverId", serverID), zap.Error(err))
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.L.Info("server stopping", zap.Error(err))
		return err
	}

	log.L.Info("server stopped", zap.String("serverId", serverID))

	return nil
}
