package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tron-wallet-core/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	// Addr 监听地址。设备桥接只应监听本机，例如 127.0.0.1:8080
	Addr string
}

type App struct {
	httpServer *http.Server
}

func New(cfg Config, httpHandler *gin.Engine) *App {
	return &App{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           httpHandler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run 启动服务并阻塞，直到 ctx 被取消后优雅退出
func (a *App) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, lis)
}

// Serve 在给定的 listener 上提供服务
func (a *App) Serve(ctx context.Context, lis net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP Server", zap.String("addr", lis.Addr().String()))
		if err := a.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP Server forced to shutdown", zap.Error(err))
		return err
	}
	<-errc
	logger.Info("Server exited properly")
	return nil
}
