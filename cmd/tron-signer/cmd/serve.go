package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"tron-wallet-core/internal/handler"
	"tron-wallet-core/internal/serialize"
	"tron-wallet-core/internal/server"
	"tron-wallet-core/internal/signer"
	"tron-wallet-core/pkg/logger"
)

var (
	serveHost string
	serveYes  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动本地 HTTP 桥接",
	Long:  `在本机提供 /api/v1/tron/sign 和 /api/v1/tron/address 接口，确认仍在终端上进行。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.App.Env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		wallet, err := openWallet(cmd)
		if err != nil {
			return err
		}
		defer wallet.Zero()

		svc := signer.NewService(wallet, serialize.New(), newConfirmer(cmd, serveYes),
			signer.WithLogger(logger.Named("signer")),
			signer.WithConfirmTimeout(cfg.Signer.ConfirmTimeout),
		)
		router := server.NewHTTPRouter(handler.NewTronHandler(svc))
		app := server.New(server.Config{Addr: net.JoinHostPort(serveHost, cfg.App.HttpPort)}, router)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "监听地址")
	serveCmd.Flags().BoolVarP(&serveYes, "yes", "y", false, "自动确认所有内容 (仅用于测试)")
}
