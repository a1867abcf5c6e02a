package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"tron-wallet-core/internal/serialize"
	"tron-wallet-core/internal/signer"
	"tron-wallet-core/pkg/logger"
)

var (
	addressPath string
	addressShow bool
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "显示派生路径对应的 TRON 地址",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePath(addressPath)
		if err != nil {
			return err
		}

		wallet, err := openWallet(cmd)
		if err != nil {
			return err
		}
		defer wallet.Zero()

		svc := signer.NewService(wallet, serialize.New(), newConfirmer(cmd, false),
			signer.WithLogger(logger.Named("signer")),
			signer.WithConfirmTimeout(cfg.Signer.ConfirmTimeout),
		)
		addr, err := svc.GetAddress(cmd.Context(), path, addressShow)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(addr, "", "  ")
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), data)
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.Flags().StringVarP(&addressPath, "path", "p", "", "派生路径 (默认使用配置 device.default_path)")
	addressCmd.Flags().BoolVar(&addressShow, "show", false, "在终端上展示地址并要求确认")
}
