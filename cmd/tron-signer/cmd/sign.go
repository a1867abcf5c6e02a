package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tron-wallet-core/internal/serialize"
	"tron-wallet-core/internal/signer"
	"tron-wallet-core/pkg/errno"
	"tron-wallet-core/pkg/logger"
	"tron-wallet-core/pkg/wallet/types"
)

var (
	signInput  string
	signOutput string
	signYes    bool
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "离线签名交易",
	Long: `读取 SignTxRequest JSON 文件，在终端上逐屏确认后签名，输出 SignedTx JSON。
请求中没有 address_n 时使用配置中的默认路径。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(signInput)
		if err != nil {
			return fmt.Errorf("读取输入文件失败: %w", err)
		}

		var req types.SignTxRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return errno.ErrBind.WithMessage(err.Error())
		}
		if len(req.AddressN) == 0 {
			if req.AddressN, err = resolvePath(""); err != nil {
				return err
			}
		}

		wallet, err := openWallet(cmd)
		if err != nil {
			return err
		}
		defer wallet.Zero()

		svc := signer.NewService(wallet, serialize.New(), newConfirmer(cmd, signYes),
			signer.WithLogger(logger.Named("signer")),
			signer.WithConfirmTimeout(cfg.Signer.ConfirmTimeout),
		)
		signed, err := svc.SignTx(cmd.Context(), &req)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(signed, "", "  ")
		if err != nil {
			return err
		}
		if signOutput == "" || signOutput == "-" {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		if err := os.WriteFile(signOutput, out, 0644); err != nil {
			return fmt.Errorf("保存结果失败: %w", err)
		}
		logger.Info("签名结果已保存", zap.String("path", signOutput), zap.String("tx_id", signed.TxID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&signInput, "input", "i", "unsigned.json", "待签名的请求文件路径")
	signCmd.Flags().StringVarP(&signOutput, "output", "o", "-", "签名结果输出路径，- 表示标准输出")
	signCmd.Flags().BoolVarP(&signYes, "yes", "y", false, "自动确认所有内容 (非交互运行)")
}
