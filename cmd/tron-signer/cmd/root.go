package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"tron-wallet-core/internal/confirm"
	"tron-wallet-core/pkg/config"
	"tron-wallet-core/pkg/errno"
	"tron-wallet-core/pkg/hdnode"
	"tron-wallet-core/pkg/keystore"
	"tron-wallet-core/pkg/logger"
)

var (
	cfgFile      string
	keystoreFile string
	cfg          *config.Config
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "tron-signer",
	Short: "TRON 交易签名设备",
	Long: `模拟硬件钱包的 TRON 签名核心。
助记词加密保存在本地 Keystore 中，每笔交易在终端上逐屏确认后才会签名。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("keystore") {
			loaded.Device.KeystorePath = keystoreFile
		}
		cfg = loaded
		config.Global = *loaded

		logger.Init(cfg.App.Env)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code, msg := errno.Decode(err)
		fmt.Fprintf(os.Stderr, "错误 [%d]: %s\n", code, msg)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认查找 ./config.yaml 或 ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&keystoreFile, "keystore", "k", "wallet.json", "Keystore 文件路径")
}

// readPassword 优先使用配置 (TRON_DEVICE_PASSWORD)，否则在终端上读取
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	if cfg.Device.Password != "" {
		return cfg.Device.Password, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin 不是终端，请通过 TRON_DEVICE_PASSWORD 提供密码")
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}
	return string(password), nil
}

// openWallet 解密 Keystore 并恢复主密钥，调用方用完后需 Zero()
func openWallet(cmd *cobra.Command) (*hdnode.Wallet, error) {
	encrypted, err := keystore.LoadFromFile(cfg.Device.KeystorePath)
	if err != nil {
		return nil, fmt.Errorf("加载 Keystore 失败: %w", err)
	}

	password, err := readPassword(cmd, "请输入 Keystore 密码: ")
	if err != nil {
		return nil, err
	}

	mnemonic, err := keystore.DecryptMnemonic(encrypted, password)
	if err != nil {
		return nil, fmt.Errorf("解密失败: %w", err)
	}

	wallet, err := hdnode.NewFromMnemonic(mnemonic, cfg.Device.Passphrase)
	if err != nil {
		return nil, err
	}
	logger.Info("Keystore 已解锁", zap.String("id", encrypted.Id))
	return wallet, nil
}

// newConfirmer 返回终端确认器，yes 为 true 时自动确认所有内容
func newConfirmer(cmd *cobra.Command, yes bool) confirm.Confirmer {
	if yes {
		logger.Warn("已启用自动确认，交易内容不会经过人工核对")
		return confirm.AcceptAll()
	}

	var opts []confirm.TerminalOption
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		opts = append(opts, confirm.DrainStaleInput())
	}
	return confirm.NewTerminal(cmd.InOrStdin(), cmd.ErrOrStderr(), opts...)
}

// resolvePath 解析 --path，未指定时使用配置中的默认路径
func resolvePath(path string) ([]uint32, error) {
	if strings.TrimSpace(path) == "" {
		path = cfg.Device.DefaultPath
	}
	return hdnode.ParsePath(path)
}

func writeJSON(w io.Writer, data []byte) error {
	_, err := fmt.Fprintln(w, string(data))
	return err
}
