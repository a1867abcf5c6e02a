package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tron-wallet-core/pkg/hdnode"
	"tron-wallet-core/pkg/keystore"
	"tron-wallet-core/pkg/logger"
)

var (
	initWords   int
	initRecover bool
	initLight   bool
	initShow    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "初始化设备 (生成或导入助记词并加密保存)",
	Long:  `生成新的 BIP-39 助记词 (或使用 --recover 从标准输入导入)，使用密码加密后保存为 Keystore 文件。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := cfg.Device.KeystorePath
		if _, err := os.Stat(outputFile); err == nil {
			return fmt.Errorf("文件 %s 已存在，请先删除或指定其他文件名", outputFile)
		}

		password, err := newPassword(cmd)
		if err != nil {
			return err
		}

		var mnemonic string
		if initRecover {
			fmt.Fprint(cmd.ErrOrStderr(), "请输入助记词: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("读取助记词失败: %w", err)
			}
			mnemonic = strings.Join(strings.Fields(line), " ")
			if _, err := hdnode.MnemonicToSeed(mnemonic, ""); err != nil {
				return err
			}
		} else {
			bitSize := 128
			if initWords == 24 {
				bitSize = 256
			} else if initWords != 12 {
				return fmt.Errorf("--words 只支持 12 或 24")
			}
			mnemonic, err = hdnode.GenerateMnemonic(bitSize)
			if err != nil {
				return err
			}
		}

		params := keystore.StandardScrypt
		if initLight {
			params = keystore.LightScrypt
		}
		encrypted, err := keystore.EncryptMnemonic(mnemonic, password, params)
		if err != nil {
			return fmt.Errorf("加密失败: %w", err)
		}
		if err := encrypted.SaveToFile(outputFile); err != nil {
			return fmt.Errorf("保存文件失败: %w", err)
		}
		logger.Info("Keystore 已创建", zap.String("path", outputFile), zap.String("id", encrypted.Id))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "钱包已初始化\n文件位置: %s\nID: %s\n", outputFile, encrypted.Id)
		if initShow && !initRecover {
			fmt.Fprintln(out, "---------------------------------------------------")
			fmt.Fprintln(out, "助记词 (请抄写在纸上并安全保管):")
			fmt.Fprintln(out, mnemonic)
			fmt.Fprintln(out, "---------------------------------------------------")
		}
		return nil
	},
}

func newPassword(cmd *cobra.Command) (string, error) {
	password, err := readPassword(cmd, "设置密码: ")
	if err != nil {
		return "", err
	}
	if cfg.Device.Password == "" {
		confirmPassword, err := readPassword(cmd, "确认密码: ")
		if err != nil {
			return "", err
		}
		if password != confirmPassword {
			return "", errors.New("两次输入的密码不一致")
		}
	}
	if len(password) < 6 {
		return "", errors.New("密码长度至少需要 6 位")
	}
	return password, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().IntVar(&initWords, "words", 12, "助记词数量 (12 或 24)")
	initCmd.Flags().BoolVar(&initRecover, "recover", false, "从标准输入导入已有助记词")
	initCmd.Flags().BoolVar(&initLight, "light", false, "使用轻量 scrypt 参数 (仅用于测试)")
	initCmd.Flags().BoolVar(&initShow, "show", false, "创建后显示助记词以便备份")
}
