package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Device DeviceConfig `mapstructure:"device"`
	Signer SignerConfig `mapstructure:"signer"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type DeviceConfig struct {
	KeystorePath string `mapstructure:"keystore_path"`
	Password     string `mapstructure:"password"`   // 通常通过环境变量 TRON_DEVICE_PASSWORD 传入
	Passphrase   string `mapstructure:"passphrase"` // BIP-39 passphrase
	DefaultPath  string `mapstructure:"default_path"`
}

type SignerConfig struct {
	// ConfirmTimeout 为 0 表示无限等待用户确认
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
}

var Global Config

// Load 读取配置文件和环境变量。path 为空时在 . 和 ./config 下查找 config.yaml。
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("TRON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Init 加载配置到 Global，失败直接退出
func Init(path string) {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Fatal error config file: %s \n", err)
	}
	Global = *cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")

	v.SetDefault("device.keystore_path", "wallet.json")
	v.SetDefault("device.password", "")
	v.SetDefault("device.passphrase", "")
	v.SetDefault("device.default_path", "m/44'/195'/0'/0/0")

	v.SetDefault("signer.confirm_timeout", "0s")
}
