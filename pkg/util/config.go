package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig reads config.yaml (or any format viper knows) from configDir.
// environment variables override file values.
func ReadConfig(configDir string) error {
	viper.SetConfigName("config")
	viper.AddConfigPath(configDir)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
