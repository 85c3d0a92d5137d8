// Package config loads CLI configuration from config files and the
// environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem the CLI reads and writes through. Tests swap
// in an in-memory fs.
var AppFs = afero.NewOsFs()

// Config holds the CLI configuration.
type Config struct {
	SchemaPath    string
	OutputPath    string
	InterfaceName string
	DatabaseURL   string
	Provider      string
}

// Load reads configuration from config files, .env files, and the
// environment. Missing files are not an error.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".tablekit")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "tablekit"))

	viper.SetEnvPrefix("TABLEKIT")
	viper.AutomaticEnv()

	viper.SetDefault("schema_path", "schema.sql")
	viper.SetDefault("output_path", "")
	viper.SetDefault("interface_name", "Tables")
	viper.SetDefault("provider", "sqlite")

	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	// .env.local wins over .env.
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	return &Config{
		SchemaPath:    viper.GetString("schema_path"),
		OutputPath:    viper.GetString("output_path"),
		InterfaceName: viper.GetString("interface_name"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Provider:      viper.GetString("provider"),
	}, nil
}
