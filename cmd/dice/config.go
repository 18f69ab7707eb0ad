package main

import (
	"strings"

	"github.com/spf13/viper"
)

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	TPS    int    `mapstructure:"tps"`
}

type Config struct {
	Window     WindowConfig `mapstructure:"window"`
	ScenePath  string       `mapstructure:"scene"`
	SavePath   string       `mapstructure:"save"`
	ScriptDir  string       `mapstructure:"scripts"`
	LogLevel   string       `mapstructure:"log_level"`
	Production bool         `mapstructure:"production"`
	ShowFPS    bool         `mapstructure:"show_fps"`
}

// Setup reads the optional config file at cfgPath and DICE_* environment
// variables (DICE_WINDOW_WIDTH, DICE_SCENE, ...) on top of the defaults.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.title", "DICE - Board Game Engine")
	v.SetDefault("window.tps", 60)
	v.SetDefault("scene", "")
	v.SetDefault("save", "")
	v.SetDefault("scripts", "scripts")
	v.SetDefault("log_level", "info")
	v.SetDefault("production", false)
	v.SetDefault("show_fps", false)

	v.SetEnvPrefix("DICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
