package config

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadAndWatch 约定：config/{service}.yaml，找不到再看当前目录
// 环境变量覆盖，例如 OBTS_LOG_LEVEL 覆盖 log.level
// 文件变更后重新 Unmarshal 到 out，然后回调 onChange（可以为 nil）
func LoadAndWatch(service string, out interface{}, onChange func()) (*viper.Viper, error) {
	v := newViper(service)
	v.SetConfigName(service)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(out); err != nil {
		return nil, err
	}
	log.Printf("[%s] config loaded from %s", service, v.ConfigFileUsed())

	watch(service, v, out, onChange)
	return v, nil
}

// Load 读取指定文件，不监听
func Load(service, path string, out interface{}) (*viper.Viper, error) {
	v := newViper(service)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(out); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadFileAndWatch 指定文件 + 热更新
func LoadFileAndWatch(service, path string, out interface{}, onChange func()) (*viper.Viper, error) {
	v, err := Load(service, path, out)
	if err != nil {
		return nil, err
	}
	watch(service, v, out, onChange)
	return v, nil
}

func newViper(service string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(service))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func watch(service string, v *viper.Viper, out interface{}, onChange func()) {
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("[%s] config file changed: %s", service, e.Name)
		if err := v.Unmarshal(out); err != nil {
			log.Printf("[%s] reload config error: %v", service, err)
			return
		}
		if onChange != nil {
			onChange()
		}
	})
	v.WatchConfig()
}
