package config

import (
	"sync"

	"github.com/zxfonline/ultrafast/random"
)

var (
	_default     *Config
	_defaultLock sync.RWMutex
)

//初始化全局配置文件
func InitConfig(fname string) (cfg *Config, err error) {
	cfg, err = LoadFile(fname)
	if err != nil {
		return
	}
	SetDefault(cfg)
	return
}

func SetDefault(cfg *Config) {
	_defaultLock.Lock()
	defer _defaultLock.Unlock()
	_default = cfg
}

// Default returns the global config, nil before InitConfig or SetDefault.
func Default() *Config {
	_defaultLock.RLock()
	defer _defaultLock.RUnlock()
	return _default
}

// Build builds a profile of the global config.
func Build(name string) (random.Generator, error) {
	cfg := Default()
	if cfg == nil {
		return nil, ErrProfileNotFound
	}
	return cfg.Build(name)
}
