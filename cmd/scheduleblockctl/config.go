package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/blockrender/scheduleblock/core"
	"github.com/blockrender/scheduleblock/engine"
	"github.com/blockrender/scheduleblock/lp"
	"github.com/blockrender/scheduleblock/partition"
)

const (
	configName = ".scheduleblockctl"
	configType = "yaml"
	envPrefix  = "SCHEDULEBLOCKCTL"
	envKeySep  = "_"
)

// config is the on-disk/env-var mirror of engine.Options, grounded on
// Sumatoshi-tech-codefang's internal/config/loader.go: missing file,
// missing keys and a missing env var are never errors, only defaults.
type config struct {
	IsTolerance          int16   `mapstructure:"is_tolerance"`
	Method               string  `mapstructure:"method"`
	ApplyDFS             bool    `mapstructure:"apply_dfs"`
	DFSTolerance         int16   `mapstructure:"dfs_tolerance"`
	LPIters              int     `mapstructure:"lp_iters"`
	LPModel              int     `mapstructure:"lp_model"`
	MILP                 bool    `mapstructure:"milp"`
	MILPTimeLimitSeconds float64 `mapstructure:"milp_time_limit_seconds"`
}

// loadConfig loads configuration from configPath (if non-empty), falling
// back to searching the CWD and $HOME for a .scheduleblockctl.yaml, then
// overlays SCHEDULEBLOCKCTL_* environment variables.
func loadConfig(configPath string) (*config, error) {
	v := viper.New()
	applyConfigDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySep))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A searched-for file that is absent yields ConfigFileNotFoundError;
		// an explicit configPath that is absent yields a plain fs error.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func applyConfigDefaults(v *viper.Viper) {
	d := engine.DefaultOptions()
	v.SetDefault("is_tolerance", d.IsTolerance)
	v.SetDefault("method", "greedy")
	v.SetDefault("apply_dfs", d.ApplyDFS)
	v.SetDefault("dfs_tolerance", d.DFSTolerance)
	v.SetDefault("lp_iters", d.LPIters)
	v.SetDefault("lp_model", int(d.LPModel))
	v.SetDefault("milp", d.MILP)
	v.SetDefault("milp_time_limit_seconds", d.MILPTimeLimitSeconds)
}

// toOptions maps config onto engine.Options (the original's setOptions
// parameters).
func (c *config) toOptions() engine.Options {
	method := partition.Greedy
	if strings.EqualFold(c.Method, "priority_queue") || strings.EqualFold(c.Method, "pq") {
		method = partition.PriorityQueue
	}
	model := lp.Model1
	if c.LPModel == int(lp.Model2) {
		model = lp.Model2
	}
	return engine.Options{
		IsTolerance:          c.IsTolerance,
		Method:               method,
		ApplyDFS:             c.ApplyDFS,
		DFSTolerance:         c.DFSTolerance,
		LPIters:              c.LPIters,
		LPModel:              model,
		MILP:                 c.MILP,
		MILPTimeLimitSeconds: c.MILPTimeLimitSeconds,
	}
}

// validateCount rejects a negative --count flag with the same sentinel
// core.ErrNegativeCount the engine's own buffer growth would use for a
// negative block count — engine.Compute's slice-based signature can never
// itself construct a negative count, so this boundary is where the
// sentinel actually gets exercised.
func validateCount(n int) error {
	if n < 0 {
		return core.ErrNegativeCount
	}
	return nil
}
