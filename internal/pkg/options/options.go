// Package options loads CLI options from flags, ENV variables and ".env" files.
//
// Priority, from the highest: flag, OS ENV variable, ".env" file in the working directory, default value.
package options

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/keboola/kbc-conform/internal/pkg/env"
	"github.com/keboola/kbc-conform/internal/pkg/log"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
	"github.com/keboola/kbc-conform/internal/pkg/validator"
)

const (
	VerboseOpt     = "verbose"
	LogFileOpt     = "log-file"
	WorkingDirOpt  = "working-dir"
	OutputOpt      = "output"
	OutputText     = "text"
	OutputJSON     = "json"
	allowedOutputs = "oneof=" + OutputText + " " + OutputJSON
)

type Options struct {
	Verbose     bool   `mapstructure:"verbose"`
	LogFilePath string `mapstructure:"log-file"`
	WorkingDir  string `mapstructure:"working-dir"`
	Output      string `mapstructure:"output"`
	naming      *env.NamingConvention
}

func New() *Options {
	return &Options{naming: env.NewNamingConvention(env.Prefix)}
}

// BindPersistentFlags defines the flags shared by all commands.
func (o *Options) BindPersistentFlags(flags *pflag.FlagSet) {
	flags.BoolP(VerboseOpt, "v", false, "print details")
	flags.StringP(LogFileOpt, "l", "", "path to a log file for details")
	flags.StringP(WorkingDirOpt, "d", "", "use other working directory")
	flags.StringP(OutputOpt, "o", OutputText, `output format, "text" or "json"`)
}

// GetEnvName returns the ENV variable name of the option.
func (o *Options) GetEnvName(flagName string) string {
	return o.naming.FlagToEnv(flagName)
}

// Load values from the flags, OS envs and ".env" files in the working directory.
func (o *Options) Load(ctx context.Context, logger log.Logger, osEnvs *env.Map, fs afero.Fs, flags *pflag.FlagSet) error {
	// The working directory must be known before ".env" files are loaded
	workingDir, err := o.workingDir(osEnvs, flags)
	if err != nil {
		return err
	}
	envs := env.LoadDotEnv(ctx, logger, osEnvs, fs, []string{workingDir})

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return errors.PrefixError(err, "cannot bind flags")
	}

	// ENVs have lower priority than flags
	fromEnvs := make(map[string]any)
	flags.VisitAll(func(flag *pflag.Flag) {
		if value, found := envs.Lookup(o.GetEnvName(flag.Name)); found {
			fromEnvs[flag.Name] = value
		}
	})
	if err := v.MergeConfigMap(fromEnvs); err != nil {
		return errors.PrefixError(err, "cannot load ENVs")
	}

	if err := v.Unmarshal(o); err != nil {
		return errors.PrefixError(err, "cannot load options")
	}
	o.WorkingDir = workingDir
	o.Output = strings.ToLower(strings.TrimSpace(o.Output))
	if o.Output == "" {
		o.Output = OutputText
	}

	return validator.New().ValidateCtx(ctx, o.Output, allowedOutputs, OutputOpt)
}

// Dump returns options for the debug log.
func (o *Options) Dump() string {
	return fmt.Sprintf("Options: verbose=%t, log-file=%q, working-dir=%q, output=%q", o.Verbose, o.LogFilePath, o.WorkingDir, o.Output)
}

func (o *Options) IsJSON() bool {
	return o.Output == OutputJSON
}

func (o *Options) workingDir(osEnvs *env.Map, flags *pflag.FlagSet) (string, error) {
	var dir string
	if flag := flags.Lookup(WorkingDirOpt); flag != nil && flag.Changed {
		dir = flag.Value.String()
	} else if value, found := osEnvs.Lookup(o.GetEnvName(WorkingDirOpt)); found {
		dir = value
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.PrefixError(err, "cannot get working directory")
		}
		return wd, nil
	}
	return filepath.Clean(dir), nil
}
