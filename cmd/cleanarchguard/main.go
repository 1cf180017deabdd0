// Command cleanarchguard fails when a module imports across its layers in the
// wrong direction: domain <- services <- presentation, with infrastructure
// only reaching into domain.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type config struct {
	Root              string   `yaml:"root"`
	IgnoreTests       bool     `yaml:"ignore_tests"`
	IgnorePackages    []string `yaml:"ignore_packages"`
	SharedModules     []string `yaml:"shared_modules"`
	AllowedViolations []string `yaml:"allow_violations"`
	Layers            struct {
		Domain         []string `yaml:"domain"`
		Application    []string `yaml:"application"`
		Interfaces     []string `yaml:"interfaces"`
		Infrastructure []string `yaml:"infrastructure"`
	} `yaml:"layers"`
}

var defaultLayers = map[cleanarch.Layer][]string{
	cleanarch.LayerDomain:         {"domain"},
	cleanarch.LayerApplication:    {"services"},
	cleanarch.LayerInterfaces:     {"presentation", "controllers"},
	cleanarch.LayerInfrastructure: {"infrastructure"},
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := &config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	return cfg, nil
}

// aliases maps directory names to layers, preferring configured names.
func (c *config) aliases() map[string]cleanarch.Layer {
	custom := map[cleanarch.Layer][]string{
		cleanarch.LayerDomain:         c.Layers.Domain,
		cleanarch.LayerApplication:    c.Layers.Application,
		cleanarch.LayerInterfaces:     c.Layers.Interfaces,
		cleanarch.LayerInfrastructure: c.Layers.Infrastructure,
	}
	out := map[string]cleanarch.Layer{}
	for layer, names := range defaultLayers {
		if len(custom[layer]) > 0 {
			names = custom[layer]
		}
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = layer
			}
		}
	}
	return out
}

var crossModulePattern = regexp.MustCompile(`between ([\w-]+) and ([\w-]+) modules`)

// allowed reports whether msg is a cross-module import touching a shared
// module or matches one of the allowed substrings.
func (c *config) allowed(msg string) bool {
	if m := crossModulePattern.FindStringSubmatch(msg); len(m) == 3 {
		for _, shared := range c.SharedModules {
			if shared == m[1] || shared == m[2] {
				return true
			}
		}
	}
	for _, pattern := range c.AllowedViolations {
		if pattern != "" && strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func (c *config) filter(errs []cleanarch.ValidationError) []cleanarch.ValidationError {
	var out []cleanarch.ValidationError
	for _, e := range errs {
		if !c.allowed(e.Error()) {
			out = append(out, e)
		}
	}
	return out
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:           "cleanarchguard",
		Short:         "Check the layering of every module",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			root, err := filepath.Abs(cfg.Root)
			if err != nil {
				return errors.Wrap(err, "resolve root")
			}
			if debug {
				cleanarch.Log.SetOutput(cmd.ErrOrStderr())
			}
			ok, errs, err := cleanarch.NewValidator(cfg.aliases()).Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
			if err != nil {
				return errors.Wrap(err, "validate")
			}
			violations := cfg.filter(errs)
			if !ok && len(violations) > 0 {
				for _, v := range violations {
					logger.Error(v.Error())
				}
				return errors.Errorf("%d layering violation(s)", len(violations))
			}
			logger.Info("layering check passed")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", ".gocleanarch.yml", "config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "print go-cleanarch debug output")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
