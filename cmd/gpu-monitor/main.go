// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/NVIDIA/go-nvlib/pkg/nvlib/device"
	nvinfo "github.com/NVIDIA/go-nvlib/pkg/nvlib/info"
	"github.com/NVIDIA/go-nvml/pkg/nvml"

	spec "github.com/ktkim117/gpu-mon-cli/api/config/v1"
	"github.com/ktkim117/gpu-mon-cli/internal/info"
	"github.com/ktkim117/gpu-mon-cli/internal/metrics"
	"github.com/ktkim117/gpu-mon-cli/internal/monitor"
	"github.com/ktkim117/gpu-mon-cli/internal/render"
	"github.com/ktkim117/gpu-mon-cli/internal/resource"
	"github.com/ktkim117/gpu-mon-cli/internal/watch"
)

const (
	flagVerbosity = "verbosity"

	metricsShutdownTimeout = 5 * time.Second
)

// Config represents a collection of config options for the GPU monitor.
type Config struct {
	configFile string
	verbosity  int

	// flags stores the CLI flags for later processing.
	flags []cli.Flag
}

func main() {
	config := &Config{}

	c := newApp(config)
	c.Action = func(ctx *cli.Context) error {
		return start(ctx, config)
	}

	if err := c.Run(os.Args); err != nil {
		klog.Error(err)
		klog.Flush()
		os.Exit(1)
	}
}

func newApp(config *Config) *cli.App {
	c := cli.NewApp()
	c.Name = "gpu-monitor"
	c.Usage = "display live telemetry for NVIDIA GPUs"
	c.Version = info.GetVersionString()
	c.Before = func(ctx *cli.Context) error {
		return setupLogging(config.verbosity)
	}

	config.flags = []cli.Flag{
		&cli.DurationFlag{
			Name:    spec.FlagInterval,
			Value:   spec.DefaultInterval,
			Usage:   "the time between refreshes",
			EnvVars: []string{"GPU_MONITOR_INTERVAL"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagOneshot,
			Value:   false,
			Usage:   "print a single snapshot and exit",
			EnvVars: []string{"GPU_MONITOR_ONESHOT"},
		},
		&cli.StringFlag{
			Name:    spec.FlagFormat,
			Aliases: []string{"o"},
			Value:   spec.DefaultFormat,
			Usage:   "the output format:\n\t\t[table | json | yaml]",
			EnvVars: []string{"GPU_MONITOR_FORMAT"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagNoColor,
			Value:   false,
			Usage:   "disable colored output",
			EnvVars: []string{"GPU_MONITOR_NO_COLOR"},
		},
		&cli.IntFlag{
			Name:    spec.FlagTempWarning,
			Value:   spec.DefaultTempWarning,
			Usage:   "the temperature in degrees Celsius at which a GPU is shown as a warning",
			EnvVars: []string{"GPU_MONITOR_TEMP_WARNING"},
		},
		&cli.IntFlag{
			Name:    spec.FlagTempCritical,
			Value:   spec.DefaultTempCritical,
			Usage:   "the temperature in degrees Celsius at which a GPU is shown as critical",
			EnvVars: []string{"GPU_MONITOR_TEMP_CRITICAL"},
		},
		&cli.IntFlag{
			Name:    spec.FlagBarWidth,
			Value:   spec.DefaultBarWidth,
			Usage:   "the width of the progress bars in characters",
			EnvVars: []string{"GPU_MONITOR_BAR_WIDTH"},
		},
		&cli.StringFlag{
			Name:    spec.FlagMetricsAddress,
			Value:   "",
			Usage:   "the address to serve Prometheus metrics on (e.g. ':9400'); disabled if empty",
			EnvVars: []string{"GPU_MONITOR_METRICS_ADDRESS"},
		},
		&cli.StringFlag{
			Name:        spec.FlagConfigFile,
			Usage:       "the path to a config file as an alternative to command line options or environment variables",
			Destination: &config.configFile,
			EnvVars:     []string{"GPU_MONITOR_CONFIG_FILE", "CONFIG_FILE"},
		},
		&cli.IntFlag{
			Name:        flagVerbosity,
			Value:       0,
			Usage:       "the log verbosity",
			Destination: &config.verbosity,
			EnvVars:     []string{"GPU_MONITOR_VERBOSITY"},
		},
	}

	c.Flags = config.flags
	return c
}

// setupLogging sets the klog verbosity.
func setupLogging(verbosity int) error {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	if err := fs.Set("v", strconv.Itoa(verbosity)); err != nil {
		return fmt.Errorf("invalid --%v option: %v", flagVerbosity, err)
	}
	return nil
}

// loadConfig loads the config from the config file and command line.
func (cfg *Config) loadConfig(c *cli.Context) (*spec.Config, error) {
	config, err := spec.NewConfig(c, cfg.flags)
	if err != nil {
		return nil, fmt.Errorf("unable to finalize config: %v", err)
	}
	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate flags: %v", err)
	}

	return config, nil
}

func start(c *cli.Context, cfg *Config) error {
	klog.V(1).Info("Starting OS watcher.")
	sigs := watch.Signals(syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	for {
		// Load the configuration file
		klog.V(1).Info("Loading configuration.")
		config, err := cfg.loadConfig(c)
		if err != nil {
			return fmt.Errorf("unable to load config: %v", err)
		}

		// Print the config to the output.
		configJSON, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %v", err)
		}
		klog.V(1).Infof("\nRunning with config:\n%v", string(configJSON))

		restart, err := run(cfg, config, sigs, os.Stdout)
		if err != nil {
			return err
		}

		if !restart {
			if !*config.Flags.Oneshot {
				fmt.Println("GPU monitor stopped.")
			}
			return nil
		}
	}
}

// run wires NVML, the renderer and optional metrics together and runs the
// monitor loop until it stops or requests a restart.
func run(cfg *Config, config *spec.Config, sigs chan os.Signal, out io.Writer) (bool, error) {
	nvmllib := nvml.New()
	devicelib := device.New(nvmllib)
	infolib := nvinfo.New(
		nvinfo.WithNvmlLib(nvmllib),
		nvinfo.WithDeviceLib(devicelib),
	)

	manager, err := resource.NewManager(infolib, nvmllib, devicelib)
	if err != nil {
		return false, fmt.Errorf("failed to create resource manager: %w", err)
	}

	renderer, err := render.New(*config.Flags.Format, render.NewOptions(config, out))
	if err != nil {
		return false, err
	}

	interactive := *config.Flags.Format == spec.FormatTable && !*config.Flags.Oneshot && render.IsTerminal(out)
	screen := render.NewScreen(out, interactive)
	defer screen.Close()

	opts := []monitor.Option{
		monitor.WithInterval(time.Duration(*config.Flags.Interval)),
		monitor.WithOneshot(*config.Flags.Oneshot),
	}

	if addr := *config.Flags.MetricsAddress; addr != "" {
		gauges := metrics.New()
		server := metrics.NewServer(addr, gauges)
		if err := server.Start(); err != nil {
			return false, err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := server.Stop(ctx); err != nil {
				klog.Warningf("Error stopping metrics server: %v", err)
			}
		}()
		opts = append(opts, monitor.WithMetrics(gauges))
	}

	var configChanged <-chan string
	if cfg.configFile != "" && !*config.Flags.Oneshot {
		watcher, err := watch.Files(cfg.configFile)
		if err != nil {
			return false, err
		}
		defer watcher.Close()
		configChanged = watcher.Changed()
	}

	m := monitor.New(manager, renderer, screen, opts...)
	return m.Run(sigs, configChanged)
}
