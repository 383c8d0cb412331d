// Command beandemo runs the container walkthrough scenarios.
//
//	beandemo --scenario shapes
//	beandemo --eager-order dependency --cycle-policy allow_setter
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/kbukum/beankit/bootstrap"
	"github.com/kbukum/beankit/config"
	"github.com/kbukum/beankit/internal/demo"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/version"
)

const serviceName = "beandemo"

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Error("beandemo failed", logger.ErrorFields("run", err))
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	scenario := fs.StringP("scenario", "s", "all", "scenario to run, or \"all\"")
	configFile := fs.StringP("config", "c", "", "path to config.yml")
	envFile := fs.String("env-file", "", "path to a .env file")
	fs.String("eager-order", "registration", "eager singleton order: registration or dependency")
	fs.String("cycle-policy", "reject", "cycle policy: reject or allow_setter")
	fs.String("log-level", "info", "log level")
	list := fs.Bool("list", false, "list scenarios and exit")
	summary := fs.Bool("summary", false, "print the bean summary after startup")
	showVersion := fs.BoolP("version", "v", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Println(version.Get().String())
		return nil
	}
	if *list {
		for _, s := range demo.All() {
			fmt.Printf("%-16s %s\n", s.Name, s.Description)
		}
		return nil
	}

	opts := []config.LoaderOption{
		config.WithFlags(fs, map[string]string{
			"container.eager_order":  "eager-order",
			"container.cycle_policy": "cycle-policy",
			"logging.level":          "log-level",
		}),
	}
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	var cfg config.AppConfig
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}

	selected := demo.All()
	if *scenario != "all" {
		s, err := demo.Lookup(*scenario)
		if err != nil {
			return err
		}
		selected = []demo.Scenario{s}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var appOpts []bootstrap.Option
	if !*summary {
		appOpts = append(appOpts, bootstrap.WithoutSummary())
	}
	for _, s := range selected {
		if err := demo.Run(ctx, cfg, s, os.Stdout, appOpts...); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		fmt.Println()
	}
	return nil
}
