package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/lelibreauquotidien/yunomdns/pkg/announce"
	"github.com/lelibreauquotidien/yunomdns/pkg/config"
	"github.com/lelibreauquotidien/yunomdns/pkg/daemon"
)

// a handle to the file to log to in case the log-file flag is set
var logFile io.WriteCloser

func main() {
	configPath, err := config.DefaultPath()
	if err != nil {
		log.WithError(err).Warningln("Failed to locate config file")
	}

	app := &cli.App{
		Name:    "yunomdns",
		Usage:   "announces the .local domains of this server over multicast DNS.",
		Version: config.Global.Version,
		Action:  rootAction,
		Before:  beforeFunc,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				EnvVars:     []string{"YUNOMDNS_CONFIG_FILE"},
				Usage:       "yaml config `FILE` name",
				Destination: &config.Global.ConfigFile,
				Value:       configPath,
			},
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:        "log-file",
				Aliases:     []string{"log.file" /* config file key*/},
				EnvVars:     []string{"YUNOMDNS_LOG_FILE"},
				Usage:       "writes log output to `FILE` instead of stderr",
				Destination: &config.Global.LogFile,
				Value:       config.Global.LogFile,
			}),
			altsrc.NewBoolFlag(&cli.BoolFlag{
				Name:        "log-append",
				Aliases:     []string{"log.append" /* config file key*/},
				EnvVars:     []string{"YUNOMDNS_LOG_APPEND"},
				Usage:       "append to log output instead of overwriting",
				Destination: &config.Global.LogAppend,
				Value:       config.Global.LogAppend,
			}),
			altsrc.NewIntFlag(&cli.IntFlag{
				Name:        "log-level",
				Aliases:     []string{"log.level" /* config file key*/},
				EnvVars:     []string{"YUNOMDNS_LOG_LEVEL"},
				Usage:       "a value from 0 (least verbose) to 6 (most verbose)",
				Destination: &config.Global.LogLevel,
				Value:       config.Global.LogLevel,
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:        "telemetry-host",
				Aliases:     []string{"telemetry.host" /* config file key*/},
				EnvVars:     []string{"YUNOMDNS_TELEMETRY_HOST"},
				Usage:       "network address for prometheus and pprof to bind to. Set port to activate telemetry.",
				Destination: &config.Global.TelemetryHost,
				Value:       config.Global.TelemetryHost,
				Hidden:      true,
			}),
			altsrc.NewIntFlag(&cli.IntFlag{
				Name:        "telemetry-port",
				Aliases:     []string{"telemetry.port" /* config file key*/},
				EnvVars:     []string{"YUNOMDNS_TELEMETRY_PORT"},
				Usage:       "port for prometheus and pprof to listen on. Set to activate telemetry.",
				Destination: &config.Global.TelemetryPort,
				Value:       config.Global.TelemetryPort,
				Hidden:      true,
			}),
		},
		EnableBashCompletion: true,
	}

	sigs := make(chan os.Signal, 1)
	ctx, cancel := context.WithCancel(context.Background())

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		// further signals during the shutdown are absorbed, the
		// withdrawal always runs to completion
		for range sigs {
			log.Infoln("Termination requested, shutting down...")
			cancel()
		}
	}()

	err = app.RunContext(ctx, os.Args)

	if logFile != nil {
		log.Debugln("Closing log file.")
		if err := logFile.Close(); err != nil {
			fmt.Printf("error closing log file: %s\n", err)
		}
	}

	if err != nil {
		log.Errorf("error: %v\n", err)
		os.Exit(1)
	}
}

func rootAction(cCtx *cli.Context) error {
	return daemon.New(announce.NewEngine()).Run(cCtx.Context)
}

func beforeFunc(cCtx *cli.Context) error {
	if _, err := os.Stat(config.Global.ConfigFile); err == nil {
		yamlSrc := altsrc.NewYamlSourceFromFlagFunc("config")
		err := altsrc.InitInputSourceWithContext(cCtx.Command.Flags, yamlSrc)(cCtx)
		if err != nil {
			return fmt.Errorf("init yaml input src: %w", err)
		}
	}

	log.SetLevel(log.Level(config.Global.LogLevel))

	if config.Global.LogFile != "" {
		flags := os.O_WRONLY | os.O_CREATE
		if config.Global.LogAppend {
			flags |= os.O_APPEND
		}

		var err error
		logFile, err = os.OpenFile(config.Global.LogFile, flags, 0o644)
		if err != nil {
			return fmt.Errorf("open log file at %s: %w", config.Global.LogFile, err)
		}

		log.SetOutput(logFile)
	}

	if config.Global.TelemetryPort != 0 {
		go metricsListenAndServe(config.Global.TelemetryHost, config.Global.TelemetryPort)
	}

	return nil
}

func metricsListenAndServe(host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.WithField("addr", addr).Debugln("Starting telemetry server")
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.WithError(err).Warningln("Error serving telemetry")
	}
}
