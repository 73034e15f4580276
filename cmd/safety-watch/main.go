package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/drivers/brick_simulator"
	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/drivers/mqbrick"
	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/safety"
	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

func run(c *cli.Context) error {
	if c.Bool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	log.Info("V5 Safety Watch")

	ws, err := safety.LoadWatchSet(c.String("watchset"))
	if err != nil {
		return fmt.Errorf("failed to load watch set: %v", err)
	}

	db, err := bolt.Open(c.String("db"), 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}
	defer db.Close()

	faults, err := safety.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create fault store: %v", err)
	}

	if last, err := faults.LastFault(); err == nil {
		log.Infof("Last recorded fault: port %d (%s) at %s",
			last.Port, last.Kind, last.Time.Format(time.RFC3339))
	}

	// Channel to listen for interrupt or terminate signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var host v5.Host
	var feedback v5.Feedback

	switch c.String("driver") {
	case "sim":
		brick := brick_simulator.New()
		for _, entry := range ws.Devices {
			kind, _ := v5.KindFromName(entry.Kind)
			brick.Plug(entry.Port, kind)
		}
		if port := c.Int("sim-unplug-port"); port > 0 {
			after := c.Duration("sim-unplug-after")
			log.Infof("Simulator will unplug port %d after %v", port, after)
			time.AfterFunc(after, func() {
				brick.Unplug(v5.Port(port))
			})
		}
		host, feedback = brick, brick

	case "mqtt":
		driver, err := mqbrick.NewDriver(db, log.WithField("device", "brick"))
		if err != nil {
			return fmt.Errorf("failed to create brick driver: %v", err)
		}
		defer driver.Close()

		cfg, err := driver.Config()
		if err != nil {
			return fmt.Errorf("failed to get brick config: %v", err)
		}
		if v := c.String("broker"); v != "" {
			cfg.Host = v
		}
		if v := c.String("username"); v != "" {
			cfg.Username = v
		}
		if v := c.String("password"); v != "" {
			cfg.Password = v
		}
		if v := c.String("topic-root"); v != "" {
			cfg.TopicRoot = v
		}
		if err := driver.SetConfig(cfg); err != nil {
			return fmt.Errorf("failed to save brick config: %v", err)
		}

		if err := driver.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %v", err)
		}

		log.Info("Waiting for device telemetry...")
		if err := driver.Brick().WaitReady(ctx); err != nil {
			return nil
		}
		host, feedback = driver.Brick(), driver.Brick()

	default:
		return fmt.Errorf("unknown driver: %s", c.String("driver"))
	}

	devices := ws.Bind(host)

	// One-shot wiring checks before the watchdog takes over.
	if rep := safety.UnpluggedReport(host, devices); rep != "" {
		log.Warnf("Devices missing at startup:\n%s", rep)
	}
	if bad := safety.ValidateMotorGroup(host, ws.MotorGroup()); len(bad) > 0 {
		log.Warnf("Motor group check failed on ports %v", bad)
	}

	sup := safety.NewSupervisor(feedback, devices, safety.SupervisorConfig{
		PollInterval: time.Duration(c.Int("interval")) * time.Millisecond,
	}, log.StandardLogger())

	port, err := sup.Run(ctx)
	if err != nil {
		log.Info("Supervisor stopped")
		return nil
	}

	rec := safety.FaultRecord{
		Port: port,
		Kind: host.PluggedKind(port).String(),
		Time: time.Now(),
	}
	if err := faults.RecordFault(rec); err != nil {
		log.Errorf("Failed to record fault: %v", err)
	}

	return cli.Exit(fmt.Sprintf("device unplugged on port %d", port), 1)
}

func main() {
	app := cli.App{
		Name:  "safety-watch",
		Usage: "Supervise V5 brick devices and trip on the first unplug",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
				Value:   false,
				EnvVars: []string{"DEBUG"},
			},
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Poll interval in milliseconds",
				Value:   500,
				EnvVars: []string{"SAFETY_INTERVAL"},
			},
			&cli.StringFlag{
				Name:    "watchset",
				Aliases: []string{"w"},
				Usage:   "Path to the watch-set YAML file",
				Value:   "watchset.yaml",
				EnvVars: []string{"SAFETY_WATCHSET"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the bolt database",
				Value:   "safety.db",
				EnvVars: []string{"SAFETY_DB"},
			},
			&cli.StringFlag{
				Name:    "driver",
				Usage:   "Brick driver: sim or mqtt",
				Value:   "mqtt",
				EnvVars: []string{"SAFETY_DRIVER"},
			},
			&cli.StringFlag{
				Name:    "broker",
				Usage:   "MQTT broker URL (overrides stored config)",
				EnvVars: []string{"SAFETY_BROKER"},
			},
			&cli.StringFlag{
				Name:    "username",
				Usage:   "MQTT username (overrides stored config)",
				EnvVars: []string{"SAFETY_USERNAME"},
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "MQTT password (overrides stored config)",
				EnvVars: []string{"SAFETY_PASSWORD"},
			},
			&cli.StringFlag{
				Name:    "topic-root",
				Usage:   "MQTT topic root of the brick bridge (overrides stored config)",
				EnvVars: []string{"SAFETY_TOPIC_ROOT"},
			},
			&cli.IntFlag{
				Name:  "sim-unplug-port",
				Usage: "Simulator only: port to unplug during the run",
			},
			&cli.DurationFlag{
				Name:  "sim-unplug-after",
				Usage: "Simulator only: delay before the scripted unplug",
				Value: 2 * time.Second,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
