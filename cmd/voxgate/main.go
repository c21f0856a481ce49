// Voxgate - voice-command gateway for SmartThings
//
// This is the main entry point for the Voxgate gateway. Voxgate
// translates structured spoken intents from a voice platform into
// calls against a SmartThings SmartApp, and maintains a small
// persisted registry of user-defined device groups.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/voxgate/voxgate/migrations"

	"github.com/voxgate/voxgate/internal/api"
	"github.com/voxgate/voxgate/internal/group"
	"github.com/voxgate/voxgate/internal/infrastructure/config"
	"github.com/voxgate/voxgate/internal/infrastructure/database"
	"github.com/voxgate/voxgate/internal/infrastructure/influxdb"
	"github.com/voxgate/voxgate/internal/infrastructure/logging"
	"github.com/voxgate/voxgate/internal/infrastructure/mqtt"
	"github.com/voxgate/voxgate/internal/pipeline"
	"github.com/voxgate/voxgate/internal/secrets"
	"github.com/voxgate/voxgate/internal/skill"
	"github.com/voxgate/voxgate/internal/smartthings"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Voxgate",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Group registry store
	store := group.NewSQLiteStore(db.DB)

	// Token source for the remote device API
	tokens, err := secrets.NewFileTokenSource(cfg.Secrets.TokenPath, cfg.Secrets.Key)
	if err != nil {
		return fmt.Errorf("creating token source: %w", err)
	}
	log.Info("token source ready", "path", cfg.Secrets.TokenPath)

	// Remote device directory client
	directory := smartthings.NewClient(cfg.SmartThings)
	log.Info("device directory client ready",
		"base_url", cfg.SmartThings.BaseURL,
		"app_id", cfg.SmartThings.AppID,
	)

	// Connect to MQTT broker (optional)
	var events pipeline.EventSink
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			mqttClient.Close()
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		events = &mqttEventSink{client: mqttClient, log: log}
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var recorder skill.Recorder
	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		recorder = influxClient
	} else {
		log.Info("InfluxDB disabled")
	}

	// Orchestration pipeline and intent router
	p := pipeline.New(pipeline.Deps{
		Tokens:    tokens,
		Directory: directory,
		Groups:    store,
		Events:    events,
		Logger:    log,
	})
	router := skill.NewRouter(p, cfg.Skill, log, recorder)

	// HTTP server for the inbound skill endpoint
	server, err := api.New(api.Deps{
		Config:  cfg.Server,
		Logger:  log,
		Skill:   router,
		Groups:  store,
		DB:      db,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("Voxgate stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses VOXGATE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("VOXGATE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// mqttEventSink adapts the infrastructure MQTT client to the pipeline's
// EventSink interface. Publish failures are logged and swallowed so a
// flaky broker never fails a voice invocation.
type mqttEventSink struct {
	client *mqtt.Client
	log    *logging.Logger
}

// SwitchChanged implements pipeline.EventSink.
func (s *mqttEventSink) SwitchChanged(deviceID, deviceName, action string) {
	err := s.client.PublishSwitchEvent(mqtt.SwitchEvent{
		DeviceID:   deviceID,
		DeviceName: deviceName,
		Action:     action,
		Timestamp:  time.Now(),
	})
	if err != nil {
		s.log.Warn("switch event publish failed", "device_id", deviceID, "error", err)
	}
}

// GroupCreated implements pipeline.EventSink.
func (s *mqttEventSink) GroupCreated(groupID, groupName string) {
	err := s.client.PublishGroupEvent(mqtt.GroupEvent{
		GroupID:   groupID,
		GroupName: groupName,
		Change:    mqtt.GroupCreated,
		Timestamp: time.Now(),
	})
	if err != nil {
		s.log.Warn("group event publish failed", "group_id", groupID, "error", err)
	}
}

// GroupDeviceAdded implements pipeline.EventSink.
func (s *mqttEventSink) GroupDeviceAdded(groupID, groupName, deviceID string) {
	err := s.client.PublishGroupEvent(mqtt.GroupEvent{
		GroupID:   groupID,
		GroupName: groupName,
		Change:    mqtt.GroupDeviceAdded,
		DeviceID:  deviceID,
		Timestamp: time.Now(),
	})
	if err != nil {
		s.log.Warn("group event publish failed", "group_id", groupID, "error", err)
	}
}
