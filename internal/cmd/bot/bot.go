// Package bot parses bot command flags and composes the intake runtime.
package bot

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	entrypoint "github.com/drivegate/drivegate/internal/platform/cmd"
	server "github.com/drivegate/drivegate/internal/services/intake/app"
)

// defaultTeams is used when no team list is configured.
var defaultTeams = []string{"الفرقة الأولى", "الفرقة الثانية", "الفرقة الثالثة"}

// Config holds bot command configuration.
type Config struct {
	BotToken        string            `env:"DRIVEGATE_BOT_TOKEN"`
	DBPath          string            `env:"DRIVEGATE_DB_PATH"            envDefault:"data/drivegate.db"`
	CredentialsPath string            `env:"DRIVEGATE_GOOGLE_CREDENTIALS" envDefault:"credentials.json"`
	DelegatedUser   string            `env:"DRIVEGATE_GOOGLE_DELEGATED_USER"`
	Lang            string            `env:"DRIVEGATE_LANG"               envDefault:"ar"`
	Teams           []string          `env:"DRIVEGATE_TEAMS"              envSeparator:";"`
	TeamFolders     map[string]string `env:"DRIVEGATE_TEAM_FOLDERS"       envSeparator:";"`
	DefaultFolder   string            `env:"DRIVEGATE_DEFAULT_FOLDER"`
	AdminIDs        []int64           `env:"DRIVEGATE_ADMIN_IDS"          envSeparator:","`
	FilePanelLimit  int               `env:"DRIVEGATE_FILE_PANEL_LIMIT"   envDefault:"5"`
	HealthAddr      string            `env:"DRIVEGATE_HEALTH_ADDR"`
	ShutdownTimeout time.Duration     `env:"DRIVEGATE_SHUTDOWN_TIMEOUT"   envDefault:"5s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.BotToken, "bot-token", cfg.BotToken, "Telegram bot API token")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.CredentialsPath, "google-credentials", cfg.CredentialsPath, "Google service account credentials file")
	fs.StringVar(&cfg.DelegatedUser, "google-delegated-user", cfg.DelegatedUser, "account to impersonate via domain-wide delegation")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "reply language tag")
	fs.StringVar(&cfg.DefaultFolder, "default-folder", cfg.DefaultFolder, "fallback Drive folder id")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "health endpoint listen address (empty disables it)")
	fs.IntVar(&cfg.FilePanelLimit, "file-panel-limit", cfg.FilePanelLimit, "maximum files shown in the folder panel")

	teams := fs.String("teams", "", "semicolon-separated team names")
	admins := fs.String("admin-ids", "", "comma-separated admin Telegram ids")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	if *teams != "" {
		cfg.Teams = splitList(*teams, ";")
	}
	if *admins != "" {
		ids, err := parseIDs(*admins)
		if err != nil {
			return Config{}, err
		}
		cfg.AdminIDs = ids
	}
	if len(cfg.Teams) == 0 {
		cfg.Teams = defaultTeams
	}
	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("bot token is required (set DRIVEGATE_BOT_TOKEN or -bot-token)")
	}
	return cfg, nil
}

// Run starts the intake bot runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBot, func(context.Context) error {
		if err := server.Run(ctx, server.Config{
			BotToken:        cfg.BotToken,
			DBPath:          cfg.DBPath,
			CredentialsPath: cfg.CredentialsPath,
			DelegatedUser:   cfg.DelegatedUser,
			Lang:            cfg.Lang,
			Teams:           cfg.Teams,
			TeamFolders:     cfg.TeamFolders,
			DefaultFolder:   cfg.DefaultFolder,
			AdminIDs:        cfg.AdminIDs,
			FilePanelLimit:  cfg.FilePanelLimit,
			HealthAddr:      cfg.HealthAddr,
			ShutdownTimeout: cfg.ShutdownTimeout,
		}); err != nil {
			return fmt.Errorf("serve bot: %w", err)
		}
		return nil
	})
}

func splitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(raw, ",") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
