// Command migrator applies the storefront schema to a PostgreSQL slot store.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/pflag"
)

const (
	dsnFlag            = "dsn"
	migrationsPathFlag = "migrations-path"
	downFlag           = "down"

	dsnEnv = "STOREFRONT_STORAGE_POSTGRES_DSN"
)

type flags struct {
	dsn            string
	migrationsPath string
	down           bool
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	f := parseFlags()
	validateFlags(f)
	migrateSchema(f)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.With("op", "migrator"),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func parseFlags() flags {
	var f flags
	pflag.StringVarP(&f.dsn, dsnFlag, "s", os.Getenv(dsnEnv), "postgres dsn, defaults to $"+dsnEnv)
	pflag.StringVarP(&f.migrationsPath, migrationsPathFlag, "m", "./migrations", "migrations directory")
	pflag.BoolVar(&f.down, downFlag, false, "roll every migration back")
	pflag.Parse()
	return f
}

func validateFlags(f flags) {
	var errs []error

	if f.dsn == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", dsnFlag))
	}

	if f.migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationsPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

// databaseURL turns a postgres URL or a key=value dsn into a pgx5:// url
// understood by the migrate driver.
func databaseURL(dsn string) (string, error) {
	if strings.Contains(dsn, "://") {
		for _, scheme := range []string{"postgres://", "postgresql://"} {
			dsn = strings.TrimPrefix(dsn, scheme)
		}
		return "pgx5://" + dsn, nil
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return "", err
	}

	u := url.URL{
		Scheme: "pgx5",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port))),
		Path:   "/" + cfg.Database,
	}
	switch {
	case cfg.User != "" && cfg.Password != "":
		u.User = url.UserPassword(cfg.User, cfg.Password)
	case cfg.User != "":
		u.User = url.User(cfg.User)
	}
	if cfg.TLSConfig == nil {
		u.RawQuery = "sslmode=disable"
	}
	return u.String(), nil
}

func migrateSchema(f flags) {
	dbURL, err := databaseURL(f.dsn)
	if err != nil {
		slog.Error("invalid dsn", "err", err)
		fallDown()
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", f.migrationsPath),
		dbURL,
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	defer m.Close()

	m.Log = NewMigrationLogger()

	step, direction := m.Up, "up"
	if f.down {
		step, direction = m.Down, "down"
	}

	if err := step(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "direction", direction, "err", err)
		fallDown()
	}
	m.Log.Printf("migrations applied %s", direction)
}

func fallDown() {
	os.Exit(2)
}
