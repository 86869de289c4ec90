// Package database opens the job board store and holds queries shared by handlers.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	// pgx as database/sql driver for gorm postgres dialector
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	// pure Go sqlite driver, registered as "sqlite"
	_ "modernc.org/sqlite"

	"jobboard-backend/internal/model"
)

// Driver selects the database engine.
type Driver string

const (
	// DriverPostgres use PostgreSQL through pgx
	DriverPostgres Driver = "postgres"
	// DriverSQLite use an embedded SQLite file through modernc.org/sqlite
	DriverSQLite Driver = "sqlite"
)

// DBinstanceStruct is the shared database handle injected into handlers.
type DBinstanceStruct struct {
	*gorm.DB
	Config *DBConfig
	sqlDB *sql.DB
	mu    sync.RWMutex
}

// DBConfig selects the driver and its connection settings, read from DB_* variables.
type DBConfig struct {
	Driver Driver `split_words:"true" default:"postgres"`

	// postgres
	Host             string `split_words:"true"`
	Port             string `split_words:"true"`
	Username         string `split_words:"true"`
	Password         string `split_words:"true"`
	Database         string `split_words:"true"`
	UseConnectionStr bool   `split_words:"true" default:"false"`
	ConnectionStr    string `split_words:"true"`

	// sqlite
	Path        string        `split_words:"true" default:"job_board.db"`
	BusyTimeout time.Duration `split_words:"true" default:"5s"`
}

// Validate reports incomplete or contradictory settings.
func (d *DBConfig) Validate() error {
	_, err := d.DSN()
	return err
}

// DSN builds the driver specific data source name.
func (d *DBConfig) DSN() (string, error) {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return "", fmt.Errorf("DB_PATH is empty")
		}
		// every pooled connection gets the pragmas, not just the first one
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
			d.Path, d.BusyTimeout.Milliseconds()), nil
	case DriverPostgres, "":
		if d.UseConnectionStr {
			if d.ConnectionStr == "" {
				return "", fmt.Errorf("DB_CONNECTION_STR is empty")
			}
			return d.ConnectionStr, nil
		}
		if d.Host == "" || d.Port == "" || d.Username == "" || d.Password == "" || d.Database == "" {
			return "", fmt.Errorf("database configuration is incomplete")
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.Username, d.Password, d.Host, d.Port, d.Database), nil
	default:
		return "", fmt.Errorf("unknown DB_DRIVER %q", d.Driver)
	}
}

func (d *DBConfig) dialector() (gorm.Dialector, error) {
	dsn, err := d.DSN()
	if err != nil {
		return nil, err
	}
	if d.Driver != DriverSQLite {
		return postgres.Open(dsn), nil
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return sqlite.New(sqlite.Config{Conn: conn}), nil
}

// NewDBInstance opens the configured database and migrates the schema.
func NewDBInstance(config *DBConfig) (*DBinstanceStruct, error) {
	dialector, err := config.dialector()
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if gin.IsDebugging() {
		gdb = gdb.Debug()
	}

	instance := &DBinstanceStruct{
		DB:     gdb,
		Config: config,
	}
	if err := instance.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Printf("Connected to %s database", config.Driver)

	return instance, nil
}

// Raw returns the pooled *sql.DB behind gorm, looked up once.
func (d *DBinstanceStruct) Raw() (*sql.DB, error) {
	if d == nil {
		return nil, errors.New("database instance is nil")
	}

	d.mu.RLock()
	if d.sqlDB != nil {
		raw := d.sqlDB
		d.mu.RUnlock()
		return raw, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sqlDB != nil {
		return d.sqlDB, nil
	}
	if d.DB == nil {
		return nil, errors.New("database not opened")
	}
	raw, err := d.DB.DB()
	if err != nil {
		return nil, err
	}
	d.sqlDB = raw
	return raw, nil
}

// Migrate database
func (d *DBinstanceStruct) Migrate() error {
	return d.AutoMigrate(model.MigrateAble...)
}

// poolWarning is a pool condition worth surfacing in the health report, checked in order.
type poolWarning struct {
	hit     func(sql.DBStats) bool
	message string
}

var poolWarnings = []poolWarning{
	{func(s sql.DBStats) bool { return s.MaxLifetimeClosed > int64(s.OpenConnections)/2 }, "connections are recycled by max lifetime faster than they are reused"},
	{func(s sql.DBStats) bool { return s.MaxIdleClosed > int64(s.OpenConnections)/2 }, "idle connections are closed faster than they are reused"},
	{func(s sql.DBStats) bool { return s.WaitCount > 1000 }, "requests are waiting for free connections"},
	{func(s sql.DBStats) bool { return s.OpenConnections > 40 }, "connection pool under heavy load"},
}

// Health pings the database and reports pool statistics and row counts per table.
// A "status" of "down" means the ping failed.
func (d *DBinstanceStruct) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := map[string]string{"driver": string(d.driver())}

	conn, err := d.Raw()
	if err == nil {
		err = conn.PingContext(ctx)
	}
	if err != nil {
		log.Printf("%s database unreachable: %v", d.driver(), err)
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}
	stats["status"] = "up"

	pool := conn.Stats()
	stats["open_connections"] = strconv.Itoa(pool.OpenConnections)
	stats["in_use"] = strconv.Itoa(pool.InUse)
	stats["idle"] = strconv.Itoa(pool.Idle)
	stats["wait_count"] = strconv.FormatInt(pool.WaitCount, 10)
	stats["wait_duration"] = pool.WaitDuration.String()

	stats["message"] = "ok"
	for _, w := range poolWarnings {
		if w.hit(pool) {
			stats["message"] = w.message
			break
		}
	}

	for _, m := range model.MigrateAble {
		var rows int64
		stmt := &gorm.Statement{DB: d.DB}
		if err := stmt.Parse(m); err != nil {
			continue
		}
		if err := d.WithContext(ctx).Model(m).Count(&rows).Error; err != nil {
			stats[stmt.Schema.Table+"_rows"] = "unknown"
			continue
		}
		stats[stmt.Schema.Table+"_rows"] = strconv.FormatInt(rows, 10)
	}

	return stats
}

func (d *DBinstanceStruct) driver() Driver {
	if d.Config == nil || d.Config.Driver == "" {
		return DriverPostgres
	}
	return d.Config.Driver
}

// Close closes the database connection.
func (d *DBinstanceStruct) Close() error {
	conn, err := d.Raw()
	if err != nil {
		return err
	}
	log.Printf("Disconnected from %s database", d.driver())
	return conn.Close()
}
