// Package postgres opens the read and write sqlx pools.
package postgres

//nolint:revive
import (
	"errors"
	"net"
	"net/url"
	"time"

	"corpbooking/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits traffic between a read and a write pool. Both may point
// to the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect("read", URL(pg.Read, pg.Prefix).String(), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", URL(pg.Write, pg.Prefix).String(), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// Close closes both pools. Read and Write may share one pool in tests.
func (c *Connection) Close() error {
	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

// URL renders node as a postgres connection URL, prefixing the database name.
// Credentials are escaped.
func URL(node config.PostgresNode, prefix string) *url.URL {
	query := url.Values{}
	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	return &url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + prefix + node.Name,
		RawQuery: query.Encode(),
	}
}

// connect retries up to maxRetry times and returns nil when every attempt failed.
func connect(name, dsn string, maxRetry, waitSeconds int) *sqlx.DB {
	logged := log.With().Str("name", name).Str("dsn", redact(dsn)).Logger()

	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logged.Info().Msg("Connected to database")

			return db
		}

		logged.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logged.Error().Int("attempts", max(maxRetry, 1)).Msg("Giving up on database")

	return nil
}

func redact(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "invalid"
	}

	return parsed.Redacted()
}
