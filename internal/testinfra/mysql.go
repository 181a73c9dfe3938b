// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

//go:build integration

package testinfra

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/deskintel/internal/database"
)

const (
	// DefaultMySQLImage is the MySQL image used when none is given.
	DefaultMySQLImage = "mysql:8.4"

	mysqlPort = "3306/tcp"

	defaultMySQLUser     = "deskintel"
	defaultMySQLPassword = "deskintel-test"
	defaultMySQLDatabase = "analytics"
)

// MySQLContainer is a running MySQL server holding the analytics marts.
type MySQLContainer struct {
	testcontainers.Container

	Addr     string // host:port reachable from the test process
	User     string
	Password string
	Database string
}

type mysqlConfig struct {
	image        string
	user         string
	password     string
	database     string
	startTimeout time.Duration
}

// MySQLOption configures NewMySQLContainer.
type MySQLOption func(*mysqlConfig)

// WithMySQLImage overrides the image tag.
func WithMySQLImage(image string) MySQLOption {
	return func(c *mysqlConfig) { c.image = image }
}

// WithMySQLCredentials sets the application user, password and schema.
func WithMySQLCredentials(user, password, database string) MySQLOption {
	return func(c *mysqlConfig) {
		c.user = user
		c.password = password
		c.database = database
	}
}

// WithStartTimeout bounds how long to wait for the server to accept
// connections.
func WithStartTimeout(d time.Duration) MySQLOption {
	return func(c *mysqlConfig) { c.startTimeout = d }
}

// NewMySQLContainer starts a MySQL server and waits until it accepts
// connections.
func NewMySQLContainer(ctx context.Context, opts ...MySQLOption) (*MySQLContainer, error) {
	cfg := &mysqlConfig{
		image:        DefaultMySQLImage,
		user:         defaultMySQLUser,
		password:     defaultMySQLPassword,
		database:     defaultMySQLDatabase,
		startTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{mysqlPort},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": cfg.password + "-root",
			"MYSQL_DATABASE":      cfg.database,
			"MYSQL_USER":          cfg.user,
			"MYSQL_PASSWORD":      cfg.password,
		},
		// The entrypoint starts a temporary server first; the second
		// "ready for connections" line is the real one.
		WaitingFor: wait.ForAll(
			wait.ForLog("ready for connections").WithOccurrence(2),
			wait.ForListeningPort(mysqlPort),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start mysql container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, mysqlPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &MySQLContainer{
		Container: container,
		Addr:      net.JoinHostPort(host, port.Port()),
		User:      cfg.user,
		Password:  cfg.password,
		Database:  cfg.database,
	}, nil
}

// Credentials returns the connection settings for the application user.
func (c *MySQLContainer) Credentials() database.Credentials {
	return database.Credentials{
		User:     c.User,
		Password: c.Password,
		Host:     c.Addr,
		Name:     c.Database,
	}
}

// martSchema matches the two marts the reports read. The numeric columns
// are DECIMAL so sums come back as []byte, the way production does.
var martSchema = []string{
	`CREATE TABLE IF NOT EXISTS growth_funnel_mart (
		company_size VARCHAR(64),
		total_leads INT,
		total_customers INT,
		total_revenue DECIMAL(14,2)
	)`,
	`CREATE TABLE IF NOT EXISTS office_utilization_mart (
		day_of_week INT,
		company_size VARCHAR(64),
		total_desk_bookings INT,
		total_room_bookings INT
	)`,
}

// Seed creates both marts and runs the given statements after them.
func (c *MySQLContainer) Seed(ctx context.Context, stmts ...string) error {
	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s)/%s", c.User, c.Password, c.Addr, c.Database))
	if err != nil {
		return fmt.Errorf("failed to open mysql: %w", err)
	}
	defer db.Close()

	for _, stmt := range append(append([]string{}, martSchema...), stmts...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed statement failed: %w", err)
		}
	}
	return nil
}
