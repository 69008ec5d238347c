// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the stweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// may be validated again in the relevant end-component such as a
// UseCase instance.
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/sitetrack/pkg/adapter/auth/jwtauth"
	"github.com/momeni/sitetrack/pkg/adapter/config/settings"
	"github.com/momeni/sitetrack/pkg/adapter/config/vers"
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres"
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres/settler"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/middleware"
	"github.com/momeni/sitetrack/pkg/core/log"
	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/momeni/sitetrack/pkg/core/repo"
	"github.com/momeni/sitetrack/pkg/core/usecase/dbinituc"
	"github.com/momeni/sitetrack/pkg/core/usecase/trackinguc"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Environment variables which override the configuration file.
const (
	EnvDatabaseURL = "STWEB_DATABASE_URL"
	EnvJWTSecret   = "STWEB_JWT_SECRET"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration format can be kept intact while other
// layers can change freely.
type Config struct {
	Database  Database  `yaml:"database"`  // PostgreSQL connection settings
	Gin       Gin       `yaml:"gin"`       // Gin-Gonic instantiation settings
	Logging   Logging   `yaml:"logging"`   // default slog handler settings
	Auth      Auth      `yaml:"auth"`      // bearer tokens settings
	RateLimit RateLimit `yaml:"ratelimit"` // pings submission rate limit
	Usecases  Usecases  `yaml:"usecases"`  // supported use cases settings

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their default values.
type Gin struct {
	Logger   *bool  `yaml:"logger"`   // Whether to use gin.Logger()
	Recovery *bool  `yaml:"recovery"` // Whether to use gin.Recovery()
	Address  string `yaml:"address"`  // host:port to listen on
}

// DefaultAddress is the default listening address of the web server.
const DefaultAddress = ":8000"

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Logging contains the default slog handler settings.
type Logging struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Setup installs the default slog handler, writing to w.
func (l Logging) Setup(w io.Writer) error {
	return log.Setup(w, l.Level, l.Format)
}

// Auth contains the bearer tokens settings. The Secret may be given
// by the STWEB_JWT_SECRET environment variable instead.
type Auth struct {
	Secret   string             `yaml:"secret" validate:"required,min=32"`
	Issuer   string             `yaml:"issuer"`
	TokenTTL *settings.Duration `yaml:"token-ttl"`
}

// NewAuthenticator instantiates the bearer tokens Authenticator.
func (a Auth) NewAuthenticator() (*jwtauth.Authenticator, error) {
	var opts []jwtauth.Option
	if a.Issuer != "" {
		opts = append(opts, jwtauth.WithIssuer(a.Issuer))
	}
	if a.TokenTTL != nil {
		opts = append(opts, jwtauth.WithTTL(time.Duration(*a.TokenTTL)))
	}
	return jwtauth.New([]byte(a.Secret), opts...)
}

// RateLimit contains the per-caller pings submission rate limit.
// A zero PingsPerSecond disables the rate limiting.
type RateLimit struct {
	PingsPerSecond *float64 `yaml:"pings-per-second" validate:"omitempty,gte=0"`
	Burst          *int     `yaml:"burst" validate:"omitempty,gte=1"`
}

// Default rate limit settings.
const (
	DefaultPingsPerSecond = 5.0
	DefaultBurst          = 10
)

// NewRateLimiter instantiates the rate limiter, or returns nil if it
// is disabled.
func (r RateLimit) NewRateLimiter() *middleware.RateLimiter {
	if *r.PingsPerSecond == 0 {
		return nil
	}
	return middleware.NewRateLimiter(*r.PingsPerSecond, *r.Burst)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Tracking Tracking `yaml:"tracking"` // tracking use cases settings
}

// Tracking contains the configuration settings for the tracking use
// cases. A nil value indicates that the setting is left uninitialized,
// so the use cases layer may select a default value.
type Tracking struct {
	// ReportLimitDefault is the number of rows which are returned by
	// a report query when no limit is asked.
	ReportLimitDefault *int `yaml:"report-limit-default"`
	// ReportLimitMaximum is the inclusive maximum acceptable limit of
	// a report query, also bounding the ReportLimitDefault setting.
	ReportLimitMaximum *int `yaml:"report-limit-maximum" validate:"omitempty,gte=1"`
	// TimeZone is the IANA name of the time zone which is used for
	// converting the report calendar dates to time instants.
	TimeZone string `yaml:"time-zone"`

	loc *time.Location
}

// NewUseCase instantiates a new tracking use case based on the settings
// in the `t` struct.
func (t Tracking) NewUseCase(
	p repo.Pool, s repo.Sites, r repo.Tracking,
) (*trackinguc.UseCase, error) {
	opts := make([]trackinguc.Option, 0, 2)
	if t.ReportLimitMaximum != nil || t.ReportLimitDefault != nil {
		maximum := trackinguc.MaximumReportLimit
		if t.ReportLimitMaximum != nil {
			maximum = *t.ReportLimitMaximum
		}
		def := min(trackinguc.DefaultReportLimit, maximum)
		if t.ReportLimitDefault != nil {
			def = *t.ReportLimitDefault
		}
		opts = append(opts, trackinguc.WithReportLimits(def, maximum))
	}
	if t.loc != nil {
		opts = append(opts, trackinguc.WithLocation(t.loc))
	}
	return trackinguc.New(p, s, r, opts...)
}

// NewTrackingUseCase instantiates a new tracking use case based on the
// settings in the c struct.
func (c *Config) NewTrackingUseCase(
	p repo.Pool, s repo.Sites, r repo.Tracking,
) (*trackinguc.UseCase, error) {
	return c.Usecases.Tracking.NewUseCase(p, s, r)
}

// NewDBInitUseCase instantiates a new database initialization use case
// which uses the c struct as its settings.
func (c *Config) NewDBInitUseCase() *dbinituc.UseCase {
	return dbinituc.New(c)
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (dbinituc.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// SchemaInitializer creates a repo.SchemaInitializer instance which
// wraps the given transaction argument and can be used to initialize
// the database with development or production suitable data.
func (c *Config) SchemaInitializer(tx repo.Tx) repo.SchemaInitializer {
	return settler.New(tx)
}

// RenewPasswords generates new secure passwords for the given roles,
// records them in the .pgpass.new file, and calls the change function
// in order to update them in the database too. See the
// Database.RenewPasswords method.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// SchemaVersion returns the semantic version of the database schema
// which its connection information are kept by this Config struct.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// Load reads the path configuration file and parses it using Parse.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. The STWEB_DATABASE_URL and STWEB_JWT_SECRET environment
// variables (if set) override their corresponding settings.
// Thereafter, loaded Config will be validated and normalized in order
// to ensure that provided settings are acceptable. The configuration
// file and database schema versions must match with the latest known
// versions.
func Parse(data []byte) (*Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err := v.Validate(Major, Minor, postgres.Version); err != nil {
		return nil, fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if u, ok := os.LookupEnv(EnvDatabaseURL); ok {
		c.Database.URL = u
	}
	if s, ok := os.LookupEnv(EnvJWTSecret); ok {
		c.Auth.Secret = s
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	if c.Gin.Address == "" {
		c.Gin.Address = DefaultAddress
	}
	settings.Default(&c.RateLimit.PingsPerSecond, DefaultPingsPerSecond)
	settings.Default(&c.RateLimit.Burst, DefaultBurst)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	t := &c.Usecases.Tracking
	one, maxb := 1, trackinguc.MaximumReportLimit
	if t.ReportLimitMaximum != nil {
		maxb = *t.ReportLimitMaximum
	}
	if err := settings.VerifyRange(
		&t.ReportLimitDefault, &one, &maxb,
	); err != nil {
		return fmt.Errorf("verifying report-limit-default: %w", err)
	}
	if t.TimeZone != "" {
		loc, err := time.LoadLocation(t.TimeZone)
		if err != nil {
			return fmt.Errorf("loading %q time zone: %w", t.TimeZone, err)
		}
		t.loc = loc
	}
	return nil
}
