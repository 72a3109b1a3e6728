package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// SACCO policy constants. ShareValue converts share counts to currency
	// coverage; PenaltyAmount is fixed per missed payment; DueDay is the
	// monthly payment deadline and PenaltyDay the day the sweep applies.
	ShareValue    int64
	PenaltyAmount float64
	DueDay        int
	PenaltyDay    int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "sacco"),
		MySQLUser: getenv("MYSQL_USER", "sacco"),
		MySQLPass: getenv("MYSQL_PASS", "sacco"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		ShareValue:    int64(getenvInt("SHARE_VALUE", 1000)),
		PenaltyAmount: float64(getenvInt("PENALTY_AMOUNT", 500)),
		DueDay:        getenvInt("PAYMENT_DUE_DAY", 5),
		PenaltyDay:    getenvInt("PENALTY_APPLY_DAY", 6),
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.ShareValue <= 0 {
		return errors.New("SHARE_VALUE must be positive")
	}
	if c.PenaltyAmount <= 0 {
		return errors.New("PENALTY_AMOUNT must be positive")
	}
	if c.DueDay < 1 || c.DueDay > 28 || c.PenaltyDay < 1 || c.PenaltyDay > 28 {
		return errors.New("PAYMENT_DUE_DAY and PENALTY_APPLY_DAY must fall within every month")
	}
	if c.PenaltyDay <= c.DueDay {
		return errors.New("PENALTY_APPLY_DAY must come after PAYMENT_DUE_DAY")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
