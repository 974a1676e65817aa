package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tallerpro/taller-api/pkg/config"
)

func TestDSN_CaracteresEspecialesEnPassword(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:w/rd#1",
		DBName:   "taller",
		SSLMode:  "disable",
	}
	// url.UserPassword escapa '@', '/' y '#' pero conserva ':' en el password
	dsn := db.DSN()
	assert.Equal(t, "postgres://postgres:p%40ss:w%2Frd%231@localhost:5432/taller?sslmode=disable", dsn)
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	db := config.DBConfig{
		DatabaseURL: "postgresql://u:p@db.example.com:5432/taller?sslmode=require",
		Host:        "localhost",
		Port:        5432,
		User:        "postgres",
		DBName:      "otro",
	}
	assert.Equal(t, db.DatabaseURL, db.ConnectionString())
}

func TestConnectionString_SinDatabaseURLConstruyeDSN(t *testing.T) {
	db := config.DBConfig{
		Host:    "127.0.0.1",
		Port:    5433,
		User:    "taller",
		DBName:  "taller",
		SSLMode: "require",
	}
	assert.Equal(t, "postgres://taller:@127.0.0.1:5433/taller?sslmode=require", db.ConnectionString())
}

func TestHTTPAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", config.HTTPConfig{Host: "0.0.0.0", Port: 8080}.Addr())
	assert.Equal(t, ":3000", config.HTTPConfig{Port: 3000}.Addr())
}
