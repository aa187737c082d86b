package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Поддерживаемые драйверы хранилища списка покупок.
const (
	DriverJSONFile = "jsonfile"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultConfigPath = "./config.yaml"
	defaultListenAddr = ":8081"
	defaultJSONPath   = "db/shopping_list.json"
	defaultSQLitePath = "db/shopping_list.db"
)

type Config struct {
	ListenAddr  string `yaml:"listen_addr" json:"listen_addr"`
	StoreDriver string `yaml:"store_driver" json:"store_driver"`
	DBPath      string `yaml:"db_path" json:"db_path"`
	DBDSN       string `yaml:"db_dsn" json:"-"`
}

// Default возвращает конфигурацию, совпадающую с исходным поведением сервиса:
// JSON-файл db/shopping_list.json и порт 8081 на всех интерфейсах.
func Default() Config {
	return Config{
		ListenAddr:  defaultListenAddr,
		StoreDriver: DriverJSONFile,
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствие файла по умолчанию не ошибка: сервис стартует с Default().
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || strings.TrimSpace(path) == "" {
		path, explicit = defaultConfigPath, false
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		c.StoreDriver = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.DBDSN = v
	}

	if err := c.Normalize(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Normalize проставляет зависящие от драйвера значения по умолчанию и проверяет конфигурацию.
func (c *Config) Normalize() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if c.StoreDriver == "" {
		c.StoreDriver = DriverJSONFile
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = defaultListenAddr
	}

	switch c.StoreDriver {
	case DriverJSONFile:
		c.DBPath = getOr(c.DBPath, defaultJSONPath)
		if isSQLiteFile(c.DBPath) {
			return fmt.Errorf("db_path %q looks like a sqlite database, but store driver is %q", c.DBPath, c.StoreDriver)
		}
	case DriverSQLite:
		c.DBPath = getOr(c.DBPath, defaultSQLitePath)
		if isJSONFile(c.DBPath) {
			return fmt.Errorf("db_path %q is a JSON file, but store driver is %q; set DB_PATH together with STORE_DRIVER", c.DBPath, c.StoreDriver)
		}
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("db_dsn is required for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	return nil
}

func isJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func isSQLiteFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func getOr(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}

	return def
}
