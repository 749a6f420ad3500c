package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries the environment supplied settings. The encryption secret
// and salt are external inputs, never generated here.
type Config struct {
	Env            string
	DBDriver       string // sqlite | postgres
	DBDSN          string
	RedisAddr      string
	KafkaBrokers   string
	Topic          string
	EncryptionType string
	Secret         string
	SaltB64        string
	Compression    string
}

func LoadConfig() *Config {
	return &Config{
		Env:            getEnv("ENV", "dev"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", ".tmp/doxly.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", "localhost:9092"),
		Topic:          getEnv("NOTIFICATION_TOPIC", "doxly.notifications"),
		EncryptionType: getEnv("ENCRYPTION_TYPE", "aes256gcm"),
		Secret:         os.Getenv("ENCRYPTION_SECRET"),
		SaltB64:        os.Getenv("ENCRYPTION_SALT"),
		Compression:    getEnv("COMPRESSION", "gzip"),
	}
}

func GetDb(cnf *Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cnf.DBDriver {
	case "postgres":
		dialector = postgres.Open(cnf.DBDSN)
	default:
		dialector = sqlite.Open(cnf.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
