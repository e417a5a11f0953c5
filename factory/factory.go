package factory

import (
	"context"
	"database/sql"
	"log"
	"sync"

	"blockpass-backend/config"
	"blockpass-backend/logger"

	"github.com/go-redis/redis"
	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

var db sync.Once
var rd sync.Once

type Factory interface {
	DB(ctx context.Context) *sql.DB
	// Redis returns nil when no redis address is configured; callers treat
	// the cache as optional.
	Redis(ctx context.Context) *redis.Client
}

type factory struct {
	db     *sql.DB
	client *redis.Client
}

func NewFactory() Factory {
	return &factory{}
}

func (f *factory) DB(ctx context.Context) *sql.DB {
	var dbError error
	db.Do(func() {
		sqlDB, err := sql.Open("mysql", viper.GetString(config.DBURL))
		if err != nil {
			log.Fatal("Error creating connection pool: ", err.Error())
		}

		f.db = sqlDB
		dbError = err
	})

	if dbError != nil {
		logger.Fatalf(ctx, "Could not establish connection to the DB: %+v", dbError)
	}

	return f.db
}

func (f *factory) Redis(ctx context.Context) *redis.Client {
	rd.Do(func() {
		address := viper.GetString(config.RedisAddress)
		if address == "" {
			return
		}

		client := redis.NewClient(&redis.Options{
			Addr:     address,
			Password: viper.GetString(config.RedisPassword),
			DB:       viper.GetInt(config.RedisDB),
		})

		if err := client.Ping().Err(); err != nil {
			logger.Fatalf(ctx, "Could not establish connection to redis: %+v", err)
		}
		f.client = client
	})

	return f.client
}
