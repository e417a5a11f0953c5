package config

import (
	"github.com/spf13/viper"
)

const (
	// DBDriver selects the registry/issuer backing store: "mysql" or
	// "memory".
	DBDriver = "database.driver"
	DBURL    = "database.mysql"

	Port   = "server.port"
	Secret = "server.secret"

	RedisAddress  = "redis.address"
	RedisPassword = "redis.password"
	RedisDB       = "redis.db"
	EventCacheTTL = "redis.event_cache_ttl"

	VaultAddress    = "vault.address"
	VaultToken      = "vault.token"
	VaultUnSealKey  = "vault.unseal_key"
	VaultSecretPath = "vault.secret_path"
)

func init() {
	viper.AutomaticEnv()
	viper.SetDefault(Port, ":9000")
	viper.SetDefault(DBDriver, "mysql")
	viper.SetDefault(EventCacheTTL, "5m")
}
