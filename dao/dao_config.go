package dao

import "time"

type DaoConfig struct {
	DatasourceType string

	// redis
	RedisName string
	KeyPrefix string
	TTL       time.Duration

	// mysql, postgres, sqlite
	SQLName      string
	SQLTableName string

	// tablestore
	TableStoreName      string
	TableStoreTableName string
	PrimaryKeyField     string
}
