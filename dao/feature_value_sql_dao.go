package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/datasource/sqldb"
)

// FeatureValueSQLDao stores feature values in a long table keyed by
// (entity_type, entity_id, feature_id).
type FeatureValueSQLDao struct {
	UnimplementedFeatureValueDao
	db     *sql.DB
	table  string
	flavor sqlbuilder.Flavor
	// rows older than ttl are not returned, 0 keeps them forever
	ttl time.Duration
	now func() time.Time
}

func NewFeatureValueSQLDao(config DaoConfig) (*FeatureValueSQLDao, error) {
	db, err := sqldb.GetDB(config.SQLName)
	if err != nil {
		return nil, err
	}
	flavor, err := sqlFlavor(db.DatasourceType)
	if err != nil {
		return nil, err
	}
	table := config.SQLTableName
	if table == "" {
		table = "feature_values"
	}

	return &FeatureValueSQLDao{
		db:     db.DB,
		table:  table,
		flavor: flavor,
		ttl:    config.TTL,
		now:    time.Now,
	}, nil
}

func sqlFlavor(datasourceType string) (sqlbuilder.Flavor, error) {
	switch datasourceType {
	case constants.Datasource_Type_MySQL:
		return sqlbuilder.MySQL, nil
	case constants.Datasource_Type_Postgres:
		return sqlbuilder.PostgreSQL, nil
	case constants.Datasource_Type_SQLite:
		return sqlbuilder.SQLite, nil
	}

	return sqlbuilder.DefaultFlavor, fmt.Errorf("not support sql datasource type: %s", datasourceType)
}

// CreateTable creates the value table if it does not exist.
func (d *FeatureValueSQLDao) CreateTable(ctx context.Context) error {
	ctb := sqlbuilder.NewCreateTableBuilder()
	ctb.CreateTable(d.table).IfNotExists()
	ctb.Define("entity_type", "VARCHAR(128)", "NOT NULL")
	ctb.Define("entity_id", "VARCHAR(128)", "NOT NULL")
	ctb.Define("feature_id", "VARCHAR(128)", "NOT NULL")
	ctb.Define("value", "DOUBLE PRECISION", "NOT NULL")
	ctb.Define("update_time", "BIGINT", "NOT NULL")
	ctb.Define("PRIMARY KEY", "(entity_type, entity_id, feature_id)")

	query, args := ctb.BuildWithFlavor(d.flavor)
	_, err := d.db.ExecContext(ctx, query, args...)
	return err
}

func (d *FeatureValueSQLDao) GetFeatureValues(ctx context.Context, entityType, entityId string, featureIds []string) (map[string]float64, error) {
	result := make(map[string]float64, len(featureIds))
	if len(featureIds) == 0 {
		return result, nil
	}

	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("feature_id", "value").From(d.table).Where(
		sb.Equal("entity_type", entityType),
		sb.Equal("entity_id", entityId),
		sb.In("feature_id", toInterfaces(featureIds)...),
	)
	if d.ttl > 0 {
		sb.Where(sb.GreaterEqualThan("update_time", d.now().Add(-d.ttl).Unix()))
	}
	query, args := sb.BuildWithFlavor(d.flavor)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			featureId string
			value     float64
		)
		if err := rows.Scan(&featureId, &value); err != nil {
			return nil, err
		}
		result[featureId] = value
	}

	return result, rows.Err()
}

func (d *FeatureValueSQLDao) PutFeatureValues(ctx context.Context, entityType, entityId string, values map[string]float64) (err error) {
	if len(values) == 0 {
		return nil
	}

	featureIds := make([]string, 0, len(values))
	for featureId := range values {
		featureIds = append(featureIds, featureId)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	db := sqlbuilder.NewDeleteBuilder()
	db.DeleteFrom(d.table).Where(
		db.Equal("entity_type", entityType),
		db.Equal("entity_id", entityId),
		db.In("feature_id", toInterfaces(featureIds)...),
	)
	query, args := db.BuildWithFlavor(d.flavor)
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	updateTime := d.now().Unix()
	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertInto(d.table).Cols("entity_type", "entity_id", "feature_id", "value", "update_time")
	for _, featureId := range featureIds {
		ib.Values(entityType, entityId, featureId, values[featureId], updateTime)
	}
	query, args = ib.BuildWithFlavor(d.flavor)
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

func toInterfaces(strs []string) []interface{} {
	result := make([]interface{}, len(strs))
	for i, s := range strs {
		result[i] = s
	}
	return result
}
