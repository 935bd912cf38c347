package sqldb

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/vertex-mlops/vertex-featurestore-go-sdk/constants"
	_ "modernc.org/sqlite"
)

const postgresDriverName = "featurestore-postgres"

func init() {
	sql.Register(postgresDriverName, &PostgresDriver{})
}

// PostgresDriver sets statement_timeout = 500ms on every new connection.
type PostgresDriver struct {
	driver pq.Driver
}

func (d PostgresDriver) Open(name string) (driver.Conn, error) {
	conn, err := d.driver.Open(name)
	if err != nil {
		return nil, err
	}

	if stmt, err := conn.Prepare("set statement_timeout = 500"); err == nil {
		stmt.Exec(nil)
		stmt.Close()
	}
	return conn, err
}

type DB struct {
	DSN            string
	Name           string
	DatasourceType string
	DB             *sql.DB
	RegisterTime   time.Time
}

var dbInstances sync.Map

func DriverName(datasourceType string) (string, error) {
	switch datasourceType {
	case constants.Datasource_Type_Postgres:
		return postgresDriverName, nil
	case constants.Datasource_Type_MySQL:
		return "mysql", nil
	case constants.Datasource_Type_SQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("not support sql datasource type: %s", datasourceType)
	}
}

func GetDB(name string) (*DB, error) {
	value, ok := dbInstances.Load(name)
	if !ok {
		return nil, fmt.Errorf("DB not found, name:%s", name)
	}

	db, ok := value.(*DB)
	if !ok {
		return nil, fmt.Errorf("DB not found, name:%s", name)
	}

	return db, nil
}

func (m *DB) Init() error {
	driverName, err := DriverName(m.DatasourceType)
	if err != nil {
		return err
	}
	db, err := sql.Open(driverName, m.DSN)
	if err != nil {
		return err
	}

	db.SetConnMaxLifetime(60 * time.Minute)
	if m.DatasourceType == constants.Datasource_Type_SQLite {
		// one connection, an in-memory database lives and dies with it
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxIdleConns(50)
		db.SetMaxOpenConns(100)
	}

	m.DB = db
	return m.DB.Ping()
}

// RegisterDB opens and registers a database under name. Registering an existing name
// is a no-op.
func RegisterDB(name, datasourceType, dsn string) error {
	if _, ok := dbInstances.Load(name); ok {
		return nil
	}
	m := &DB{
		DSN:            dsn,
		Name:           name,
		DatasourceType: datasourceType,
		RegisterTime:   time.Now(),
	}
	if err := m.Init(); err != nil {
		if m.DB != nil {
			m.DB.Close()
		}
		return fmt.Errorf("register db %s: %w", name, err)
	}
	dbInstances.Store(name, m)

	return nil
}

func RemoveDB(name string) {
	value, ok := dbInstances.LoadAndDelete(name)
	if !ok {
		return
	}
	if db, ok := value.(*DB); ok && db.DB != nil {
		db.DB.Close()
	}
}
