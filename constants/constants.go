package constants

import "time"

type FSType int

const (
	FS_INT32 FSType = iota + 1 // int32
	FS_INT64                   // int64
	FS_FLOAT
	FS_DOUBLE
	FS_STRING
	FS_BOOLEAN
	FS_TIMESTAMP
)

func (t FSType) String() string {
	switch t {
	case FS_INT32:
		return "INT32"
	case FS_INT64:
		return "INT64"
	case FS_FLOAT:
		return "FLOAT"
	case FS_DOUBLE:
		return "DOUBLE"
	case FS_STRING:
		return "STRING"
	case FS_BOOLEAN:
		return "BOOLEAN"
	case FS_TIMESTAMP:
		return "TIMESTAMP"
	default:
		return "UNKNOWN"
	}
}

// online cache datasource types
const (
	Datasource_Type_Redis      = "redis"
	Datasource_Type_MySQL      = "mysql"
	Datasource_Type_Postgres   = "postgres"
	Datasource_Type_SQLite     = "sqlite"
	Datasource_Type_TableStore = "tablestore"
)

const (
	// Online_Serving_Node_Count is the fixed node count of every created featurestore.
	Online_Serving_Node_Count int32 = 3

	// Snapshot_Analysis_Interval is the monitoring interval of entity types and features.
	Snapshot_Analysis_Interval = time.Hour

	Feature_Value_Type = FS_DOUBLE

	Ingestion_Worker_Count int32 = 5
)
