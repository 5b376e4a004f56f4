package repository

import (
	"SchoolQL/entity"
	"SchoolQL/internal/config"
	"SchoolQL/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
)

const (
	DriverJSON     = "json"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

// Store keeps the whole school collection as a single unit. Load always
// re-reads the persisted state and Persist replaces it entirely.
type Store interface {
	// Init creates an empty collection if nothing has been persisted yet.
	Init(ctx context.Context) error
	Load(ctx context.Context) ([]entity.School, error)
	Persist(ctx context.Context, schools []entity.School) error
	Close() error
}

// New creates a Store based on conf.Store.Driver.
//
// Supported drivers:
//
//	"json"     - single JSON file at store.path (default)
//	"mongo"    - one document in a MongoDB collection
//	"sqlite"   - one row in an SQLite state table
//	"postgres" - one JSONB row in a Postgres state table
//	"s3"       - one object in an S3 compatible bucket
//	"memory"   - in-process, ephemeral
func New(ctx context.Context, conf *config.Config, log *slog.Logger) (Store, error) {
	log = log.With(sl.Module("repository"), slog.String("driver", conf.Store.Driver))

	switch conf.Store.Driver {
	case DriverJSON, "":
		log.Debug("json file store", slog.String("path", conf.Store.Path))
		return NewJSONFile(conf.Store.Path)
	case DriverMongo:
		return NewMongoClient(conf, log)
	case DriverSQLite:
		log.Debug("sqlite store", slog.String("path", conf.SQLite.Path))
		return NewSQLite(conf.SQLite.Path)
	case DriverPostgres:
		return NewPostgres(ctx, conf.Postgres.DSN)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    conf.S3.Bucket,
			Region:    conf.S3.Region,
			Endpoint:  conf.S3.Endpoint,
			Key:       conf.S3.Key,
			PathStyle: conf.S3.PathStyle,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q (supported: json, mongo, sqlite, postgres, s3, memory)", conf.Store.Driver)
	}
}

// cloneSchools copies a collection so callers never share backing arrays.
// School holds only value fields, so a slice copy is a deep copy.
func cloneSchools(schools []entity.School) []entity.School {
	out := make([]entity.School, len(schools))
	copy(out, schools)
	return out
}
