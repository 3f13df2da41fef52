// Package mysql loads files and media entities straight from a Drupal MySQL
// database so the resolver can run against a live site.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"

	"github.com/goliatone/go-picturegroup/pkg/entity"
)

// MediaEntityType is the entity type of media items.
const MediaEntityType = "media"

var identifier = regexp.MustCompile(`^[a-z][a-z0-9_]{0,54}$`)

// ErrInvalidIdentifier is returned for field names that cannot be used as
// table or column names.
var ErrInvalidIdentifier = errors.New("mysql: invalid identifier")

// Store implements entity.FileLoader and entity.MediaLoader over the
// file_managed, media_field_data and media__<field> tables.
type Store struct {
	db     *sql.DB
	fields entity.FieldMetadataProvider
}

var (
	_ entity.FileLoader  = (*Store)(nil)
	_ entity.MediaLoader = (*Store)(nil)
)

// New wraps an open database. fields supplies the ordered definitions of each
// media bundle.
func New(db *sql.DB, fields entity.FieldMetadataProvider) (*Store, error) {
	if db == nil {
		return nil, errors.New("mysql: database is required")
	}
	if fields == nil {
		return nil, errors.New("mysql: field metadata provider is required")
	}
	return &Store{db: db, fields: fields}, nil
}

// Open parses dsn with the go-sql-driver format and returns a Store using it.
func Open(dsn string, fields entity.FieldMetadataProvider) (*Store, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: connector: %w", err)
	}
	return New(sql.OpenDB(connector), fields)
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadFile reads a managed file by fid.
func (s *Store) LoadFile(ctx context.Context, id string) (entity.File, bool, error) {
	var file entity.File
	err := s.db.QueryRowContext(ctx,
		"SELECT fid, uri, filename FROM file_managed WHERE fid = ?", id,
	).Scan(&file.ID, &file.URI, &file.Filename)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.File{}, false, nil
	}
	if err != nil {
		return entity.File{}, false, fmt.Errorf("mysql: load file %s: %w", id, err)
	}
	return file, true, nil
}

// LoadMedia reads a media item, its thumbnail and the first delta of the first
// image field that is not the thumbnail. Later image fields are not queried.
// Field definitions keep the bundle's order.
func (s *Store) LoadMedia(ctx context.Context, id string) (*entity.Record, bool, error) {
	var (
		bundle    string
		thumbnail sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT bundle, thumbnail__target_id FROM media_field_data WHERE mid = ? LIMIT 1", id,
	).Scan(&bundle, &thumbnail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mysql: load media %s: %w", id, err)
	}

	defs, err := s.fields.FieldDefinitions(ctx, MediaEntityType, bundle)
	if err != nil {
		return nil, false, fmt.Errorf("mysql: media bundle %s: %w", bundle, err)
	}

	rec := entity.NewRecord(id, MediaEntityType, bundle, defs...)
	sourceLoaded := false
	for _, def := range defs {
		if !def.IsImage() {
			continue
		}
		if def.Name == entity.ThumbnailField {
			if thumbnail.Valid && thumbnail.String != "" {
				rec.Set(def.Name, entity.Reference(thumbnail.String, entity.TargetTypeFile))
			}
			continue
		}

		if sourceLoaded {
			continue
		}
		sourceLoaded = true

		target, ok, err := s.firstTarget(ctx, def.Name, id)
		if err != nil {
			return nil, false, err
		}
		if ok {
			rec.Set(def.Name, entity.Reference(target, entity.TargetTypeFile))
		}
	}
	return rec, true, nil
}

func (s *Store) firstTarget(ctx context.Context, field, entityID string) (string, bool, error) {
	if !identifier.MatchString(field) {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidIdentifier, field)
	}
	query := fmt.Sprintf(
		"SELECT %s_target_id FROM media__%s WHERE entity_id = ? AND deleted = 0 ORDER BY delta LIMIT 1",
		field, field,
	)

	var target sql.NullString
	err := s.db.QueryRowContext(ctx, query, entityID).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mysql: media %s field %s: %w", entityID, field, err)
	}
	if !target.Valid || target.String == "" {
		return "", false, nil
	}
	return target.String, true, nil
}
