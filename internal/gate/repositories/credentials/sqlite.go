package credentials

import (
	"context"
	"database/sql"
	"path/filepath"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/dbx"
	"github.com/dmitrijs2005/cyphergate/internal/filex"
	"github.com/dmitrijs2005/cyphergate/internal/gate/migrations"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
	"github.com/dmitrijs2005/cyphergate/internal/gate/repositories/metadata"

	_ "modernc.org/sqlite"
)

const (
	BackendSQLite = "sqlite"

	DatabaseFileName = "credentials.db"

	keyUsername     = "username"
	keyPasswordHash = "password_hash"
)

type SQLiteStore struct {
	db  *sql.DB
	dsn string
}

// NewSQLiteStore opens (creating if needed) dir/credentials.db and applies
// migrations.
func NewSQLiteStore(ctx context.Context, dir string) (*SQLiteStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, storageError("prepare data dir", err)
	}
	return OpenSQLiteStore(ctx, filepath.Join(abs, DatabaseFileName))
}

// OpenSQLiteStore opens the database at dsn, which may also be ":memory:".
func OpenSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, storageError("open database", err)
	}

	// single writer; also keeps ":memory:" on one connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storageError("ping database", err)
	}
	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, storageError("migrate database", err)
	}
	return &SQLiteStore{db: db, dsn: dsn}, nil
}

func (s *SQLiteStore) Backend() string { return BackendSQLite }

func (s *SQLiteStore) Location() string { return s.dsn }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLiteStore) Save(ctx context.Context, rec models.CredentialRecord) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyUsername, []byte(rec.Username)); err != nil {
			return err
		}
		return repo.Set(ctx, keyPasswordHash, rec.PasswordHash)
	})
	if err != nil {
		return storageError("save", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (models.CredentialRecord, error) {
	repo := s.repo(s.db)

	user, err := repo.Get(ctx, keyUsername)
	if err != nil {
		return models.CredentialRecord{}, storageError("load", err)
	}
	hash, err := repo.Get(ctx, keyPasswordHash)
	if err != nil {
		return models.CredentialRecord{}, storageError("load", err)
	}

	switch {
	case user == nil && hash == nil:
		return models.CredentialRecord{}, common.ErrNotFound
	case len(user) == 0 || len(hash) == 0:
		return models.CredentialRecord{}, storageError("load", errCorruptRecord)
	}
	return models.CredentialRecord{Username: string(user), PasswordHash: hash}, nil
}

func (s *SQLiteStore) Exists(ctx context.Context) (bool, error) {
	ok, err := s.repo(s.db).Exists(ctx, keyUsername, keyPasswordHash)
	if err != nil {
		return false, storageError("exists", err)
	}
	return ok, nil
}
