package credentials

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/filex"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
)

const (
	BackendFile = "file"

	UserFileName     = "user.txt"
	PasswordFileName = "password.txt"

	filePerm = 0o600
)

// writeFile is a test seam for the atomic artifact writer.
var writeFile = filex.WriteFileAtomic

type FileStore struct {
	userPath string
	hashPath string
}

// NewFileStore keeps the artifacts in dir, creating it when missing.
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, storageError("prepare data dir", err)
	}
	return &FileStore{
		userPath: filepath.Join(abs, UserFileName),
		hashPath: filepath.Join(abs, PasswordFileName),
	}, nil
}

func (s *FileStore) Backend() string { return BackendFile }

// Location is the directory holding both artifacts.
func (s *FileStore) Location() string { return filepath.Dir(s.userPath) }

func (s *FileStore) Close() error { return nil }

func (s *FileStore) Exists(_ context.Context) (bool, error) {
	for _, p := range []string{s.userPath, s.hashPath} {
		ok, err := filex.Exists(p)
		if err != nil {
			return false, storageError("stat "+filepath.Base(p), err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (s *FileStore) Load(_ context.Context) (models.CredentialRecord, error) {
	user, err := os.ReadFile(s.userPath)
	if err != nil {
		return models.CredentialRecord{}, s.readError(UserFileName, err)
	}
	hash, err := os.ReadFile(s.hashPath)
	if err != nil {
		return models.CredentialRecord{}, s.readError(PasswordFileName, err)
	}

	rec := models.CredentialRecord{
		Username:     trimLineEnd(string(user)),
		PasswordHash: bytes.TrimSpace(hash),
	}
	if rec.Username == "" || len(rec.PasswordHash) == 0 {
		return models.CredentialRecord{}, storageError("load", errCorruptRecord)
	}
	return rec, nil
}

// trimLineEnd drops the single line terminator a hand-edited file may carry.
func trimLineEnd(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func (s *FileStore) readError(name string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return common.ErrNotFound
	}
	return storageError("read "+name, err)
}

// Save commits the digest, then the username. When the username cannot be
// committed the previous digest is restored so the old pair stays intact.
func (s *FileStore) Save(_ context.Context, rec models.CredentialRecord) error {
	prevHash, err := os.ReadFile(s.hashPath)
	hadHash := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return storageError("read "+PasswordFileName, err)
	}

	if err := writeFile(s.hashPath, rec.PasswordHash, filePerm); err != nil {
		return storageError("write "+PasswordFileName, err)
	}

	if err := writeFile(s.userPath, []byte(rec.Username), filePerm); err != nil {
		if rerr := s.restoreHash(prevHash, hadHash); rerr != nil {
			return storageError("write "+UserFileName, fmt.Errorf("%w (rollback failed: %v)", err, rerr))
		}
		return storageError("write "+UserFileName, err)
	}
	return nil
}

func (s *FileStore) restoreHash(prev []byte, existed bool) error {
	if existed {
		return writeFile(s.hashPath, prev, filePerm)
	}
	if err := os.Remove(s.hashPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
