package persistence

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Ключи зеркалируют localStorage исходного приложения
const (
	KeyProducts     = "grocerypos-products"
	KeyTransactions = "grocerypos-transactions"
	KeySettings     = "grocerypos-settings"
)

// Store непрозрачное key-value хранилище снимков состояния.
// Load сообщает отдельным флагом, было ли что-то сохранено под ключом.
type Store interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}

// FileStore хранит каждый ключ отдельным json-файлом в каталоге данных
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "load %s", key)
	}
	return data, true, nil
}

// Save пишет во временный файл и переименовывает, чтобы после
// рестарта нельзя было прочитать недописанное состояние
func (fs *FileStore) Save(key string, data []byte) error {
	tmp, err := os.CreateTemp(fs.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "save %s", key)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "save %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "save %s", key)
	}
	if err := os.Rename(tmp.Name(), fs.path(key)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "save %s", key)
	}
	return nil
}
