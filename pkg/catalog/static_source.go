package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/matst80/slask-storefront/pkg/storage"
	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
)

// StaticSource serves the snapshot written by the snapshot command. The
// snapshot is read once and re-read whenever the file is replaced.
type StaticSource struct {
	mu       sync.RWMutex
	storage  *storage.DiskStorage
	logger   *zap.Logger
	products []types.Product
	loadErr  error
}

func NewStaticSource(ds *storage.DiskStorage, logger *zap.Logger) *StaticSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StaticSource{
		storage: ds,
		logger:  logger,
	}
	if err := s.Reload(); err != nil {
		logger.Warn("catalog snapshot not loaded", zap.String("path", ds.CatalogPath()), zap.Error(err))
	}
	return s
}

func (s *StaticSource) Reload() error {
	products, err := s.storage.LoadProducts()
	if err == nil {
		if verr := types.ValidateProducts(products); verr != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidResponse, verr)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// keep serving the previous snapshot if there is one
		if s.products == nil {
			s.loadErr = err
		}
		return err
	}
	s.products = products
	s.loadErr = nil
	return nil
}

func (s *StaticSource) Fetch(_ context.Context) ([]types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var err error
	if s.products == nil {
		err = ErrNoSnapshot
		if s.loadErr != nil {
			err = fmt.Errorf("%w: %w", ErrNoSnapshot, s.loadErr)
		}
	}
	countFetch("static", err)
	if err != nil {
		return nil, err
	}
	return s.products, nil
}

// Watch reloads the snapshot when the snapshot file is written or replaced,
// until ctx is done.
func (s *StaticSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	folder := s.storage.Folder()
	if err = watcher.Add(folder); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("unable to watch %s: %w", folder, err)
	}
	target := filepath.Clean(s.storage.CatalogPath())

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					if err := s.Reload(); err != nil {
						s.logger.Warn("catalog snapshot reload failed", zap.Error(err))
					} else {
						s.logger.Info("catalog snapshot reloaded", zap.String("path", target))
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("catalog snapshot watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
