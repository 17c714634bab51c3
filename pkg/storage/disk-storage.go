package storage

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path"

	"github.com/matst80/slask-storefront/pkg/types"
)

const catalogFile = "catalog.json.gz"

// CatalogPath is the file the snapshot command writes and the static source watches.
func (d *DiskStorage) CatalogPath() string {
	name, _ := d.GetFileName(catalogFile)
	return name
}

func (d *DiskStorage) SaveProducts(products []types.Product) error {
	if products == nil {
		products = []types.Product{}
	}
	return d.SaveGzippedJson(products, catalogFile)
}

func (d *DiskStorage) LoadProducts() ([]types.Product, error) {
	products := make([]types.Product, 0)
	if err := d.LoadGzippedJson(&products, catalogFile); err != nil {
		return nil, err
	}
	return products, nil
}

// SaveGzippedJson writes to a temporary file first so readers never observe a
// partially written snapshot.
func (d *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := d.GetFileName(filename)
	if err := os.MkdirAll(path.Dir(fileName), 0o755); err != nil {
		return err
	}

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	err = json.NewEncoder(zipWriter).Encode(data)
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}

	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = json.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
