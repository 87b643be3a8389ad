// Package importer bulk-loads the product and tag reference data from JSON
// dumps, optionally gzip-compressed.
package importer

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/logger"
	"github.com/RomanKim94/foodgram/repository"

	"go.uber.org/zap"
)

const defaultBatchSize = 500

// Importer inserts reference rows, skipping ones that already exist.
type Importer struct {
	products  *repository.ProductRepository
	tags      *repository.TagRepository
	batchSize int
}

func New(products *repository.ProductRepository, tags *repository.TagRepository, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Importer{products: products, tags: tags, batchSize: batchSize}
}

// ImportProducts reads a JSON array of {"name", "measurement_unit"} objects
// and returns the number of rows actually inserted.
func (im *Importer) ImportProducts(ctx context.Context, r io.Reader) (int64, error) {
	var records []entity.Product
	if err := decode(r, &records); err != nil {
		return 0, fmt.Errorf("decode products: %w", err)
	}
	products := make([]entity.Product, 0, len(records))
	for _, p := range records {
		p.ID = 0
		p.Name = strings.TrimSpace(p.Name)
		p.MeasurementUnit = strings.TrimSpace(p.MeasurementUnit)
		if p.Name == "" || p.MeasurementUnit == "" {
			continue
		}
		products = append(products, p)
	}
	if skipped := len(records) - len(products); skipped > 0 {
		logger.Warn("skipped incomplete product records", zap.Int("count", skipped))
	}
	return im.products.BulkInsertProducts(ctx, products, im.batchSize)
}

// ImportTags reads a JSON array of {"name", "slug"} objects and returns the
// number of rows actually inserted.
func (im *Importer) ImportTags(ctx context.Context, r io.Reader) (int64, error) {
	var records []entity.Tag
	if err := decode(r, &records); err != nil {
		return 0, fmt.Errorf("decode tags: %w", err)
	}
	tags := make([]entity.Tag, 0, len(records))
	for _, t := range records {
		t.ID = 0
		t.Name = strings.TrimSpace(t.Name)
		t.Slug = strings.TrimSpace(t.Slug)
		if t.Name == "" || t.Slug == "" {
			continue
		}
		tags = append(tags, t)
	}
	if skipped := len(records) - len(tags); skipped > 0 {
		logger.Warn("skipped incomplete tag records", zap.Int("count", skipped))
	}
	return im.tags.BulkInsertTags(ctx, tags, im.batchSize)
}

// ImportFile opens path and runs the importer for kind ("products" or
// "tags").
func (im *Importer) ImportFile(ctx context.Context, kind, path string) (int64, error) {
	var load func(context.Context, io.Reader) (int64, error)
	switch kind {
	case "products":
		load = im.ImportProducts
	case "tags":
		load = im.ImportTags
	default:
		return 0, fmt.Errorf("unknown import kind %q", kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	inserted, err := load(ctx, f)
	if err != nil {
		return 0, err
	}
	logger.Info("import finished", zap.String("kind", kind), zap.String("file", path), zap.Int64("inserted", inserted))
	return inserted, nil
}

// decode reads JSON from r, gunzipping it first when it starts with the gzip
// magic bytes.
func decode(r io.Reader, v interface{}) error {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return err
		}
		defer gr.Close()
		return json.NewDecoder(gr).Decode(v)
	}
	return json.NewDecoder(br).Decode(v)
}
