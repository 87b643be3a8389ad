package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is a struct that holds the database connection.
type ProductRepository struct {
	DB *gorm.DB
}

// NewProductRepository creates and returns a new ProductRepository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// GetProductByID fetches a product by ID. A missing product yields (nil, nil).
func (r *ProductRepository) GetProductByID(ctx context.Context, id uint) (*entity.Product, error) {
	var productModel model.Product
	if err := r.DB.WithContext(ctx).First(&productModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.ProductModelToEntity(&productModel), nil
}

// ListProducts returns products whose name starts with prefix
// (case-insensitive), ordered by name.
func (r *ProductRepository) ListProducts(ctx context.Context, prefix string) ([]entity.Product, error) {
	q := r.DB.WithContext(ctx).Model(&model.Product{})
	if prefix != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(prefix))+"%")
	}
	var rows []model.Product
	if err := q.Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *mapper.ProductModelToEntity(&rows[i]))
	}
	return products, nil
}

// CountByIDs counts the stored products among ids.
func (r *ProductRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Product{}).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

// BulkInsertProducts inserts products in batches, skipping rows that violate
// the (name, measurement_unit) uniqueness. It returns the number of rows
// actually inserted.
func (r *ProductRepository) BulkInsertProducts(ctx context.Context, products []entity.Product, batchSize int) (int64, error) {
	rows := make([]model.Product, 0, len(products))
	for i := range products {
		rows = append(rows, *mapper.ProductEntityToModel(&products[i]))
	}
	return bulkInsertIgnoringConflicts(r.DB.WithContext(ctx), rows, batchSize)
}

func bulkInsertIgnoringConflicts[T any](db *gorm.DB, rows []T, batchSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	var inserted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(rows); start += batchSize {
			end := start + batchSize
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[start:end]
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch)
			if res.Error != nil {
				return res.Error
			}
			inserted += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
