package controller

import (
	"context"
	"fmt"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/repository"
)

// ProductController serves the read-only product catalog.
type ProductController interface {
	ListProducts(ctx context.Context, namePrefix string) ([]entity.Product, error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
}

type productController struct {
	productRepository *repository.ProductRepository
}

func NewProductController(productRepository *repository.ProductRepository) ProductController {
	return &productController{productRepository: productRepository}
}

func (c *productController) ListProducts(ctx context.Context, namePrefix string) ([]entity.Product, error) {
	products, err := c.productRepository.ListProducts(ctx, namePrefix)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *productController) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := c.productRepository.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, entity.DetailError(entity.CodeProductNotFound, "Product not found.")
	}
	return product, nil
}

// TagController serves the read-only tag catalog.
type TagController interface {
	ListTags(ctx context.Context) ([]entity.Tag, error)
	GetTag(ctx context.Context, id uint) (*entity.Tag, error)
}

type tagController struct {
	tagRepository *repository.TagRepository
}

func NewTagController(tagRepository *repository.TagRepository) TagController {
	return &tagController{tagRepository: tagRepository}
}

func (c *tagController) ListTags(ctx context.Context) ([]entity.Tag, error) {
	tags, err := c.tagRepository.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (c *tagController) GetTag(ctx context.Context, id uint) (*entity.Tag, error) {
	tag, err := c.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if tag == nil {
		return nil, entity.DetailError(entity.CodeTagNotFound, "Tag not found.")
	}
	return tag, nil
}
