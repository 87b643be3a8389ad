package handler

import (
	"net/http"

	"github.com/RomanKim94/foodgram/controller"
	"github.com/RomanKim94/foodgram/entity"

	"github.com/gin-gonic/gin"
)

var (
	errProductMissing = entity.DetailError(entity.CodeProductNotFound, "Product not found.")
	errTagMissing     = entity.DetailError(entity.CodeTagNotFound, "Tag not found.")
)

type ProductHandler interface {
	ListProducts(c *gin.Context)
	GetProduct(c *gin.Context)
}

type productHandler struct {
	productController controller.ProductController
}

func NewProductHandler(productController controller.ProductController) ProductHandler {
	return &productHandler{productController: productController}
}

// ListProducts returns every product, optionally filtered by ?name= prefix.
func (h *productHandler) ListProducts(c *gin.Context) {
	products, err := h.productController.ListProducts(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id", errProductMissing)
	if !ok {
		return
	}
	product, err := h.productController.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type TagHandler interface {
	ListTags(c *gin.Context)
	GetTag(c *gin.Context)
}

type tagHandler struct {
	tagController controller.TagController
}

func NewTagHandler(tagController controller.TagController) TagHandler {
	return &tagHandler{tagController: tagController}
}

func (h *tagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagController.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *tagHandler) GetTag(c *gin.Context) {
	id, ok := idParam(c, "id", errTagMissing)
	if !ok {
		return
	}
	tag, err := h.tagController.GetTag(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}
