package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RomanKim94/foodgram/controller"
	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/util"

	"github.com/gin-gonic/gin"
)

const maxImageUpload = 10 << 20

var errRecipeMissing = entity.DetailError(entity.CodeRecipeNotFound, "Recipe not found.")

type RecipeHandler interface {
	ListRecipes(c *gin.Context)
	Create(c *gin.Context)
	GetRecipe(c *gin.Context)
	UpdateRecipe(c *gin.Context)
	DeleteRecipe(c *gin.Context)
	GetLink(c *gin.Context)
	ResolveShortLink(c *gin.Context)
	AddFavorite(c *gin.Context)
	RemoveFavorite(c *gin.Context)
	AddToShoppingCart(c *gin.Context)
	RemoveFromShoppingCart(c *gin.Context)
	DownloadShoppingCart(c *gin.Context)
}

type recipeHandler struct {
	recipeController       controller.RecipeController
	collectionController   controller.CollectionController
	shoppingListController controller.ShoppingListController
	paginator              Paginator
	baseURL                string
	now                    func() time.Time
}

func NewRecipeHandler(
	recipeController controller.RecipeController,
	collectionController controller.CollectionController,
	shoppingListController controller.ShoppingListController,
	paginator Paginator,
	baseURL string,
) RecipeHandler {
	return &recipeHandler{
		recipeController:       recipeController,
		collectionController:   collectionController,
		shoppingListController: shoppingListController,
		paginator:              paginator,
		baseURL:                strings.TrimRight(baseURL, "/"),
		now:                    time.Now,
	}
}

func boolQuery(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	var b bool
	switch strings.ToLower(v) {
	case "1", "true":
		b = true
	case "0", "false":
		b = false
	default:
		return nil
	}
	return &b
}

func recipeFilter(c *gin.Context) entity.RecipeFilter {
	var filter entity.RecipeFilter
	if id, err := strconv.ParseUint(c.Query("author"), 10, 64); err == nil {
		author := uint(id)
		filter.AuthorID = &author
	}
	for _, slug := range c.QueryArray("tags") {
		if slug = strings.TrimSpace(slug); slug != "" {
			filter.TagSlugs = append(filter.TagSlugs, slug)
		}
	}
	filter.IsFavorited = boolQuery(c, "is_favorited")
	filter.IsInShoppingCart = boolQuery(c, "is_in_shopping_cart")
	return filter
}

// bindRecipeWrite reads a recipe payload from JSON or multipart form data.
// In multipart requests ingredients is a JSON array in a form field and the
// image is a file part.
func bindRecipeWrite(c *gin.Context) (*entity.RecipeWrite, bool) {
	var payload entity.RecipeWrite
	if c.ContentType() != "multipart/form-data" {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondBindError(c, err)
			return nil, false
		}
		return &payload, true
	}

	fail := func(field, msg string) (*entity.RecipeWrite, bool) {
		c.JSON(http.StatusBadRequest, gin.H{field: []string{msg}})
		return nil, false
	}
	if v, ok := c.GetPostForm("name"); ok {
		payload.Name = &v
	}
	if v, ok := c.GetPostForm("text"); ok {
		payload.Text = &v
	}
	if v, ok := c.GetPostForm("cooking_time"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fail("cooking_time", "A valid integer is required.")
		}
		payload.CookingTime = &n
	}
	if values, ok := c.GetPostFormArray("tags"); ok {
		payload.Tags = make([]uint, 0, len(values))
		for _, v := range values {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fail("tags", "A valid integer is required.")
			}
			payload.Tags = append(payload.Tags, uint(id))
		}
	}
	if v, ok := c.GetPostForm("ingredients"); ok {
		if err := json.Unmarshal([]byte(v), &payload.Ingredients); err != nil {
			return fail("ingredients", "Expected a JSON list of {id, amount} objects.")
		}
		if payload.Ingredients == nil {
			payload.Ingredients = []entity.IngredientAmount{}
		}
	}
	if v, ok := c.GetPostForm("image"); ok {
		payload.Image = &v
	}
	if fh, err := c.FormFile("image"); err == nil {
		if fh.Size > maxImageUpload {
			return fail("image", fmt.Sprintf("Image must not exceed %d bytes.", maxImageUpload))
		}
		f, err := fh.Open()
		if err != nil {
			return fail("image", "The submitted file could not be read.")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return fail("image", "The submitted file could not be read.")
		}
		img, err := util.ImageFromUpload(data, fh.Header.Get("Content-Type"), fh.Filename)
		if err != nil {
			return fail("image", err.Error())
		}
		payload.ImageUpload = img
	}
	return &payload, true
}

func (h *recipeHandler) ListRecipes(c *gin.Context) {
	page := h.paginator.Page(c)
	recipes, total, err := h.recipeController.List(c.Request.Context(), recipeFilter(c), page, principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.paginator.Respond(c, page, total, recipes)
}

func (h *recipeHandler) Create(c *gin.Context) {
	payload, ok := bindRecipeWrite(c)
	if !ok {
		return
	}
	recipe, err := h.recipeController.Create(c.Request.Context(), principalID(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *recipeHandler) GetRecipe(c *gin.Context) {
	id, ok := idParam(c, "id", errRecipeMissing)
	if !ok {
		return
	}
	recipe, err := h.recipeController.Get(c.Request.Context(), id, principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *recipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := idParam(c, "id", errRecipeMissing)
	if !ok {
		return
	}
	payload, ok := bindRecipeWrite(c)
	if !ok {
		return
	}
	recipe, err := h.recipeController.Update(c.Request.Context(), id, principalID(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *recipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := idParam(c, "id", errRecipeMissing)
	if !ok {
		return
	}
	if err := h.recipeController.Delete(c.Request.Context(), id, principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *recipeHandler) GetLink(c *gin.Context) {
	id, ok := idParam(c, "id", errRecipeMissing)
	if !ok {
		return
	}
	code, err := h.recipeController.ShortLink(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"short-link": h.baseURL + "/s/" + code})
}

// ResolveShortLink redirects /s/<code> to the recipe page.
func (h *recipeHandler) ResolveShortLink(c *gin.Context) {
	id, err := h.recipeController.ResolveShortLink(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/recipes/"+strconv.FormatUint(uint64(id), 10))
}

func (h *recipeHandler) toggle(c *gin.Context, kind entity.CollectionKind, op entity.MembershipOp) {
	id, ok := idParam(c, "id", errRecipeMissing)
	if !ok {
		return
	}
	preview, err := h.collectionController.ToggleMembership(c.Request.Context(), kind, principalID(c), id, op)
	if err != nil {
		respondError(c, err)
		return
	}
	if op == entity.Remove {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, preview)
}

func (h *recipeHandler) AddFavorite(c *gin.Context) {
	h.toggle(c, entity.Favorites, entity.Add)
}

func (h *recipeHandler) RemoveFavorite(c *gin.Context) {
	h.toggle(c, entity.Favorites, entity.Remove)
}

func (h *recipeHandler) AddToShoppingCart(c *gin.Context) {
	h.toggle(c, entity.ShoppingCart, entity.Add)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.toggle(c, entity.ShoppingCart, entity.Remove)
}

// DownloadShoppingCart sends the aggregated shopping list as a text file.
func (h *recipeHandler) DownloadShoppingCart(c *gin.Context) {
	text, err := h.shoppingListController.Render(c.Request.Context(), principalID(c), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shopping_cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
