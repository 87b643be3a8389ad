package repository

import (
	"context"
	"errors"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/mapper"
	"github.com/RomanKim94/foodgram/model"

	"gorm.io/gorm"
)

// RecipeRepository is a struct that holds the database connection.
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates and returns a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{
		DB: db,
	}
}

func preloadRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id ASC") }).
		Preload("Ingredients.Product").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") })
}

// CreateRecipe stores a recipe with its ingredient rows and tag links in one
// transaction and sets the recipe ID.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *entity.Recipe, ingredients []entity.IngredientAmount, tagIDs []uint) error {
	recipeModel := mapper.RecipeEntityToModel(recipe)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Ingredients", "Tags").Create(recipeModel).Error; err != nil {
			return err
		}
		if err := insertIngredients(tx, recipeModel.ID, ingredients); err != nil {
			return err
		}
		return insertRecipeTags(tx, recipeModel.ID, tagIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	recipe.ID = recipeModel.ID
	recipe.CreatedAt = recipeModel.CreatedAt
	return nil
}

// UpdateRecipe saves the scalar fields of recipe. Non-nil ingredients or
// tagIDs replace the stored sets; nil keeps them. Everything runs in one
// transaction.
func (r *RecipeRepository) UpdateRecipe(ctx context.Context, recipe *entity.Recipe, ingredients []entity.IngredientAmount, tagIDs []uint) error {
	recipeModel := mapper.RecipeEntityToModel(recipe)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Recipe{}).
			Where("id = ?", recipeModel.ID).
			Updates(map[string]interface{}{
				"name":         recipeModel.Name,
				"image":        recipeModel.Image,
				"text":         recipeModel.Text,
				"cooking_time": recipeModel.CookingTime,
			}).Error; err != nil {
			return err
		}
		if ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipeModel.ID).Delete(&model.Ingredient{}).Error; err != nil {
				return err
			}
			if err := insertIngredients(tx, recipeModel.ID, ingredients); err != nil {
				return err
			}
		}
		if tagIDs != nil {
			if err := tx.Where("recipe_id = ?", recipeModel.ID).Delete(&model.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := insertRecipeTags(tx, recipeModel.ID, tagIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// DeleteRecipe removes a recipe together with its ingredients, tag links and
// collection memberships.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&model.Ingredient{},
			&model.RecipeTag{},
			&model.Favorite{},
			&model.ShoppingCart{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Recipe{}, id).Error
	})
}

func insertIngredients(tx *gorm.DB, recipeID uint, ingredients []entity.IngredientAmount) error {
	if len(ingredients) == 0 {
		return nil
	}
	rows := mapper.IngredientAmountsToModels(recipeID, ingredients)
	return tx.Omit("Product").CreateInBatches(&rows, 100).Error
}

func insertRecipeTags(tx *gorm.DB, recipeID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]model.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, model.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	return tx.Create(&links).Error
}

// GetRecipeByID fetches a recipe with author, ingredients and tags. A missing
// recipe yields (nil, nil).
func (r *RecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entity.Recipe, error) {
	var recipeModel model.Recipe
	if err := preloadRecipe(r.DB.WithContext(ctx)).First(&recipeModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.RecipeModelToEntity(&recipeModel), nil
}

// GetRecipeIDByShortCode resolves a short code. A missing code yields 0.
func (r *RecipeRepository) GetRecipeIDByShortCode(ctx context.Context, code string) (uint, error) {
	var ids []uint
	if err := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Where("short_code = ?", code).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// Exists reports whether a recipe with id is stored.
func (r *RecipeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// applyRecipeFilter narrows a recipes query. Membership filters are evaluated
// for userID; with userID 0 nothing is a member.
func applyRecipeFilter(q *gorm.DB, filter entity.RecipeFilter, userID uint) *gorm.DB {
	if filter.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where("recipes.id IN (?)", q.Session(&gorm.Session{NewDB: true}).
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs))
	}
	membership := func(q *gorm.DB, table string, want *bool) *gorm.DB {
		if want == nil {
			return q
		}
		sub := "SELECT 1 FROM " + table + " m WHERE m.recipe_id = recipes.id AND m.user_id = ?"
		if *want {
			return q.Where("EXISTS ("+sub+")", userID)
		}
		return q.Where("NOT EXISTS ("+sub+")", userID)
	}
	q = membership(q, "favorites", filter.IsFavorited)
	q = membership(q, "shopping_carts", filter.IsInShoppingCart)
	return q
}

// ListRecipes returns one page of recipes matching filter, newest first, and
// the total number of matches.
func (r *RecipeRepository) ListRecipes(ctx context.Context, filter entity.RecipeFilter, userID uint, page entity.Page) ([]entity.Recipe, int64, error) {
	db := r.DB.WithContext(ctx)

	var total int64
	if err := applyRecipeFilter(db.Model(&model.Recipe{}), filter, userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Recipe
	q := applyRecipeFilter(preloadRecipe(db.Model(&model.Recipe{})), filter, userID)
	if err := q.
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	recipes := make([]entity.Recipe, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, *mapper.RecipeModelToEntity(&rows[i]))
	}
	return recipes, total, nil
}

// ListRecipesByAuthor returns up to limit of the author's newest recipes
// without associations; limit < 0 means no limit.
func (r *RecipeRepository) ListRecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]entity.Recipe, error) {
	var rows []model.Recipe
	if err := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	recipes := make([]entity.Recipe, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, *mapper.RecipeModelToEntity(&rows[i]))
	}
	return recipes, nil
}

// CountRecipesByAuthor counts recipes for each of authorIDs.
func (r *RecipeRepository) CountRecipesByAuthor(ctx context.Context, authorIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		AuthorID uint
		Total    int64
	}
	if err := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

type cartRow struct {
	RecipeID   uint
	RecipeName string
	AuthorName string
	Product    *string
	Unit       *string
	Amount     *int
}

// ListCartRecipes returns every recipe in the user's shopping cart with its
// ingredient lines. Each recipe appears once.
func (r *RecipeRepository) ListCartRecipes(ctx context.Context, userID uint) ([]entity.CartRecipe, error) {
	var rows []cartRow
	db := r.DB.WithContext(ctx)
	inCart := db.Model(&model.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", userID)
	err := db.
		Table("recipes").
		Select("recipes.id AS recipe_id, recipes.name AS recipe_name, users.username AS author_name, " +
			"products.name AS product, products.measurement_unit AS unit, ingredients.amount AS amount").
		Joins("JOIN users ON users.id = recipes.author_id").
		Joins("LEFT JOIN ingredients ON ingredients.recipe_id = recipes.id").
		Joins("LEFT JOIN products ON products.id = ingredients.product_id").
		Where("recipes.id IN (?)", inCart).
		Order("recipes.name ASC").
		Order("recipes.id ASC").
		Order("ingredients.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var recipes []entity.CartRecipe
	index := make(map[uint]int)
	for _, row := range rows {
		i, ok := index[row.RecipeID]
		if !ok {
			i = len(recipes)
			index[row.RecipeID] = i
			recipes = append(recipes, entity.CartRecipe{
				RecipeID:   row.RecipeID,
				Name:       row.RecipeName,
				AuthorName: row.AuthorName,
			})
		}
		if row.Product == nil || row.Unit == nil || row.Amount == nil {
			continue
		}
		recipes[i].Lines = append(recipes[i].Lines, entity.IngredientLine{
			Name:   *row.Product,
			Unit:   *row.Unit,
			Amount: *row.Amount,
		})
	}
	return recipes, nil
}
