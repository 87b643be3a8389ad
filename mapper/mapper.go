package mapper

import (
	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/model"
)

// UserEntityToModel maps a User entity to the corresponding model. The
// password must already be hashed.
func UserEntityToModel(entity *entity.User) *model.User {
	return &model.User{
		ID:        entity.ID,
		Email:     entity.Email,
		Username:  entity.Username,
		FirstName: entity.FirstName,
		LastName:  entity.LastName,
		Password:  []byte(entity.Password),
		Avatar:    entity.Avatar,
	}
}

// UserModelToEntity maps a User model to the corresponding entity.
func UserModelToEntity(model *model.User) *entity.User {
	return &entity.User{
		ID:        model.ID,
		Email:     model.Email,
		Username:  model.Username,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Password:  string(model.Password),
		Avatar:    model.Avatar,
		CreatedAt: model.CreatedAt,
	}
}

// ProductModelToEntity maps a Product model to the corresponding entity.
func ProductModelToEntity(model *model.Product) *entity.Product {
	return &entity.Product{
		ID:              model.ID,
		Name:            model.Name,
		MeasurementUnit: model.MeasurementUnit,
	}
}

// ProductEntityToModel maps a Product entity to the corresponding model.
func ProductEntityToModel(entity *entity.Product) *model.Product {
	return &model.Product{
		ID:              entity.ID,
		Name:            entity.Name,
		MeasurementUnit: entity.MeasurementUnit,
	}
}

// TagModelToEntity maps a Tag model to the corresponding entity.
func TagModelToEntity(model *model.Tag) *entity.Tag {
	return &entity.Tag{
		ID:   model.ID,
		Name: model.Name,
		Slug: model.Slug,
	}
}

// TagEntityToModel maps a Tag entity to the corresponding model.
func TagEntityToModel(entity *entity.Tag) *model.Tag {
	return &model.Tag{
		ID:   entity.ID,
		Name: entity.Name,
		Slug: entity.Slug,
	}
}

// RecipeModelToEntity maps a Recipe model with preloaded associations to the
// corresponding entity.
func RecipeModelToEntity(model *model.Recipe) *entity.Recipe {
	recipe := &entity.Recipe{
		ID:          model.ID,
		AuthorID:    model.AuthorID,
		Author:      *UserModelToEntity(&model.Author),
		Name:        model.Name,
		Image:       model.Image,
		Text:        model.Text,
		CookingTime: model.CookingTime,
		ShortCode:   model.ShortCode,
		CreatedAt:   model.CreatedAt,
		Ingredients: make([]entity.Ingredient, 0, len(model.Ingredients)),
		Tags:        make([]entity.Tag, 0, len(model.Tags)),
	}
	for i := range model.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, IngredientModelToEntity(&model.Ingredients[i]))
	}
	for i := range model.Tags {
		recipe.Tags = append(recipe.Tags, *TagModelToEntity(&model.Tags[i]))
	}
	return recipe
}

// RecipeEntityToModel maps the scalar fields of a Recipe entity to the
// corresponding model. Ingredients and tags are written separately.
func RecipeEntityToModel(entity *entity.Recipe) *model.Recipe {
	return &model.Recipe{
		ID:          entity.ID,
		Name:        entity.Name,
		AuthorID:    entity.AuthorID,
		Image:       entity.Image,
		Text:        entity.Text,
		CookingTime: entity.CookingTime,
		ShortCode:   entity.ShortCode,
	}
}

// IngredientModelToEntity maps an Ingredient model with its product to the
// corresponding entity.
func IngredientModelToEntity(model *model.Ingredient) entity.Ingredient {
	return entity.Ingredient{
		ProductID:       model.ProductID,
		Name:            model.Product.Name,
		MeasurementUnit: model.Product.MeasurementUnit,
		Amount:          model.Amount,
	}
}

// IngredientAmountsToModels maps submitted {id, amount} pairs to Ingredient
// rows of one recipe.
func IngredientAmountsToModels(recipeID uint, amounts []entity.IngredientAmount) []model.Ingredient {
	rows := make([]model.Ingredient, 0, len(amounts))
	for _, a := range amounts {
		rows = append(rows, model.Ingredient{
			RecipeID:  recipeID,
			ProductID: a.ID,
			Amount:    a.Amount,
		})
	}
	return rows
}

// RecipePreview maps a Recipe entity to its short representation.
func RecipePreview(recipe *entity.Recipe) entity.RecipePreview {
	return entity.RecipePreview{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// UserView maps a User entity to its public representation.
func UserView(user *entity.User, subscribed bool) entity.UserView {
	view := entity.UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
	if user.Avatar != "" {
		avatar := user.Avatar
		view.Avatar = &avatar
	}
	return view
}
