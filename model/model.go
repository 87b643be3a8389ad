package model

import (
	"time"
)

// User represents an application user.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"size:150;not null" json:"first_name"`
	LastName  string    `gorm:"size:150;not null" json:"last_name"`
	Password  []byte    `gorm:"not null" json:"-"` // Hide password from JSON
	Avatar    string    `gorm:"size:255" json:"avatar"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Product represents a product that recipes are made of.
type Product struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:128;not null;uniqueIndex:idx_product_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:64;not null;uniqueIndex:idx_product_name_unit" json:"measurement_unit"`
}

// Tag represents a recipe tag.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:32;not null" json:"name"`
	Slug string `gorm:"size:32;uniqueIndex;not null" json:"slug"`
}

// Recipe represents a recipe in the system.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Image       string    `gorm:"size:255;not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	ShortCode   string    `gorm:"size:16;uniqueIndex;not null" json:"short_code"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Author      User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

// Ingredient represents the amount of a product required by a recipe.
type Ingredient struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RecipeID  uint `gorm:"not null;uniqueIndex:idx_ingredient_recipe_product" json:"recipe_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_ingredient_recipe_product;index" json:"product_id"`
	Amount    int  `gorm:"not null" json:"amount"`

	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
}

// RecipeTag links a recipe to a tag. It is the join table of Recipe.Tags.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

// Favorite is a recipe in a user's favorites.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ShoppingCart is a recipe in a user's shopping cart.
type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Follow is a subscription of a follower to an author.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_follower_author" json:"follower_id"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_follow_follower_author;index" json:"author_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// All lists every model for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Tag{},
		&Recipe{},
		&Ingredient{},
		&RecipeTag{},
		&Favorite{},
		&ShoppingCart{},
		&Follow{},
	}
}

// Relationships

// Recipe AuthorID is a foreign key referencing User.ID.
// Ingredient RecipeID is a foreign key referencing Recipe.ID.
// Ingredient ProductID is a foreign key referencing Product.ID.
// recipe_tags links Recipe.ID and Tag.ID.
// Favorite and ShoppingCart reference User.ID and Recipe.ID.
// Follow FollowerID and AuthorID both reference User.ID.
