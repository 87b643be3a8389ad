package entity

import (
	"encoding/json"
	"math"
	"time"
)

// User represents an application user.
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `json:"password"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON implements the custom JSON serialization for User
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User // Create an alias to avoid infinite recursion
	return json.Marshal(&struct {
		*Alias
		Password string `json:"-"` // Exclude password field
	}{
		Alias:    (*Alias)(&u),
		Password: "",
	})
}

// Product is a purchasable product with its measurement unit.
type Product struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Tag labels recipes.
type Tag struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Ingredient is a product with its amount inside one recipe.
type Ingredient struct {
	ProductID       uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Recipe represents a recipe in the system.
type Recipe struct {
	ID          uint         `json:"id"`
	AuthorID    uint         `json:"-"`
	Author      User         `json:"-"`
	Name        string       `json:"name"`
	Image       string       `json:"image"`
	Text        string       `json:"text"`
	CookingTime int          `json:"cooking_time"`
	ShortCode   string       `json:"-"`
	CreatedAt   time.Time    `json:"-"`
	Ingredients []Ingredient `json:"ingredients"`
	Tags        []Tag        `json:"tags"`
}

// UserView is the public representation of a user as seen by the principal.
type UserView struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// RecipeView is the recipe read model with per-principal flags.
type RecipeView struct {
	ID               uint         `json:"id"`
	Ingredients      []Ingredient `json:"ingredients"`
	Tags             []Tag        `json:"tags"`
	Image            string       `json:"image"`
	Name             string       `json:"name"`
	Text             string       `json:"text"`
	CookingTime      int          `json:"cooking_time"`
	Author           UserView     `json:"author"`
	IsFavorited      bool         `json:"is_favorited"`
	IsInShoppingCart bool         `json:"is_in_shopping_cart"`
}

// RecipePreview is the short recipe representation used by collections and
// subscriptions.
type RecipePreview struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView is a followed author together with their latest recipes.
type SubscriptionView struct {
	UserView
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// IngredientAmount is one submitted {id, amount} pair of a recipe payload.
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// Image is a decoded image blob ready to be stored.
type Image struct {
	Data        []byte
	Ext         string
	ContentType string
}

// RecipeWrite is a create/update payload. Nil fields were omitted by the
// client; on update they keep their stored value.
type RecipeWrite struct {
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []uint             `json:"tags"`
	Image       *string            `json:"image"`
	Name        *string            `json:"name"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time"`

	// ImageUpload carries an already binary multipart upload and takes
	// precedence over Image.
	ImageUpload *Image `json:"-"`
}

// RecipeFilter selects recipes for listing. Nil flags are not applied.
type RecipeFilter struct {
	AuthorID         *uint
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
}

// Page is a one-based page request.
type Page struct {
	Number int
	Size   int
}

// MaxOffset caps Page.Offset so huge page numbers cannot overflow.
const MaxOffset = math.MaxInt32

// Offset returns the number of rows to skip, saturating at MaxOffset.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > MaxOffset/p.Size {
		return MaxOffset
	}
	return (p.Number - 1) * p.Size
}

// CollectionKind names a per-user recipe collection.
type CollectionKind string

const (
	Favorites    CollectionKind = "favorites"
	ShoppingCart CollectionKind = "shopping_cart"
)

// MembershipOp is an explicit add/remove request on a two-state relation.
type MembershipOp int

const (
	Add MembershipOp = iota
	Remove
)

// IngredientLine is one stored ingredient row of a carted recipe.
type IngredientLine struct {
	Name   string
	Unit   string
	Amount int
}

// CartRecipe is a recipe in a shopping cart with its ingredient lines.
type CartRecipe struct {
	RecipeID   uint
	Name       string
	AuthorName string
	Lines      []IngredientLine
}

// ShoppingItem is one aggregated row of a shopping list.
type ShoppingItem struct {
	Name   string `json:"name"`
	Unit   string `json:"measurement_unit"`
	Amount int    `json:"amount"`
}

// ShoppingList is the aggregation result for one user.
type ShoppingList struct {
	Items   []ShoppingItem
	Recipes []CartRecipe
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}
