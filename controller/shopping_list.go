package controller

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/repository"
)

// ShoppingListController builds the downloadable shopping list of a user's
// cart.
type ShoppingListController interface {
	Aggregate(ctx context.Context, userID uint) (*entity.ShoppingList, error)
	Render(ctx context.Context, userID uint, generatedAt time.Time) (string, error)
}

type shoppingListController struct {
	recipes *repository.RecipeRepository
}

func NewShoppingListController(recipes *repository.RecipeRepository) ShoppingListController {
	return &shoppingListController{recipes: recipes}
}

func (c *shoppingListController) Aggregate(ctx context.Context, userID uint) (*entity.ShoppingList, error) {
	cart, err := c.recipes.ListCartRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load shopping cart: %w", err)
	}
	list := AggregateIngredients(cart)
	return &list, nil
}

func (c *shoppingListController) Render(ctx context.Context, userID uint, generatedAt time.Time) (string, error) {
	list, err := c.Aggregate(ctx, userID)
	if err != nil {
		return "", err
	}
	return RenderShoppingList(list.Items, list.Recipes, generatedAt), nil
}

type productKey struct {
	name string
	unit string
}

// AggregateIngredients sums amounts per exact (product name, unit) pair over
// the distinct recipes of a cart. Items are sorted by lower-cased name, then
// name, then unit; recipes keep their first-seen order.
func AggregateIngredients(cart []entity.CartRecipe) entity.ShoppingList {
	list := entity.ShoppingList{
		Items:   []entity.ShoppingItem{},
		Recipes: []entity.CartRecipe{},
	}
	seen := make(map[uint]bool, len(cart))
	totals := make(map[productKey]int)
	for _, recipe := range cart {
		if seen[recipe.RecipeID] {
			continue
		}
		seen[recipe.RecipeID] = true
		list.Recipes = append(list.Recipes, recipe)
		for _, line := range recipe.Lines {
			totals[productKey{name: line.Name, unit: line.Unit}] += line.Amount
		}
	}

	for key, amount := range totals {
		list.Items = append(list.Items, entity.ShoppingItem{Name: key.name, Unit: key.unit, Amount: amount})
	}
	sort.Slice(list.Items, func(i, j int) bool {
		a, b := list.Items[i], list.Items[j]
		if la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name); la != lb {
			return la < lb
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Unit < b.Unit
	})
	return list
}

// RenderShoppingList formats the aggregated items and their source recipes as
// the plain-text shopping list.
func RenderShoppingList(items []entity.ShoppingItem, recipes []entity.CartRecipe, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("Shopping list generated at ")
	b.WriteString(generatedAt.Format("15:04 02.01.2006"))
	b.WriteString(".\nProducts to buy:\n")
	for i, item := range items {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(capitalize(item.Name))
		b.WriteString(", ")
		b.WriteString(item.Unit)
		b.WriteString(" - ")
		b.WriteString(strconv.Itoa(item.Amount))
		b.WriteByte('\n')
	}
	b.WriteString("For recipes:")
	for _, recipe := range recipes {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s (author: %s)", recipe.Name, recipe.AuthorName)
	}
	return b.String()
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
