package controller

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/RomanKim94/foodgram/entity"
)

func cartRecipe(id uint, name, author string, lines ...entity.IngredientLine) entity.CartRecipe {
	return entity.CartRecipe{RecipeID: id, Name: name, AuthorName: author, Lines: lines}
}

func TestAggregateIngredients(t *testing.T) {
	a := cartRecipe(1, "A", "chef",
		entity.IngredientLine{Name: "Flour", Unit: "g", Amount: 200},
		entity.IngredientLine{Name: "Sugar", Unit: "g", Amount: 50})
	b := cartRecipe(2, "B", "chef",
		entity.IngredientLine{Name: "Flour", Unit: "g", Amount: 100})
	want := []entity.ShoppingItem{
		{Name: "Flour", Unit: "g", Amount: 300},
		{Name: "Sugar", Unit: "g", Amount: 50},
	}

	tests := []struct {
		name string
		cart []entity.CartRecipe
		want []entity.ShoppingItem
	}{
		{"empty cart", nil, []entity.ShoppingItem{}},
		{"sums shared products", []entity.CartRecipe{a, b}, want},
		{"order independent", []entity.CartRecipe{b, a}, want},
		{"recipe counted once", []entity.CartRecipe{a, b, a}, want},
		{
			"units are kept apart",
			[]entity.CartRecipe{cartRecipe(3, "C", "x",
				entity.IngredientLine{Name: "Milk", Unit: "ml", Amount: 200},
				entity.IngredientLine{Name: "Milk", Unit: "cup", Amount: 1})},
			[]entity.ShoppingItem{{Name: "Milk", Unit: "cup", Amount: 1}, {Name: "Milk", Unit: "ml", Amount: 200}},
		},
		{
			"sorted case-insensitively",
			[]entity.CartRecipe{cartRecipe(4, "D", "x",
				entity.IngredientLine{Name: "salt", Unit: "g", Amount: 5},
				entity.IngredientLine{Name: "Butter", Unit: "g", Amount: 10},
				entity.IngredientLine{Name: "apple", Unit: "pc", Amount: 2})},
			[]entity.ShoppingItem{
				{Name: "apple", Unit: "pc", Amount: 2},
				{Name: "Butter", Unit: "g", Amount: 10},
				{Name: "salt", Unit: "g", Amount: 5},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateIngredients(tt.cart)
			if !reflect.DeepEqual(got.Items, tt.want) {
				t.Errorf("items = %+v, want %+v", got.Items, tt.want)
			}
		})
	}

	got := AggregateIngredients([]entity.CartRecipe{a, b, a})
	if len(got.Recipes) != 2 || got.Recipes[0].RecipeID != 1 || got.Recipes[1].RecipeID != 2 {
		t.Errorf("recipes = %+v", got.Recipes)
	}
}

func TestRenderShoppingList(t *testing.T) {
	at := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
	items := []entity.ShoppingItem{
		{Name: "flour", Unit: "g", Amount: 300},
		{Name: "SUGAR", Unit: "g", Amount: 50},
	}
	recipes := []entity.CartRecipe{cartRecipe(1, "Pancakes", "chef")}

	got := RenderShoppingList(items, recipes, at)
	want := strings.Join([]string{
		"Shopping list generated at 09:07 05.03.2024.",
		"Products to buy:",
		"1. Flour, g - 300",
		"2. Sugar, g - 50",
		"For recipes:",
		"Pancakes (author: chef)",
	}, "\n")
	if got != want {
		t.Errorf("rendered:\n%s\nwant:\n%s", got, want)
	}

	empty := RenderShoppingList(nil, nil, at)
	if empty != "Shopping list generated at 09:07 05.03.2024.\nProducts to buy:\nFor recipes:" {
		t.Errorf("empty list rendered as %q", empty)
	}
}

func TestCapitalize(t *testing.T) {
	for in, want := range map[string]string{
		"":        "",
		"flour":   "Flour",
		"FLOUR":   "Flour",
		"яблоко":  "Яблоко",
		"o'Brien": "O'brien",
	} {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShoppingListFromCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.create(t, f.alice, &entity.RecipeWrite{
		Ingredients: []entity.IngredientAmount{{ID: f.flour, Amount: 200}, {ID: f.sugar, Amount: 50}},
		Tags:        []uint{f.breakfast},
		Image:       ptr(testImage),
		Name:        ptr("A"),
		Text:        ptr("a"),
		CookingTime: ptr(10),
	})
	b := f.create(t, f.alice, &entity.RecipeWrite{
		Ingredients: []entity.IngredientAmount{{ID: f.flour, Amount: 100}},
		Tags:        []uint{f.dinner},
		Image:       ptr(testImage),
		Name:        ptr("B"),
		Text:        ptr("b"),
		CookingTime: ptr(10),
	})

	empty, err := f.shopping.Aggregate(ctx, f.bob)
	if err != nil {
		t.Fatalf("aggregate empty cart: %v", err)
	}
	if len(empty.Items) != 0 || len(empty.Recipes) != 0 {
		t.Errorf("empty cart aggregated to %+v", empty)
	}

	for _, id := range []uint{a.ID, b.ID} {
		if _, err := f.collections.ToggleMembership(ctx, entity.ShoppingCart, f.bob, id, entity.Add); err != nil {
			t.Fatalf("add to cart: %v", err)
		}
	}
	// alice's cart must not leak into bob's list
	if _, err := f.collections.ToggleMembership(ctx, entity.ShoppingCart, f.alice, a.ID, entity.Add); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	list, err := f.shopping.Aggregate(ctx, f.bob)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := []entity.ShoppingItem{
		{Name: "Flour", Unit: "g", Amount: 300},
		{Name: "Sugar", Unit: "g", Amount: 50},
	}
	if !reflect.DeepEqual(list.Items, want) {
		t.Errorf("items = %+v, want %+v", list.Items, want)
	}
	if len(list.Recipes) != 2 || list.Recipes[0].Name != "A" || list.Recipes[0].AuthorName != "alice" {
		t.Errorf("recipes = %+v", list.Recipes)
	}

	text, err := f.shopping.Render(ctx, f.bob, time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range []string{"1. Flour, g - 300", "2. Sugar, g - 50", "A (author: alice)", "B (author: alice)"} {
		if !strings.Contains(text, line) {
			t.Errorf("rendered list lacks %q:\n%s", line, text)
		}
	}
}
