package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RomanKim94/foodgram/entity"

	"github.com/gin-gonic/gin"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPaginatorPage(t *testing.T) {
	p := Paginator{BaseURL: "http://testserver", DefaultSize: 6, MaxSize: 10}
	cases := []struct {
		target string
		want   entity.Page
	}{
		{"/api/recipes", entity.Page{Number: 1, Size: 6}},
		{"/api/recipes?page=3&limit=4", entity.Page{Number: 3, Size: 4}},
		{"/api/recipes?page=0&limit=-1", entity.Page{Number: 1, Size: 6}},
		{"/api/recipes?limit=500", entity.Page{Number: 1, Size: 10}},
	}
	for _, tc := range cases {
		c, _ := testContext(tc.target)
		if got := p.Page(c); got != tc.want {
			t.Errorf("Page(%s) = %+v, want %+v", tc.target, got, tc.want)
		}
	}
}

func TestPaginatorRespond(t *testing.T) {
	p := Paginator{BaseURL: "http://testserver", DefaultSize: 2, MaxSize: 10}
	c, w := testContext("/api/recipes?page=2&limit=2&tags=lunch")
	p.Respond(c, p.Page(c), 5, []int{3, 4})

	var body struct {
		Count    int64   `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []int   `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 5 || len(body.Results) != 2 {
		t.Errorf("body = %+v", body)
	}
	if body.Next == nil || *body.Next != "http://testserver/api/recipes?limit=2&page=3&tags=lunch" {
		t.Errorf("next = %v", body.Next)
	}
	if body.Previous == nil || *body.Previous != "http://testserver/api/recipes?limit=2&tags=lunch" {
		t.Errorf("previous = %v", body.Previous)
	}

	c, w = testContext("/api/recipes?page=3&limit=2")
	p.Respond(c, p.Page(c), 5, []int{5})
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Next != nil {
		t.Errorf("last page next = %v", *body.Next)
	}
}

func TestPaginatorHugePage(t *testing.T) {
	p := Paginator{BaseURL: "http://testserver", DefaultSize: 6, MaxSize: 10}
	c, w := testContext("/api/recipes?page=9223372036854775807&limit=10")
	page := p.Page(c)
	if off := page.Offset(); off != entity.MaxOffset {
		t.Fatalf("offset = %d", off)
	}
	p.Respond(c, page, 5, []int{})

	var body struct {
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Next != nil {
		t.Errorf("next = %v", *body.Next)
	}
	if body.Previous == nil {
		t.Error("previous link missing")
	}
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		key    string
	}{
		{entity.FieldError(entity.CodeDuplicateReference, "ingredients", "Duplicate."), http.StatusBadRequest, "ingredients"},
		{entity.DetailError(entity.CodeNotRecipeAuthor, "Forbidden."), http.StatusForbidden, "detail"},
		{entity.ErrRecipeNotFound, http.StatusNotFound, "detail"},
		{entity.ErrInvalidCredentials, http.StatusUnauthorized, "detail"},
		{entity.ErrNotMember, http.StatusBadRequest, "detail"},
		{errors.New("db down"), http.StatusInternalServerError, "detail"},
	}
	for _, tc := range cases {
		c, w := testContext("/")
		respondError(c, tc.err)
		if w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := body[tc.key]; !ok {
			t.Errorf("%v: body %v lacks %q", tc.err, body, tc.key)
		}
	}
}

func TestRecipesLimit(t *testing.T) {
	for target, want := range map[string]int{
		"/":                  -1,
		"/?recipes_limit=3":  3,
		"/?recipes_limit=0":  0,
		"/?recipes_limit=-2": -1,
		"/?recipes_limit=x":  -1,
	} {
		c, _ := testContext(target)
		if got := recipesLimit(c); got != want {
			t.Errorf("recipesLimit(%s) = %d, want %d", target, got, want)
		}
	}
}
