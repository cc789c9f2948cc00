package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

// recipeSelect reads recipes from r with the caller's favorite flag. Needs
// @userID.
const recipeSelect = `SELECT r.id, r.title, r.category,
	COALESCE(r.ingredients, '') AS ingredients,
	COALESCE(r.preparation, '') AS preparation,
	COALESCE(r.image_url, '') AS image_url,
	COALESCE(r.title_pt, '') AS title_pt,
	COALESCE(r.ingredients_pt, '') AS ingredients_pt,
	COALESCE(r.preparation_pt, '') AS preparation_pt,
	EXISTS (SELECT 1 FROM favorite_recipes f WHERE f.recipe_id = r.id AND f.user_id = @userID) AS favorite`

var errRecipeNotFound = errors.New("recipe not found")

// getRecipes lists recipes, optionally for one meal category. The category
// accepts any meal spelling the diary does (e.g. "Lunch" or "Almoço").
// GET /api/recipes?category=Lunch
func (h *Handler) getRecipes(c *gin.Context) {
	userID := c.GetInt("user_id")

	sql := recipeSelect + " FROM recipes r"
	args := pgx.NamedArgs{"userID": userID}
	if cat := c.Query("category"); cat != "" {
		meal, ok := healthmetrics.ParseMealName(cat)
		if !ok {
			apiError(c, http.StatusBadRequest, "category must be one of: Breakfast, Lunch, Dinner, Snacks")
			return
		}
		sql += " WHERE lower(r.category) = ANY(@labels)"
		args["labels"] = healthmetrics.MealLabels(meal)
	}

	recipes, err := queryMany[recipe](h.db, c, sql+" ORDER BY r.title, r.id", args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch recipes")
		return
	}
	if recipes == nil {
		recipes = []recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// getRecipe returns one recipe with the caller's favorite flag.
// GET /api/recipes/:id
func (h *Handler) getRecipe(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	r, err := queryOne[recipe](h.db, c,
		recipeSelect+" FROM recipes r WHERE r.id = @id",
		pgx.NamedArgs{"userID": userID, "id": id})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, r)
}

// toggleFavoriteRecipe flips the recipe in or out of the caller's favorites
// and reports the new state.
// POST /api/recipes/:id/favorite
func (h *Handler) toggleFavoriteRecipe(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var favorite bool
	err = pgx.BeginFunc(c, h.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(c, "SELECT EXISTS (SELECT 1 FROM recipes WHERE id = @id)",
			pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return errRecipeNotFound
		}

		args := pgx.NamedArgs{"userID": userID, "id": id}
		tag, err := tx.Exec(c,
			"DELETE FROM favorite_recipes WHERE user_id = @userID AND recipe_id = @id", args)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			favorite = false
			return nil
		}
		_, err = tx.Exec(c,
			`INSERT INTO favorite_recipes (user_id, recipe_id) VALUES (@userID, @id)
			 ON CONFLICT DO NOTHING`, args)
		favorite = err == nil
		return err
	})
	if errors.Is(err, errRecipeNotFound) {
		apiError(c, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		log.Printf("[toggleFavoriteRecipe] user %d recipe %d: %v", userID, id, err)
		apiError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "favorite": favorite})
}

// getFavoriteRecipes lists the caller's favorites, most recently added first.
// GET /api/favorite-recipes
func (h *Handler) getFavoriteRecipes(c *gin.Context) {
	userID := c.GetInt("user_id")

	recipes, err := queryMany[recipe](h.db, c,
		recipeSelect+` FROM recipes r
		 JOIN favorite_recipes fav ON fav.recipe_id = r.id AND fav.user_id = @userID
		 ORDER BY fav.created_at DESC, r.id`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch favorite recipes")
		return
	}
	if recipes == nil {
		recipes = []recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}
