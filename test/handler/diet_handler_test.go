package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unohub/unohub/internal/pkg/errcode"
	"github.com/unohub/unohub/test/testutil"
)

func TestDietDayFlow(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")

	resp, parsed := doJSON(t, router, http.MethodGet, "/api/v1/diet/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrNotFound, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodPut, "/api/v1/diet/profile", token, map[string]interface{}{
		"gender":         "male",
		"age":            30,
		"weight":         80,
		"height":         180,
		"activity_level": 1.2,
		"goal":           "maintain",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)
	var profile struct {
		TargetCalories int `json:"target_calories"`
		TargetWater    int `json:"target_water"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &profile))
	require.Equal(t, 2136, profile.TargetCalories)
	require.Equal(t, 2800, profile.TargetWater)

	resp, parsed = doJSON(t, router, http.MethodPost, "/api/v1/diet/meals", token, map[string]interface{}{
		"day":       "2026-08-29",
		"meal_type": "breakfast",
		"food_name": "oatmeal",
		"calories":  350,
		"protein":   12,
		"carbs":     60,
		"fats":      7,
		"save_food": true,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)
	var meal struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &meal))
	require.NotEmpty(t, meal.ID)

	resp, parsed = doJSON(t, router, http.MethodPost, "/api/v1/diet/water", token, map[string]interface{}{
		"day":    "2026-08-29",
		"amount": 400,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/diet/day?day=2026-08-29", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)
	var day struct {
		Meals  []json.RawMessage `json:"meals"`
		Totals struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
		Water   int `json:"water"`
		Targets struct {
			Calories int `json:"calories"`
		} `json:"targets"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &day))
	require.Len(t, day.Meals, 1)
	require.InDelta(t, 350.0, day.Totals.Calories, 1e-9)
	require.Equal(t, 400, day.Water)
	require.Equal(t, 2136, day.Targets.Calories)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/diet/foods?q=oat", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var foods []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &foods))
	require.Len(t, foods, 1)
	require.Equal(t, "oatmeal", foods[0].Name)

	resp, parsed = doJSON(t, router, http.MethodDelete, "/api/v1/diet/meals/"+meal.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/diet/day?day=2026-08-29", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(parsed.Data, &day))
	require.Empty(t, day.Meals)
}

func TestDietValidation(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")

	resp, parsed := doJSON(t, router, http.MethodGet, "/api/v1/diet/day?day=29-08-2026", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrInvalid, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodPut, "/api/v1/diet/profile", token, map[string]interface{}{
		"gender":         "male",
		"age":            30,
		"weight":         0,
		"height":         180,
		"activity_level": 1.2,
		"goal":           "maintain",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrInvalid, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodPost, "/api/v1/diet/meals", token, map[string]interface{}{
		"day":       "2026-08-29",
		"meal_type": "brunch",
		"food_name": "toast",
		"calories":  120,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrInvalid, parsed.Code)
}
