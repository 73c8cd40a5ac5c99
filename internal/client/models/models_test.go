package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipePage_DecodesEnvelope(t *testing.T) {
	body := `{"meta":{"limit":20,"offset":0,"total":42},"items":[{"id":3,"title":"Tacos","is_public":true,"calories":520,"photo_url":null}]}`

	var p RecipePage
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, 42, p.Total)
	require.Len(t, p.Items, 1)
	assert.Equal(t, int64(3), p.Items[0].ID)
	assert.Equal(t, "Tacos", p.Items[0].Title)
	assert.True(t, p.Items[0].IsPublic)
	require.NotNil(t, p.Items[0].Calories)
	assert.Equal(t, 520.0, *p.Items[0].Calories)
	assert.Nil(t, p.Items[0].PhotoURL)
}

func TestRecipePage_DecodesBareArray(t *testing.T) {
	var p RecipePage
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"}]`), &p))

	assert.Equal(t, 2, p.Total)
	assert.Len(t, p.Items, 2)
}

func TestRecipePage_EnvelopeWithoutMetaCountsItems(t *testing.T) {
	var p RecipePage
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":1,"title":"a"}]}`), &p))
	assert.Equal(t, 1, p.Total)

	var empty RecipePage
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Items)
}

func TestRecipePage_RejectsGarbage(t *testing.T) {
	var p RecipePage
	require.Error(t, json.Unmarshal([]byte(`"nope"`), &p))
}

func TestRecipePayload_EncodesNullsExplicitly(t *testing.T) {
	b, err := json.Marshal(RecipePayload{Title: "Tacos"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, 14)
	assert.Nil(t, m["calories"])
	assert.Contains(t, m, "review")
	assert.Equal(t, false, m["is_public"])
}

func TestAuthResponse_KeepsExtraFields(t *testing.T) {
	var a AuthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"jwt","token_type":"bearer","user_id":9}`), &a))

	assert.Equal(t, "jwt", a.AccessToken)
	assert.Equal(t, "bearer", a.TokenType)
	assert.EqualValues(t, 9, a.Extra["user_id"])
}

func TestFeedQuery_Values(t *testing.T) {
	protein := 20.0
	cal := 600.5

	v := FeedQuery{Q: "taco", MinProtein: &protein, MaxCalories: &cal, Limit: 20}.Values()

	assert.Equal(t, "20", v.Get("limit"))
	assert.Equal(t, "0", v.Get("offset"))
	assert.Equal(t, "taco", v.Get("q"))
	assert.Equal(t, "20", v.Get("min_protein"))
	assert.Equal(t, "600.5", v.Get("max_calories"))
	assert.False(t, v.Has("cuisine"))
	assert.False(t, v.Has("min_rating"))
}
