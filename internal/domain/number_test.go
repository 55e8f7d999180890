package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		`12`:       12,
		`"12"`:     12,
		`" 7.5 "`:  7.5,
		`"abc"`:    0,
		`null`:     0,
		`true`:     0,
		`{}`:       0,
		`[]`:       0,
		`""`:       0,
		`"1e400"`:  0,
		`-3`:       -3,
		`"0.3333"`: 0.3333,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseNumber([]byte(raw)), raw)
	}
}

func TestItemDetail_LenientDecode(t *testing.T) {
	raw := `{
		"publishedfileid": "1559212036",
		"creator": "76561198000000000",
		"title": "CF",
		"file_size": "1024",
		"time_updated": 1700000000,
		"banned": 1,
		"ban_reason": "",
		"subscriptions": "300",
		"favorited": "x",
		"tags": [{"tag": "Mod"}],
		"vote_data": {"score": "0.8", "votes_up": 8, "votes_down": 2}
	}`

	var d ItemDetail
	require.NoError(t, json.Unmarshal([]byte(raw), &d))

	assert.Equal(t, "1559212036", d.PublishedFileID)
	assert.Equal(t, 1024, d.FileSize.Int())
	assert.Equal(t, 1700000000, d.TimeUpdated.Int())
	assert.True(t, bool(d.Banned))
	assert.Equal(t, 300, d.Subscriptions.Int())
	assert.Zero(t, d.Favorited.Float())
	require.NotNil(t, d.VoteData)
	assert.Equal(t, 0.8, d.VoteData.Score.Number.Float())
	assert.Equal(t, []Tag{{Tag: "Mod"}}, d.Tags)
}

func TestFlag(t *testing.T) {
	for raw, want := range map[string]bool{
		`true`: true, `false`: false, `1`: true, `0`: false,
		`"true"`: true, `"1"`: true, `"no"`: false, `null`: false,
	} {
		var f Flag
		require.NoError(t, json.Unmarshal([]byte(raw), &f))
		assert.Equal(t, want, bool(f), raw)
	}
}

func TestCandidateRef_IsBanned(t *testing.T) {
	assert.True(t, CandidateRef{Banned: true}.IsBanned())
	assert.True(t, CandidateRef{BanReason: "copyright"}.IsBanned())
	assert.False(t, CandidateRef{BanReason: "  "}.IsBanned())
	assert.False(t, CandidateRef{}.IsBanned())
}

func TestSearchQuery_BannedMode(t *testing.T) {
	assert.True(t, SearchQuery{Text: "show banned mods"}.BannedMode())
	assert.True(t, SearchQuery{Text: "  SHOW BANNED MODS "}.BannedMode())
	assert.False(t, SearchQuery{Text: "show banned"}.BannedMode())
}

func TestSearchRequest_ToQuery(t *testing.T) {
	var req SearchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"query":"cf","page":"3","appId":" 107410 "}`), &req))
	assert.Equal(t, SearchQuery{Text: "cf", Page: 3, AppID: "107410"}, req.ToQuery())

	assert.Equal(t, 1, SearchRequest{}.ToQuery().Page)
	assert.Equal(t, 1, SearchRequest{Page: -2}.ToQuery().Page)
}

func TestEnrichedItem_JSON(t *testing.T) {
	score := 4.0
	item := EnrichedItem{
		ItemDetail:  ItemDetail{PublishedFileID: "1", Title: "A"},
		CreatorName: UnknownCreator,
		Rating:      Rating{Score: &score, Votes: 10, HasRating: true},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "1", out["publishedfileid"])
	assert.Equal(t, "Unknown", out["creator_name"])
	assert.Contains(t, out, "creator_profile")
	assert.Nil(t, out["creator_profile"])
	assert.NotContains(t, out, "change_notes")
	assert.Equal(t, map[string]interface{}{
		"score": 4.0, "votes": 10.0, "has_rating": true, "unrated": false,
	}, out["rating"])

	data, err = json.Marshal(UnratedRating())
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":null,"votes":0,"has_rating":false,"unrated":true}`, string(data))
}
