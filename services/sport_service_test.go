package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

func TestCreateSportDerivesSlug(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "alice", false)

	resp := request(t, app, http.MethodPost, "/api/sports",
		map[string]string{"name": "Table Tennis"}, tokenFor(t, cfg, user))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sport models.Sport
	decode(t, resp, &sport)
	assert.Equal(t, "Table Tennis", sport.Name)
	assert.Equal(t, "table-tennis", sport.Slug)
}

func TestCreateSportRequiresAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/api/sports",
		map[string]string{"name": "Handball"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateSportDuplicateName(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "alice", false)
	token := tokenFor(t, cfg, user)

	resp := request(t, app, http.MethodPost, "/api/sports",
		map[string]string{"name": "Handball"}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodPost, "/api/sports",
		map[string]string{"name": "Handball"}, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateSportRecomputesSlug(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "alice", false)
	sport := createSport(t, db, "Squash")

	resp := request(t, app, http.MethodPatch, "/api/sports/"+sport.ID,
		map[string]string{"name": "Beach Volley"}, tokenFor(t, cfg, user))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Sport
	decode(t, resp, &updated)
	assert.Equal(t, "Beach Volley", updated.Name)
	assert.Equal(t, "beach-volley", updated.Slug)
}

func TestDeleteSportProtectedWhileReferenced(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "alice", false)
	sport := createSport(t, db, "Squash")
	activity := createActivity(t, db, sport, user, 4)
	token := tokenFor(t, cfg, user)

	// Blocked while an activity references the sport.
	resp := request(t, app, http.MethodDelete, "/api/sports/"+sport.ID, nil, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// After the activity is gone the sport can be deleted.
	resp = request(t, app, http.MethodDelete, "/api/activities/"+activity.ID, nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = request(t, app, http.MethodDelete, "/api/sports/"+sport.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestListSportsPublicAndPaginated(t *testing.T) {
	app, db, _ := newTestApp(t)
	createSport(t, db, "Basket")
	createSport(t, db, "Football")

	resp := request(t, app, http.MethodGet, "/api/sports", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page utils.Page
	decode(t, resp, &page)
	assert.Equal(t, int64(2), page.Count)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, utils.PageSize, page.PageSize)
}
