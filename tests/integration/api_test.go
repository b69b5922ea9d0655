package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/blinkwall/blinkwall-api/internal/handlers"
	authmw "github.com/blinkwall/blinkwall-api/internal/middleware"
	"github.com/blinkwall/blinkwall-api/internal/models"
	"github.com/blinkwall/blinkwall-api/internal/services"
	"github.com/blinkwall/blinkwall-api/pkg/dto"
	"github.com/blinkwall/blinkwall-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAPI wires the HTTP surface against a real database, minus the OAuth
// leg: sessions are minted directly so the flow can start from a signed-in
// student.
func buildAPI(tdb *testutil.TestDB) (http.Handler, *services.SessionService, *services.UserService) {
	userService := services.NewUserService(tdb.DB, testDomain)
	noteService := services.NewNoteService(tdb.DB)
	sessionService := services.NewSessionService(tdb.DB, 168*time.Hour)

	profileHandler := handlers.NewProfileHandler(userService)
	noteHandler := handlers.NewNoteHandler(noteService)

	app := drift.New()
	app.Use(middleware.Recovery())
	app.Use(middleware.BodyParser())

	api := app.Group("/api")

	protected := api.Group("")
	protected.Use(authmw.Auth(sessionService, userService))
	protected.Post("/profile", profileHandler.Complete)
	protected.Get("/notes", noteHandler.List)
	protected.Delete("/notes/:id", noteHandler.Delete)

	posting := api.Group("")
	posting.Use(authmw.Auth(sessionService, userService))
	posting.Use(authmw.RequireProfile())
	posting.Post("/notes", noteHandler.Create)

	return app, sessionService, userService
}

func signIn(t *testing.T, sessions *services.SessionService, user *models.User) map[string]string {
	t.Helper()
	token, err := sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	return map[string]string{"Cookie": testutil.SessionCookieHeader(authmw.SessionCookie, token)}
}

func TestAPI_Integration_FullFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	app, sessions, users := buildAPI(tdb)
	client := testutil.NewHTTPTestClient(t, app)
	ctx := context.Background()

	// A fresh sign-in leaves the profile incomplete.
	student := fixtures.CreateUser(t, testutil.WithIncompleteProfile(), testutil.WithEmail("ananya@campus.edu"))
	headers := signIn(t, sessions, student)

	// Reading works while gated, posting does not.
	rec := client.GET("/api/notes", headers)
	testutil.AssertStatus(t, rec, http.StatusOK)

	rec = client.POST("/api/notes", dto.CreateNoteRequest{Text: "too early"}, headers)
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	// Complete the profile.
	rec = client.POST("/api/profile", dto.CompleteProfileRequest{
		Name:       "Ananya Rao",
		Nickname:   "ana",
		Year:       3,
		Department: "CSE",
	}, headers)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var me dto.UserResponse
	testutil.ParseJSON(t, rec, &me)
	assert.True(t, me.ProfileCompleted)

	// Now the note goes through.
	rec = client.POST("/api/notes", dto.CreateNoteRequest{
		Text:     "Badminton at the old court, six tonight",
		Category: models.CategoryEvents,
	}, headers)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var created dto.NoteResponse
	testutil.ParseJSON(t, rec, &created)
	assert.Equal(t, "ana", created.AuthorNickname)
	assert.Equal(t, models.CategoryEvents, created.Category)

	// The Featured filter excludes an Events note.
	rec = client.GET("/api/notes?category=Featured", headers)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var featured []dto.NoteResponse
	testutil.ParseJSON(t, rec, &featured)
	assert.Empty(t, featured)

	rec = client.GET("/api/notes?category=Events", headers)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var events []dto.NoteResponse
	testutil.ParseJSON(t, rec, &events)
	require.Len(t, events, 1)

	// A different student cannot delete it.
	other := fixtures.CreateUser(t, testutil.WithEmail("rohit@campus.edu"))
	otherHeaders := signIn(t, sessions, other)

	rec = client.DELETE("/api/notes/"+created.ID.String(), otherHeaders)
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	// The author changes nickname; the posted note keeps its snapshot.
	_, err := users.CompleteProfile(ctx, student.ID, "Ananya Rao", "nya", 3, "CSE")
	require.NoError(t, err)

	rec = client.GET("/api/notes", headers)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var feed []dto.NoteResponse
	testutil.ParseJSON(t, rec, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, "ana", feed[0].AuthorNickname)

	// The author deletes their own note.
	rec = client.DELETE("/api/notes/"+created.ID.String(), headers)
	testutil.AssertStatus(t, rec, http.StatusOK)

	rec = client.GET("/api/notes", headers)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var after []dto.NoteResponse
	testutil.ParseJSON(t, rec, &after)
	assert.Empty(t, after)
}

func TestAPI_Integration_NoSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	app, _, _ := buildAPI(tdb)
	client := testutil.NewHTTPTestClient(t, app)

	rec := client.GET("/api/notes", nil)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	rec = client.POST("/api/notes", dto.CreateNoteRequest{Text: "hello"}, nil)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestAPI_Integration_WordLimitEnforced(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	app, sessions, _ := buildAPI(tdb)
	client := testutil.NewHTTPTestClient(t, app)

	student := fixtures.CreateUser(t)
	headers := signIn(t, sessions, student)

	rec := client.POST("/api/notes", dto.CreateNoteRequest{
		Text: "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen",
	}, headers)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	assert.Contains(t, rec.Body.String(), "15 words or less")
}
