package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/ymiyake/enquete/internal/client/client"
	"github.com/ymiyake/enquete/internal/client/services"
	"github.com/ymiyake/enquete/internal/logging"
	"github.com/ymiyake/enquete/internal/server/accounts"
	"github.com/ymiyake/enquete/internal/server/metrics"
	"github.com/ymiyake/enquete/internal/server/store"
)

// newEmulator serves the real router and returns a REST client pointed at it.
func newEmulator(t *testing.T) (*httptest.Server, func() *apiclient.RESTClient) {
	t.Helper()
	s := NewServer(store.NewMemoryStore(), accounts.NewManager(), Options{
		SecretKey: []byte("e2e-secret"),
		TokenTTL:  time.Hour,
	}, logging.NewDefault(), metrics.New())

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)

	return ts, func() *apiclient.RESTClient {
		return apiclient.NewRESTClient("e2e-key", ts.URL+"/v1/accounts", ts.URL, 5*time.Second)
	}
}

// TestEndToEnd_SurveyScenario drives the whole stack through the client
// services: Alice registers, sets up her profile and posts a question;
// Bob registers and answers it; the answer listing shows Bob by name.
func TestEndToEnd_SurveyScenario(t *testing.T) {
	_, newClient := newEmulator(t)
	ctx := context.Background()

	// Alice signs up and bootstraps a profile.
	alice := newClient()
	aliceAuth := services.NewAuthService(alice)
	aliceSurvey := services.NewSurveyService(alice)

	aliceSession, err := aliceAuth.SignUp(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	require.True(t, aliceSession.Authenticated())

	profile, err := aliceAuth.LoadProfile(ctx, aliceSession)
	require.NoError(t, err)
	assert.Nil(t, profile, "first visit: no profile yet")

	saved, err := aliceAuth.SaveProfile(ctx, aliceSession, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", saved.Name)

	// A later sign-in finds the stored profile.
	again, err := aliceAuth.SignIn(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	profile, err = aliceAuth.LoadProfile(ctx, again)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alice", profile.Name)

	// Alice posts a question.
	qid, err := aliceSurvey.PostQuestion(ctx, aliceSession, "Lunch?", "Pizza or sushi?")
	require.NoError(t, err)
	require.NotEmpty(t, qid)

	// Bob signs up, sets a profile, and answers.
	bob := newClient()
	bobAuth := services.NewAuthService(bob)
	bobSurvey := services.NewSurveyService(bob)

	bobSession, err := bobAuth.SignUp(ctx, "bob@example.com", "pw456")
	require.NoError(t, err)
	_, err = bobAuth.SaveProfile(ctx, bobSession, "Bob")
	require.NoError(t, err)

	questions, err := bobSurvey.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Lunch?", questions[0].Name)
	assert.Equal(t, aliceSession.UserID, questions[0].Sender)

	aid, err := bobSurvey.PostAnswer(ctx, bobSession, questions[0].ID, "Sushi")
	require.NoError(t, err)
	require.NotEmpty(t, aid)

	// Alice lists the answers and sees Bob by display name.
	answers, err := aliceSurvey.ListAnswers(ctx, qid)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "Sushi", answers[0].Body)
	assert.Equal(t, bobSession.UserID, answers[0].Sender)
	assert.Equal(t, "Bob", aliceSurvey.ResolveName(ctx, answers[0].Sender))

	// A question with no answers lists as empty, not as an error.
	qid2, err := aliceSurvey.PostQuestion(ctx, aliceSession, "Drinks?", "Tea or coffee?")
	require.NoError(t, err)
	empty, err := aliceSurvey.ListAnswers(ctx, qid2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// TestEndToEnd_ListingOrder posts several questions and checks the listing
// reproduces them in creation order.
func TestEndToEnd_ListingOrder(t *testing.T) {
	_, newClient := newEmulator(t)
	ctx := context.Background()

	c := newClient()
	auth := services.NewAuthService(c)
	survey := services.NewSurveyService(c)

	session, err := auth.SignUp(ctx, "carol@example.com", "pw")
	require.NoError(t, err)

	titles := []string{"one", "two", "three"}
	for _, title := range titles {
		_, err := survey.PostQuestion(ctx, session, title, "body of "+title)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond) // distinct key timestamps
	}

	items, err := survey.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, items[i].Name)
	}
}

// TestEndToEnd_InvalidCredentials checks the failure message surfaces
// through the client wrapping.
func TestEndToEnd_InvalidCredentials(t *testing.T) {
	_, newClient := newEmulator(t)
	ctx := context.Background()

	c := newClient()
	auth := services.NewAuthService(c)

	_, err := auth.SignUp(ctx, "dave@example.com", "right")
	require.NoError(t, err)

	_, err = auth.SignIn(ctx, "dave@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrRejected)
	assert.Contains(t, err.Error(), "INVALID_LOGIN_CREDENTIALS")
}
