package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ymiyake/enquete/internal/client/models"
	"github.com/ymiyake/enquete/internal/client/services"
	"github.com/ymiyake/enquete/internal/logging"
)

// Options carries the stored default credentials the login step may offer
// instead of interactive entry. Both must be set for the offer to appear.
type Options struct {
	DefaultEmail    string
	DefaultPassword string
}

// Flow drives the survey application: login with profile bootstrap, then
// the four user actions. All state (session, profile name, the last listed
// question order) is owned by the Flow and accessed from a single
// goroutine.
type Flow struct {
	auth   services.AuthService
	survey services.SurveyService
	view   View
	opts   Options
	log    logging.Logger

	session     *models.Session
	profileName string

	// lastListed preserves the order of the most recent question listing so
	// ordinal selections refer to what the user saw.
	lastListed []models.QuestionItem
}

func New(auth services.AuthService, survey services.SurveyService, view View, opts Options, log logging.Logger) *Flow {
	return &Flow{auth: auth, survey: survey, view: view, opts: opts, log: log}
}

// LoggedIn reports whether a session has been established.
func (f *Flow) LoggedIn() bool {
	return f.session.Authenticated()
}

// ProfileName returns the display name adopted during profile bootstrap.
func (f *Flow) ProfileName() string {
	return f.profileName
}

// SignIn authenticates with stored or interactively entered credentials and
// bootstraps the profile. A failed authentication is terminal for the
// session: the error is shown and returned, and no state changes.
func (f *Flow) SignIn(ctx context.Context) error {
	email, password, err := f.collectCredentials()
	if err != nil {
		return err
	}

	f.view.Show("Signing in...")
	session, err := f.auth.SignIn(ctx, email, password)
	if err != nil {
		f.view.Show("Sign-in failed: " + err.Error())
		return err
	}
	f.session = session
	f.view.Show(fmt.Sprintf("Signed in (user id: %s)", session.UserID))

	return f.bootstrapProfile(ctx)
}

// SignUp creates a new account and bootstraps the profile.
func (f *Flow) SignUp(ctx context.Context) error {
	email, err := f.view.PromptText("Email")
	if err != nil {
		return err
	}
	password, err := f.view.PromptPassword("Password")
	if err != nil {
		return err
	}

	f.view.Show("Creating account...")
	session, err := f.auth.SignUp(ctx, email, password)
	if err != nil {
		f.view.Show("Sign-up failed: " + err.Error())
		return err
	}
	f.session = session
	f.view.Show(fmt.Sprintf("Account created (user id: %s)", session.UserID))

	return f.bootstrapProfile(ctx)
}

func (f *Flow) collectCredentials() (email, password string, err error) {
	if f.opts.DefaultEmail != "" && f.opts.DefaultPassword != "" {
		useStored, err := f.view.PromptText("Use the stored account? (y/n)")
		if err != nil {
			return "", "", err
		}
		if strings.EqualFold(strings.TrimSpace(useStored), "y") {
			return f.opts.DefaultEmail, f.opts.DefaultPassword, nil
		}
	}

	email, err = f.view.PromptText("Email")
	if err != nil {
		return "", "", err
	}
	password, err = f.view.PromptPassword("Password")
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

// bootstrapProfile reads the user's profile and, when it is absent or has
// no display name, prompts for one and stores the record. The adopted name
// is kept for the session.
func (f *Flow) bootstrapProfile(ctx context.Context) error {
	profile, err := f.auth.LoadProfile(ctx, f.session)
	if err != nil {
		f.view.Show("Could not read profile: " + err.Error())
		return err
	}

	if profile != nil {
		f.profileName = profile.Name
		f.view.Show("Welcome back, " + profile.Name + "!")
		return nil
	}

	f.view.Show("Looks like this is your first visit. Let's set up your profile.")
	name, err := f.view.PromptText("Your name (leave blank to use your email)")
	if err != nil {
		return err
	}

	saved, err := f.auth.SaveProfile(ctx, f.session, name)
	if err != nil {
		f.view.Show("Could not save profile: " + err.Error())
		return err
	}
	f.profileName = saved.Name
	f.view.Show("Profile saved. Welcome, " + saved.Name + "!")
	return nil
}

// ListQuestions fetches and displays the questions collection, remembering
// the displayed order for later ordinal selections.
func (f *Flow) ListQuestions(ctx context.Context) {
	items, err := f.survey.ListQuestions(ctx)
	if err != nil {
		f.lastListed = nil
		f.log.Error(ctx, "questions listing failed", "err", err)
		f.view.Show("Could not load questions: " + err.Error())
		return
	}
	f.lastListed = items

	if len(items) == 0 {
		f.view.Show("(no questions yet)")
		return
	}

	f.view.Show("Questions:")
	for i, q := range items {
		author := f.survey.ResolveName(ctx, q.Sender)
		f.view.Show(
			fmt.Sprintf("  %d. %s", i+1, q.Name),
			fmt.Sprintf("     %s", preview(q.Body, 30)),
			fmt.Sprintf("     by %s", author),
		)
	}
}

// PostQuestion collects a title and body and stores a new question
// attributed to the current user.
func (f *Flow) PostQuestion(ctx context.Context) {
	title, err := f.view.PromptText("Question title")
	if err != nil {
		return
	}
	if strings.TrimSpace(title) == "" {
		f.view.Show("A title is required.")
		return
	}

	body, err := f.view.PromptText("Question body")
	if err != nil {
		return
	}
	if strings.TrimSpace(body) == "" {
		f.view.Show("A body is required.")
		return
	}

	id, err := f.survey.PostQuestion(ctx, f.session, title, body)
	if err != nil {
		f.log.Error(ctx, "question post failed", "err", err)
		f.view.Show("Could not post the question: " + err.Error())
		return
	}
	f.view.Show("Question posted (id: " + id + ")")
}

// PostAnswer lists questions, asks for an ordinal selection, collects an
// answer body and stores it under the selected question.
func (f *Flow) PostAnswer(ctx context.Context) {
	q, ok := f.selectQuestion(ctx, "Question number to answer")
	if !ok {
		return
	}

	f.view.Show("Selected: "+q.Name, q.Body)

	body, err := f.view.PromptText("Your answer")
	if err != nil {
		return
	}
	if strings.TrimSpace(body) == "" {
		f.view.Show("An answer is required.")
		return
	}

	if _, err := f.survey.PostAnswer(ctx, f.session, q.ID, body); err != nil {
		f.log.Error(ctx, "answer post failed", "err", err, "question", q.ID)
		f.view.Show("Could not post the answer: " + err.Error())
		return
	}
	f.view.Show(fmt.Sprintf("Answered %q with %q", q.Name, preview(body, 20)))
}

// ListAnswers lists questions, asks for an ordinal selection, and displays
// the answers stored under the selected question. An empty collection is
// reported as "no answers", not as an error.
func (f *Flow) ListAnswers(ctx context.Context) {
	q, ok := f.selectQuestion(ctx, "Question number to inspect")
	if !ok {
		return
	}

	f.view.Show("Question: "+q.Name, q.Body)

	items, err := f.survey.ListAnswers(ctx, q.ID)
	if err != nil {
		f.log.Error(ctx, "answers listing failed", "err", err, "question", q.ID)
		f.view.Show("Could not load answers: " + err.Error())
		return
	}
	if len(items) == 0 {
		f.view.Show("(no answers)")
		return
	}

	f.view.Show(fmt.Sprintf("Answers (%d):", len(items)))
	for i, a := range items {
		author := f.survey.ResolveName(ctx, a.Sender)
		f.view.Show(
			fmt.Sprintf("  %d. %s", i+1, a.Body),
			fmt.Sprintf("     by %s", author),
		)
	}
}

// selectQuestion refreshes the question listing and reads an ordinal
// selection against it. Non-numeric or out-of-range input aborts the
// current action with a message.
func (f *Flow) selectQuestion(ctx context.Context, prompt string) (models.QuestionItem, bool) {
	f.ListQuestions(ctx)
	if len(f.lastListed) == 0 {
		return models.QuestionItem{}, false
	}

	input, err := f.view.PromptText(prompt)
	if err != nil {
		return models.QuestionItem{}, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		f.view.Show("Please enter a number.")
		return models.QuestionItem{}, false
	}
	if n < 1 || n > len(f.lastListed) {
		f.view.Show("That number is out of range.")
		return models.QuestionItem{}, false
	}
	return f.lastListed[n-1], true
}

func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
