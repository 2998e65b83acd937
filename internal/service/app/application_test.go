package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/bot/scenario"
	"timekeeper/entity"
	"timekeeper/internal/repository"
	"timekeeper/internal/storage"
	"timekeeper/internal/testutil"
)

const (
	testMenuButton = "Тестовый отчет"
	testFlowName   = "test_flow"
)

type fixture struct {
	cache    *testutil.FakeCache
	repo     *repository.Repository
	notifier *testutil.RecordingNotifier
	app      *Application
	user     *entity.User
}

// newFixture builds an application with one registered two-step flow and a
// seeded users handbook.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	cache := testutil.NewFakeCache()
	testutil.SeedList(t, cache, storage.UsersListKey(), []entity.User{
		{ID: "1001", Fullname: "Иванов Иван", Active: true},
		{ID: "2002", Fullname: "Уволенный Сотрудник", Active: false},
	})

	repo := repository.New(testutil.TestConfig(), cache, new(testutil.MockSheets), testutil.Logger())
	notifier := &testutil.RecordingNotifier{}

	application := New(repo, notifier, testutil.Logger())

	prompt := func(text string) scenario.StepFunc {
		return func(_ context.Context, _ *entity.User, _ *entity.Scenario, message *string) scenario.StepResult {
			if message == nil {
				return scenario.StepResult{Response: entity.NewTextResponse(text)}
			}
			return scenario.StepResult{Result: message}
		}
	}
	runner := scenario.NewRunner(testFlowName,
		map[int]scenario.StepFunc{
			1: prompt("вопрос 1"),
			2: prompt("вопрос 2"),
		},
		func(_ context.Context, u *entity.User, _ *entity.Scenario) (entity.Response, error) {
			if err := repo.Scenarios.Delete(context.Background(), u); err != nil {
				return entity.Response{}, err
			}
			return entity.NewFinalResponse(), nil
		},
		repo.Scenarios, testutil.Logger(),
	)
	application.Register(testMenuButton, runner)

	return &fixture{
		cache:    cache,
		repo:     repo,
		notifier: notifier,
		app:      application,
		user:     &entity.User{ID: "1001", Fullname: "Иванов Иван", Active: true, ChatID: 77},
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.repo.Users.Upsert(context.Background(), f.user))
}

func (f *fixture) execute(t *testing.T, message string) entity.Response {
	t.Helper()
	user, err := f.app.Auth(context.Background(), f.user.ChatID)
	require.NoError(t, err)
	response, err := f.app.Execute(context.Background(), &message, user, f.user.ChatID)
	require.NoError(t, err)
	return response
}

func TestApplication_UnauthenticatedGetsLoginPrompt(t *testing.T) {
	f := newFixture(t)

	response, err := f.app.Execute(context.Background(), nil, nil, 77)

	require.NoError(t, err)
	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, replyPleaseAuth)
}

func TestApplication_AuthenticateWrongCode(t *testing.T) {
	f := newFixture(t)

	response := f.execute(t, "9999")

	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, replyWrongCode)
	assert.False(t, f.cache.Has(storage.UserKey(77)), "wrong code leaves no session")
}

func TestApplication_AuthenticateInactiveCode(t *testing.T) {
	f := newFixture(t)

	response := f.execute(t, "2002")

	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, replyWrongCode,
		"inactive users cannot log in")
}

func TestApplication_AuthenticateSuccess(t *testing.T) {
	f := newFixture(t)

	response := f.execute(t, "1001")

	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyChooseMenu)
	assert.True(t, f.cache.Has(storage.UserKey(77)), "session is bound to the chat")
	assert.Contains(t, f.notifier.Last(), "Иванов Иван")
}

func TestApplication_UnknownTextFallsBackToMenu(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	response := f.execute(t, "что-то непонятное")

	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyChooseMenu)
	assert.Contains(t, response.ReplyKeyboard.Buttons, []string{testMenuButton})
}

func TestApplication_MenuPickStartsScenario(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	response := f.execute(t, testMenuButton)

	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, "вопрос 1")
	assert.True(t, f.cache.Has(storage.ScenarioKey(77)))
}

func TestApplication_ActiveScenarioConsumesMessages(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.execute(t, testMenuButton)

	response := f.execute(t, "ответ 1")

	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, "вопрос 2")
}

func TestApplication_BackReasksPreviousStep(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.execute(t, testMenuButton)
	f.execute(t, "ответ 1")

	response, err := f.app.Back(context.Background(), f.user)

	require.NoError(t, err)
	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, "вопрос 1")

	scn, err := f.repo.Scenarios.Get(context.Background(), f.user)
	require.NoError(t, err)
	require.NotNil(t, scn)
	assert.Equal(t, 1, scn.CurrentStep)
	assert.Nil(t, scn.StepResult(1), "the answer is forgotten")
}

func TestApplication_BackWithoutScenarioShowsMenu(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	response, err := f.app.Back(context.Background(), f.user)

	require.NoError(t, err)
	assert.Equal(t, entity.TypeReplyKeyboard, response.Type)
}

func TestApplication_ResetRestartsScenario(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.execute(t, testMenuButton)
	f.execute(t, "ответ 1")

	response, err := f.app.Reset(context.Background(), f.user)

	require.NoError(t, err)
	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, "вопрос 1")
	assert.Equal(t, testMenuButton, f.notifier.Last(),
		"reset reminds which flow is active")

	scn, err := f.repo.Scenarios.Get(context.Background(), f.user)
	require.NoError(t, err)
	require.NotNil(t, scn)
	assert.Equal(t, 1, scn.CurrentStep)
	assert.Len(t, scn.Steps, 1)
}

func TestApplication_LogoutTearsDownSession(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.execute(t, testMenuButton)

	response, err := f.app.Logout(context.Background(), f.user)

	require.NoError(t, err)
	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, replyPleaseAuth)
	assert.False(t, f.cache.Has(storage.UserKey(77)))
	assert.False(t, f.cache.Has(storage.ScenarioKey(77)))
}

func TestApplication_StartClearsInFlightState(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.execute(t, testMenuButton)

	response, err := f.app.Start(context.Background(), f.user)

	require.NoError(t, err)
	assert.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.False(t, f.cache.Has(storage.ScenarioKey(77)))
	assert.True(t, f.cache.Has(storage.UserKey(77)), "start keeps the session")
}

func TestApplication_UnknownPersistedScenarioDropped(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	require.NoError(t, f.repo.Scenarios.Upsert(context.Background(), f.user, entity.NewScenario("retired_flow")))

	response := f.execute(t, "любой текст")

	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyChooseMenu)
	assert.False(t, f.cache.Has(storage.ScenarioKey(77)))
}

func TestApplication_SessionOfDeactivatedUserInvalidated(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	// The user goes inactive in the handbook behind the session's back.
	testutil.SeedList(t, f.cache, storage.UsersListKey(), []entity.User{
		{ID: "1001", Fullname: "Иванов Иван", Active: false},
	})

	user, err := f.app.Auth(context.Background(), 77)

	require.NoError(t, err)
	assert.Nil(t, user, "stale session reads as unauthenticated")
	assert.False(t, f.cache.Has(storage.UserKey(77)), "stale session is deleted eagerly")
}
