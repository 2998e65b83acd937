package worktime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"timekeeper/bot/scenario"
	"timekeeper/entity"
	"timekeeper/internal/repository"
	"timekeeper/internal/sheets"
	"timekeeper/internal/storage"
	"timekeeper/internal/testutil"
)

type fixture struct {
	cache    *testutil.FakeCache
	api      *testutil.MockSheets
	repo     *repository.Repository
	notifier *testutil.RecordingNotifier
	scenario *Scenario
	user     *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cache := testutil.NewFakeCache()
	testutil.SeedList(t, cache, storage.WorkTypesKey(), []entity.WorkType{
		{Name: "Разработка"},
		{Name: "Встреча"},
	})
	testutil.SeedList(t, cache, storage.ClientsKey(), []entity.Client{
		{Name: "Acme"},
		{Name: "Закрытый клиент", Completed: true},
	})

	api := new(testutil.MockSheets)
	repo := repository.New(testutil.TestConfig(), cache, api, testutil.Logger())
	notifier := &testutil.RecordingNotifier{}

	return &fixture{
		cache:    cache,
		api:      api,
		repo:     repo,
		notifier: notifier,
		scenario: New(repo, notifier, testutil.Logger()),
		user: &entity.User{
			ID:       "1001",
			Fullname: "Иванов Иван",
			JobTitle: "Инженер",
			Active:   true,
			ChatID:   77,
		},
	}
}

func (f *fixture) resume(t *testing.T, message string) entity.Response {
	t.Helper()
	scn, err := f.repo.Scenarios.Get(context.Background(), f.user)
	require.NoError(t, err)
	require.NotNil(t, scn, "scenario must be active")
	response, err := f.scenario.Resume(context.Background(), f.user, scn, &message)
	require.NoError(t, err)
	return response
}

func (f *fixture) currentStep(t *testing.T) int {
	t.Helper()
	scn, err := f.repo.Scenarios.Get(context.Background(), f.user)
	require.NoError(t, err)
	require.NotNil(t, scn)
	return scn.CurrentStep
}

func TestScenario_FullWalk(t *testing.T) {
	f := newFixture(t)
	conf := testutil.TestConfig()

	f.api.On("Append", mock.Anything, conf.Google.SpreadsheetId,
		sheets.Range{Sheet: conf.Google.ReportSheetName, Cells: conf.Google.ReportSheetRange},
		[][]string{{"31.12.2026", "1001", "Иванов Иван", "Инженер", "Разработка", "Acme", "01:30", "сделал задачу"}},
	).Return(42, nil)

	response, err := f.scenario.Start(context.Background(), f.user)
	require.NoError(t, err)
	assert.Equal(t, entity.TypeCalendar, response.Type)

	response = f.resume(t, "31.12.2026")
	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyChooseWorkType)
	assert.Equal(t, [][]string{{"Разработка"}, {"Встреча"}}, response.ReplyKeyboard.Buttons)

	response = f.resume(t, "Разработка")
	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyChooseClient)
	assert.Equal(t, [][]string{{"Acme"}}, response.ReplyKeyboard.Buttons,
		"completed clients are hidden")

	response = f.resume(t, "Acme")
	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyEnterTime)

	response = f.resume(t, "1:30")
	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyEnterComment)

	response = f.resume(t, "сделал задачу")
	assert.Equal(t, entity.TypeFinal, response.Type)

	f.api.AssertExpectations(t)

	scn, err := f.repo.Scenarios.Get(context.Background(), f.user)
	require.NoError(t, err)
	assert.Nil(t, scn, "committed scenario is torn down")
	assert.Contains(t, f.notifier.Last(), replySaved)
}

func TestScenario_InvalidDateRepeatsPrompt(t *testing.T) {
	f := newFixture(t)

	_, err := f.scenario.Start(context.Background(), f.user)
	require.NoError(t, err)

	response := f.resume(t, "вчера")
	require.Equal(t, entity.TypeCalendar, response.Type)
	assert.Contains(t, response.Calendar.Messages, replyWrongDate)
	assert.Equal(t, 1, f.currentStep(t))
}

func TestScenario_UnknownWorkTypeRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.scenario.Start(context.Background(), f.user)
	require.NoError(t, err)
	f.resume(t, "31.12.2026")

	response := f.resume(t, "Чаепитие")
	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyWrongWorkType)
	assert.Equal(t, 2, f.currentStep(t))
}

func TestScenario_UnknownClientRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.scenario.Start(context.Background(), f.user)
	require.NoError(t, err)
	f.resume(t, "31.12.2026")
	f.resume(t, "Разработка")

	response := f.resume(t, "Закрытый клиент")
	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyWrongClient,
		"completed clients are not selectable")
	assert.Equal(t, 3, f.currentStep(t))
}

func TestScenario_InvalidDurationRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.scenario.Start(context.Background(), f.user)
	require.NoError(t, err)
	f.resume(t, "31.12.2026")
	f.resume(t, "Разработка")
	f.resume(t, "Acme")

	response := f.resume(t, "25:00")
	require.Equal(t, entity.TypeReplyKeyboard, response.Type)
	assert.Contains(t, response.ReplyKeyboard.Messages, replyWrongTime)
	assert.Equal(t, 4, f.currentStep(t))
}

func TestScenario_SkippedCommentCommitsEmpty(t *testing.T) {
	f := newFixture(t)
	conf := testutil.TestConfig()

	f.api.On("Append", mock.Anything, conf.Google.SpreadsheetId, mock.Anything,
		[][]string{{"31.12.2026", "1001", "Иванов Иван", "Инженер", "Встреча", "Acme", "02:00", ""}},
	).Return(7, nil)

	_, err := f.scenario.Start(context.Background(), f.user)
	require.NoError(t, err)
	f.resume(t, "31.12.2026")
	f.resume(t, "Встреча")
	f.resume(t, "Acme")
	f.resume(t, "02:00")

	response := f.resume(t, scenario.Skip)
	assert.Equal(t, entity.TypeFinal, response.Type)

	f.api.AssertExpectations(t)
}

func TestScenario_FailedCommitKeepsScenarioForRetry(t *testing.T) {
	f := newFixture(t)

	f.api.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0, errors.New("quota exceeded")).Once()
	f.api.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(42, nil).Once()

	_, err := f.scenario.Start(context.Background(), f.user)
	require.NoError(t, err)
	f.resume(t, "31.12.2026")
	f.resume(t, "Разработка")
	f.resume(t, "Acme")
	f.resume(t, "01:00")

	response := f.resume(t, "комментарий")
	require.Equal(t, entity.TypeTextMessages, response.Type)
	assert.Contains(t, response.Text.Messages, replySaveFailed)

	// The scenario survived the failure; any next message retries the commit.
	response = f.resume(t, "еще раз")
	assert.Equal(t, entity.TypeFinal, response.Type)

	f.api.AssertExpectations(t)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "preset", input: "01:30", want: "01:30", ok: true},
		{name: "unpadded", input: "1:5", want: "01:05", ok: true},
		{name: "surrounding spaces", input: " 2:45 ", want: "02:45", ok: true},
		{name: "max values", input: "23:59", want: "23:59", ok: true},
		{name: "hours out of range", input: "24:00", ok: false},
		{name: "minutes out of range", input: "10:60", ok: false},
		{name: "negative", input: "-1:30", ok: false},
		{name: "no separator", input: "130", ok: false},
		{name: "trailing garbage", input: "1:5x", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDuration(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
