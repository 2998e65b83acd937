// Package app is the dispatch layer between the chat transport and the
// scenario engine: it gates every message on authentication, routes menu
// picks into scenario starts, resumes the active scenario and implements
// the navigation commands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"timekeeper/bot/scenario"
	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/repository"
)

// Top-level menu buttons; each starts its scenario.
const (
	MenuTimeReport   = "Отчет по рабочему времени"
	MenuClientReport = "Отчет по клиентам"
)

const (
	replyPleaseAuth    = "Для работы с ботом необходимо авторизоваться"
	replyEnterCode     = "Введите ваш уникальный код"
	replyWrongCode     = "Неверный код"
	replyChooseMenu    = "Выберите пункт меню"
	replyAuthenticated = "Вы авторизовались как %s"
)

// Application routes inbound messages. One instance serves all sessions;
// the transport guarantees messages of one session are handled serially.
type Application struct {
	repo      *repository.Repository
	notifier  scenario.Notifier
	scenarios map[string]scenario.Scenario
	menu      map[string]scenario.Scenario
	log       *slog.Logger
}

func New(repo *repository.Repository, notifier scenario.Notifier, log *slog.Logger) *Application {
	return &Application{
		repo:      repo,
		notifier:  notifier,
		scenarios: make(map[string]scenario.Scenario),
		menu:      make(map[string]scenario.Scenario),
		log:       log.With(sl.Module("app")),
	}
}

// Register binds a scenario to its menu button.
func (a *Application) Register(menuButton string, sc scenario.Scenario) {
	a.scenarios[sc.Name()] = sc
	a.menu[menuButton] = sc
	a.log.Info("registered scenario",
		slog.String("scenario", sc.Name()),
		slog.String("menu_button", menuButton),
	)
}

// Auth resolves the session user for a chat; nil means unauthenticated.
func (a *Application) Auth(ctx context.Context, chatID int64) (*entity.User, error) {
	return a.repo.Users.GetByChatID(ctx, chatID)
}

// Execute handles one inbound message. Unauthenticated chats treat every
// message as a login code attempt; authenticated ones resume the active
// scenario, start one from a menu pick, or fall back to the menu.
func (a *Application) Execute(ctx context.Context, message *string, user *entity.User, chatID int64) (entity.Response, error) {
	if user == nil {
		return a.Authenticate(ctx, message, chatID)
	}

	scn, err := a.repo.Scenarios.Get(ctx, user)
	if err != nil {
		return entity.Response{}, err
	}
	if scn != nil {
		sc, ok := a.scenarios[scn.Name]
		if !ok {
			// A scenario persisted by an older build; drop it.
			a.log.Warn("unknown scenario in cache", slog.String("scenario", scn.Name))
			if err := a.repo.Scenarios.Delete(ctx, user); err != nil {
				return entity.Response{}, err
			}
			return a.Menu(user)
		}
		response, err := sc.Resume(ctx, user, scn, message)
		if err != nil {
			return entity.Response{}, err
		}
		return response, nil
	}

	if message != nil {
		if sc, ok := a.menu[*message]; ok {
			return sc.Start(ctx, user)
		}
	}
	return a.Menu(user)
}

// Start clears any in-flight report state and shows the menu, or asks for
// a login code when unauthenticated.
func (a *Application) Start(ctx context.Context, user *entity.User) (entity.Response, error) {
	if user == nil {
		return entity.NewTextResponse(replyPleaseAuth, replyEnterCode), nil
	}
	if err := a.repo.WorkTimeReports.DeleteScenarioAndReports(ctx, user); err != nil {
		return entity.Response{}, err
	}
	return a.Menu(user)
}

// Menu renders the top-level menu keyboard.
func (a *Application) Menu(user *entity.User) (entity.Response, error) {
	return entity.NewReplyKeyboardResponse(
		[]string{replyChooseMenu},
		[][]string{{MenuTimeReport}, {MenuClientReport}},
	), nil
}

// Back drops the last step of the active scenario and re-renders the step
// before it.
func (a *Application) Back(ctx context.Context, user *entity.User) (entity.Response, error) {
	if user == nil {
		return a.Start(ctx, nil)
	}

	scn, err := a.repo.Scenarios.Get(ctx, user)
	if err != nil {
		return entity.Response{}, err
	}
	if scn != nil {
		scn.Back()
		if err := a.repo.Scenarios.Upsert(ctx, user, scn); err != nil {
			return entity.Response{}, err
		}
	}
	return a.Execute(ctx, nil, user, user.ChatID)
}

// Reset truncates the active scenario to its first step and notifies which
// menu flow it belongs to.
func (a *Application) Reset(ctx context.Context, user *entity.User) (entity.Response, error) {
	if user == nil {
		return a.Start(ctx, nil)
	}

	scn, err := a.repo.Scenarios.Get(ctx, user)
	if err != nil {
		return entity.Response{}, err
	}
	if scn != nil {
		scn.Reset()
		if err := a.repo.Scenarios.Upsert(ctx, user, scn); err != nil {
			return entity.Response{}, err
		}
		if err := a.notifier.Notify(ctx, a.menuButtonFor(scn.Name), user); err != nil {
			a.log.Warn("notifying about reset", sl.Err(err))
		}
	}
	return a.Execute(ctx, nil, user, user.ChatID)
}

// Logout tears down the session: scenario, report caches and the session
// record, then re-enters the unauthenticated flow.
func (a *Application) Logout(ctx context.Context, user *entity.User) (entity.Response, error) {
	if user == nil {
		return a.Start(ctx, nil)
	}

	if err := a.repo.WorkTimeReports.DeleteScenarioAndReports(ctx, user); err != nil {
		return entity.Response{}, err
	}
	if err := a.repo.Users.Delete(ctx, user.ChatID); err != nil {
		return entity.Response{}, err
	}
	return a.Execute(ctx, nil, nil, user.ChatID)
}

// Authenticate matches a login code attempt against the users handbook and
// binds the chat to the matched user.
func (a *Application) Authenticate(ctx context.Context, code *string, chatID int64) (entity.Response, error) {
	if code == nil {
		return entity.NewTextResponse(replyPleaseAuth, replyEnterCode), nil
	}

	user, err := a.repo.Users.GetByCode(ctx, *code)
	if err != nil {
		return entity.Response{}, err
	}
	if user == nil {
		return entity.NewTextResponse(replyWrongCode, replyPleaseAuth, replyEnterCode), nil
	}

	user.ChatID = chatID
	if err := a.repo.Users.Upsert(ctx, user); err != nil {
		return entity.Response{}, err
	}

	if err := a.notifier.Notify(ctx, fmt.Sprintf(replyAuthenticated, user.Fullname), user); err != nil {
		a.log.Warn("notifying about login", sl.Err(err))
	}
	return a.Menu(user)
}

func (a *Application) menuButtonFor(scenarioName string) string {
	for button, sc := range a.menu {
		if sc.Name() == scenarioName {
			return button
		}
	}
	return scenarioName
}
