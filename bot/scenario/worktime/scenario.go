// Package worktime implements the work time report scenario: five steps
// collecting date, work type, client, duration and comment, committed to
// the report sheet by the terminal action.
package worktime

import (
	"log/slog"

	"timekeeper/bot/scenario"
	"timekeeper/internal/repository"
)

const Name = "work_time_report"

const dateLayout = "02.01.2006"

// Prompt and error texts.
const (
	replyEnterDate      = "Введите дату в формате дд.мм.гггг"
	replyChooseDate     = "Или выберите дату в календаре"
	replyWrongDate      = "Неверный формат даты"
	replyChooseWorkType = "Выберите вид работ"
	replyWrongWorkType  = "Выбран неизвестный вид работ"
	replyChooseClient   = "Выберите клиента"
	replyWrongClient    = "Выбран неизвестный клиент"
	replyEnterTime      = "Введите затраченное время в формате чч:мм"
	replyChooseTime     = "Или выберите вариант в меню"
	replyWrongTime      = "Неверный формат времени"
	replyEnterComment   = "Введите комментарий (или \"-\" чтобы пропустить)"
	replySaved          = "Отчет сохранен"
	replySaveFailed     = "Не удалось сохранить отчет, отправьте последнее сообщение еще раз"
	replyBrokenScenario = "Не удалось собрать отчет, начните заново с команды /reset"
)

// Scenario wires the step table over the handbook and report repositories.
type Scenario struct {
	*scenario.Runner
	workTypes *repository.WorkTypes
	clients   *repository.Clients
	reports   *repository.WorkTimeReports
	google    *repository.Google
	notifier  scenario.Notifier
	log       *slog.Logger
}

func New(repo *repository.Repository, notifier scenario.Notifier, log *slog.Logger) *Scenario {
	s := &Scenario{
		workTypes: repo.WorkTypes,
		clients:   repo.Clients,
		reports:   repo.WorkTimeReports,
		google:    repo.Google,
		notifier:  notifier,
		log:       log,
	}
	s.Runner = scenario.NewRunner(Name, map[int]scenario.StepFunc{
		1: s.stepDate,
		2: s.stepWorkType,
		3: s.stepClient,
		4: s.stepDuration,
		5: s.stepComment,
	}, s.finish, repo.Scenarios, log)
	return s
}
