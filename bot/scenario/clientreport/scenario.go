// Package clientreport implements the client report scenario: date and
// client filters followed by an inline-keyboard browser over the filtered
// report rows, one row per page, with soft deletion.
package clientreport

import (
	"context"
	"log/slog"

	"timekeeper/bot/scenario"
	"timekeeper/entity"
	"timekeeper/internal/repository"
)

const Name = "client_report"

const dateLayout = "02.01.2006"

const (
	replyEnterDate    = "Введите дату в формате дд.мм.гггг"
	replyChooseDate   = "Или выберите дату в календаре"
	replyWrongDate    = "Неверный формат даты"
	replyChooseClient = "Выберите клиента (или \"-\" для всех)"
	replyWrongClient  = "Выбран неизвестный клиент"
	replyNoReports    = "Отчетов не найдено"
	replyBadAction    = "Не удалось обработать действие"
	replyRemoveFailed = "Не удалось удалить отчет, попробуйте еще раз"
	replyDataBusy     = "Данные сейчас обновляются, попробуйте еще раз"
	buttonOK          = "ОК"
	buttonToMenu      = "В меню"
	buttonRemove      = "Удалить"
)

// Scenario wires the step table over the client handbook and the report
// view repositories.
type Scenario struct {
	*scenario.Runner
	clients  *repository.Clients
	reports  *repository.WorkTimeReports
	notifier scenario.Notifier
	log      *slog.Logger
}

func New(repo *repository.Repository, notifier scenario.Notifier, log *slog.Logger) *Scenario {
	s := &Scenario{
		clients:  repo.Clients,
		reports:  repo.WorkTimeReports,
		notifier: notifier,
		log:      log,
	}
	s.Runner = scenario.NewRunner(Name, map[int]scenario.StepFunc{
		1: s.stepDate,
		2: s.stepClient,
		3: s.stepBrowse,
	}, s.finish, repo.Scenarios, log)
	return s
}

// finish is unreachable in normal operation: the browse step never advances
// the cursor. It tears the scenario down anyway should state arrive here.
func (s *Scenario) finish(ctx context.Context, user *entity.User, scn *entity.Scenario) (entity.Response, error) {
	if err := s.reports.DeleteScenarioAndReports(ctx, user); err != nil {
		return entity.Response{}, err
	}
	return entity.NewFinalResponse(), nil
}
