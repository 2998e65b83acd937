package clientreport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"timekeeper/bot/scenario"
	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/repository"
)

func (s *Scenario) stepDate(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) scenario.StepResult {
	now := time.Now()

	if message == nil {
		return scenario.StepResult{
			Response: entity.NewCalendarResponse(
				[]string{replyEnterDate, replyChooseDate},
				now.Year(), now.Month(), false,
			),
		}
	}

	if _, err := time.Parse(dateLayout, *message); err != nil {
		return scenario.StepResult{
			Response: entity.NewCalendarResponse(
				[]string{replyWrongDate, replyEnterDate, replyChooseDate},
				now.Year(), now.Month(), false,
			),
		}
	}
	return scenario.StepResult{Result: message}
}

func (s *Scenario) stepClient(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) scenario.StepResult {
	clients, err := s.clients.GetActive(ctx)
	if err != nil {
		return scenario.StepResult{Err: err}
	}

	buttons := make([][]string, 0, len(clients)+1)
	for _, client := range clients {
		buttons = append(buttons, []string{client.Name})
	}
	buttons = append(buttons, []string{scenario.Skip})

	if message == nil {
		return scenario.StepResult{
			Response: entity.NewReplyKeyboardResponse([]string{replyChooseClient}, buttons),
		}
	}

	if *message == scenario.Skip {
		return scenario.StepResult{Result: message}
	}
	for _, client := range clients {
		if client.Name == *message {
			return scenario.StepResult{Result: message}
		}
	}
	return scenario.StepResult{
		Response: entity.NewReplyKeyboardResponse([]string{replyWrongClient, replyChooseClient}, buttons),
	}
}

// stepBrowse renders one report row per page and reacts to the browser
// callback tokens. It never records a result: the scenario ends only
// through the out action (or the navigation commands).
func (s *Scenario) stepBrowse(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) scenario.StepResult {
	reportDate, client := s.filter(scn)

	if message == nil {
		return s.renderPage(ctx, user, reportDate, client, 0, false, nil)
	}

	cb := scenario.ParseCallback(*message)
	if cb == nil {
		return s.renderPage(ctx, user, reportDate, client, 0, false, []string{replyBadAction})
	}

	switch cb.Action {
	case scenario.ActionIgnore:
		return s.renderPage(ctx, user, reportDate, client, cb.Page, true, nil)

	case scenario.ActionNext:
		return s.renderPage(ctx, user, reportDate, client, cb.Page+1, true, nil)

	case scenario.ActionPrev:
		return s.renderPage(ctx, user, reportDate, client, cb.Page-1, true, nil)

	case scenario.ActionRemove:
		if err := s.reports.Delete(ctx, cb.RowID); err != nil {
			s.log.Warn("removing report", sl.Err(err))
			return s.renderPage(ctx, user, reportDate, client, cb.Page, true, []string{replyRemoveFailed})
		}
		if err := s.reports.RemoveFromCache(ctx, user); err != nil {
			return scenario.StepResult{Err: err}
		}
		return s.renderPage(ctx, user, reportDate, client, 0, true, nil)

	case scenario.ActionOut:
		if err := s.reports.DeleteScenarioAndReports(ctx, user); err != nil {
			return scenario.StepResult{Err: err}
		}
		return scenario.StepResult{Response: entity.NewFinalResponse()}
	}

	return s.renderPage(ctx, user, reportDate, client, 0, false, []string{replyBadAction})
}

func (s *Scenario) filter(scn *entity.Scenario) (reportDate, client string) {
	if result := scn.StepResult(1); result != nil {
		reportDate = *result
	}
	if result := scn.StepResult(2); result != nil && *result != scenario.Skip {
		client = *result
	}
	return reportDate, client
}

// renderPage builds the inline keyboard page for the given row index,
// clamped to the fetched row list.
func (s *Scenario) renderPage(ctx context.Context, user *entity.User, reportDate, client string, page int, edit bool, notices []string) scenario.StepResult {
	reports, err := s.reports.GetReports(ctx, user, reportDate, client)
	if err != nil {
		if errors.Is(err, repository.ErrLockTimeout) {
			return scenario.StepResult{Response: entity.NewTextResponse(replyDataBusy)}
		}
		s.log.Warn("loading reports", sl.Err(err))
		reports = nil
	}

	stat, err := s.reports.GetStats(ctx, user, reportDate, client)
	if err != nil {
		s.log.Warn("loading report stat", sl.Err(err))
		stat = &entity.WorkTimeReportStat{ReportDate: reportDate}
	}

	messages := append([]string{}, notices...)
	messages = append(messages, s.header(reportDate, client, stat)...)

	if len(reports) == 0 {
		messages = append(messages, replyNoReports)
		response := entity.NewInlineKeyboardResponse(messages, [][]entity.InlineButton{{
			{Text: buttonOK, CallbackData: scenario.BuildCallback(scenario.ActionIgnore, 0)},
			{Text: buttonToMenu, CallbackData: scenario.BuildCallback(scenario.ActionOut, 0)},
		}})
		response.InlineKeyboard.EditReplyKeyboard = edit
		response.InlineKeyboard.DeleteReplyKeyboard = !edit
		return scenario.StepResult{Response: response}
	}

	if page < 0 {
		page = 0
	}
	if page > len(reports)-1 {
		page = len(reports) - 1
	}
	report := reports[page]

	messages = append(messages,
		fmt.Sprintf("Отчет %d из %d", page+1, len(reports)),
		fmt.Sprintf("%s — %s, %s", report.WorkType, report.Client, report.Hours),
	)
	if report.Comment != "" {
		messages = append(messages, fmt.Sprintf("Комментарий: %s", report.Comment))
	}

	prev := scenario.BuildCallback(scenario.ActionIgnore, page)
	if page > 0 {
		prev = scenario.BuildCallback(scenario.ActionPrev, page)
	}
	next := scenario.BuildCallback(scenario.ActionIgnore, page)
	if page < len(reports)-1 {
		next = scenario.BuildCallback(scenario.ActionNext, page)
	}

	inlines := [][]entity.InlineButton{
		{
			{Text: "◀️", CallbackData: prev},
			{Text: fmt.Sprintf("%d/%d", page+1, len(reports)), CallbackData: scenario.BuildCallback(scenario.ActionIgnore, page)},
			{Text: "▶️", CallbackData: next},
		},
		{
			{Text: buttonRemove, CallbackData: scenario.BuildRowCallback(scenario.ActionRemove, page, report.RowID)},
			{Text: buttonToMenu, CallbackData: scenario.BuildCallback(scenario.ActionOut, page)},
		},
	}

	response := entity.NewInlineKeyboardResponse(messages, inlines)
	response.InlineKeyboard.EditReplyKeyboard = edit
	response.InlineKeyboard.DeleteReplyKeyboard = !edit
	return scenario.StepResult{Response: response}
}

func (s *Scenario) header(reportDate, client string, stat *entity.WorkTimeReportStat) []string {
	title := fmt.Sprintf("Отчеты за %s", reportDate)
	if client != "" {
		title += fmt.Sprintf(" по клиенту %s", client)
	}

	messages := []string{title}
	if stat.TimePlan != "" || stat.TimeFact != "" || stat.TimeNet != "" {
		messages = append(messages, fmt.Sprintf("План: %s, факт: %s, остаток: %s",
			orDash(stat.TimePlan), orDash(stat.TimeFact), orDash(stat.TimeNet)))
	}
	return messages
}

func orDash(value string) string {
	if value == "" {
		return scenario.Skip
	}
	return value
}
