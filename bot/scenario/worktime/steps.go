package worktime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"timekeeper/bot/scenario"
	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
)

var durationPresets = [][]string{
	{"00:15", "00:30", "00:45", "01:00"},
	{"01:15", "01:30", "01:45", "02:00"},
	{"02:15", "02:30", "02:45", "03:00"},
	{"03:15", "03:30", "03:45", "04:00"},
}

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

func (s *Scenario) stepWorkType(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) scenario.StepResult {
	workTypes, err := s.workTypes.Get(ctx)
	if err != nil {
		return scenario.StepResult{Err: err}
	}

	buttons := make([][]string, 0, len(workTypes))
	for _, workType := range workTypes {
		buttons = append(buttons, []string{workType.Name})
	}

	if message == nil {
		return scenario.StepResult{
			Response: entity.NewReplyKeyboardResponse([]string{replyChooseWorkType}, buttons),
		}
	}

	for _, workType := range workTypes {
		if workType.Name == *message {
			return scenario.StepResult{Result: message}
		}
	}
	return scenario.StepResult{
		Response: entity.NewReplyKeyboardResponse([]string{replyWrongWorkType, replyChooseWorkType}, buttons),
	}
}

func (s *Scenario) stepClient(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) scenario.StepResult {
	clients, err := s.clients.GetActive(ctx)
	if err != nil {
		return scenario.StepResult{Err: err}
	}

	buttons := make([][]string, 0, len(clients))
	for _, client := range clients {
		buttons = append(buttons, []string{client.Name})
	}

	if message == nil {
		return scenario.StepResult{
			Response: entity.NewReplyKeyboardResponse([]string{replyChooseClient}, buttons),
		}
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

func (s *Scenario) stepDuration(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) scenario.StepResult {
	if message == nil {
		return scenario.StepResult{
			Response: entity.NewReplyKeyboardResponse([]string{replyEnterTime, replyChooseTime}, durationPresets),
		}
	}

	if canonical, ok := parseDuration(*message); ok {
		return scenario.StepResult{Result: &canonical}
	}
	return scenario.StepResult{
		Response: entity.NewReplyKeyboardResponse([]string{replyWrongTime, replyEnterTime, replyChooseTime}, durationPresets),
	}
}

func (s *Scenario) stepComment(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) scenario.StepResult {
	if message == nil {
		return scenario.StepResult{
			Response: entity.NewReplyKeyboardResponse([]string{replyEnterComment}, [][]string{{scenario.Skip}}),
		}
	}

	comment := strings.TrimSpace(*message)
	if comment == "" {
		comment = scenario.Skip
	}
	return scenario.StepResult{Result: &comment}
}

// finish builds the final record from the recorded steps, commits it and
// tears the scenario down. A failed append keeps the scenario so the user
// retries by resending the last message.
func (s *Scenario) finish(ctx context.Context, user *entity.User, scn *entity.Scenario) (entity.Response, error) {
	report, err := s.buildReport(user, scn)
	if err != nil {
		s.log.Error("assembling report", sl.Err(err))
		return entity.NewTextResponse(replyBrokenScenario), nil
	}

	rowID, err := s.google.AppendWorkTimeReport(ctx, report)
	if err != nil {
		s.log.Error("committing report", sl.Err(err))
		return entity.NewTextResponse(replySaveFailed), nil
	}
	report.RowID = rowID

	if err := s.reports.DeleteScenarioAndReports(ctx, user); err != nil {
		return entity.Response{}, err
	}

	summary := fmt.Sprintf("%s: %s, %s, %s", replySaved, report.ReportDate, report.Client, report.Hours)
	if err := s.notifier.Notify(ctx, summary, user); err != nil {
		s.log.Warn("notifying about saved report", sl.Err(err))
	}

	return entity.NewFinalResponse(), nil
}

func (s *Scenario) buildReport(user *entity.User, scn *entity.Scenario) (*entity.WorkTimeReport, error) {
	results := make([]string, 0, 5)
	for step := 1; step <= 5; step++ {
		result := scn.StepResult(step)
		if result == nil {
			return nil, fmt.Errorf("step %d has no result", step)
		}
		results = append(results, *result)
	}

	comment := results[4]
	if comment == scenario.Skip {
		comment = ""
	}

	return &entity.WorkTimeReport{
		ReportDate:   results[0],
		UserID:       user.ID,
		UserFullname: user.Fullname,
		UserJobTitle: user.JobTitle,
		WorkType:     results[1],
		Client:       results[2],
		Hours:        results[3],
		Comment:      comment,
	}, nil
}

// parseDuration validates HH:MM input and returns it zero-padded.
func parseDuration(raw string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return "", false
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", false
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), true
}
