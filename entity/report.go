package entity

// WorkTimeReport is one committed row of the work time report sheet.
// RowID is assigned by the datastore on append and identifies the row for
// soft deletion. Committed rows are never edited, only marked removed.
type WorkTimeReport struct {
	ReportDate   string `json:"report_date" validate:"required"`
	UserID       string `json:"user_id" validate:"required"`
	UserFullname string `json:"user_fullname" validate:"required"`
	UserJobTitle string `json:"user_job_title"`
	WorkType     string `json:"work_type" validate:"required"`
	Client       string `json:"client" validate:"required"`
	Hours        string `json:"hours" validate:"required"`
	Comment      string `json:"comment"`
	RowID        int    `json:"row_id"`
}

// Row returns the report fields in sheet column order.
func (r *WorkTimeReport) Row() []string {
	return []string{
		r.ReportDate,
		r.UserID,
		r.UserFullname,
		r.UserJobTitle,
		r.WorkType,
		r.Client,
		r.Hours,
		r.Comment,
	}
}

// WorkTimeReportStat holds the aggregate cells read alongside the filtered
// report rows.
type WorkTimeReportStat struct {
	ReportDate string `json:"report_date"`
	TimePlan   string `json:"time_plan"`
	TimeFact   string `json:"time_fact"`
	TimeNet    string `json:"time_net"`
}
