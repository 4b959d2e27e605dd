package domain

type DashboardSummary struct {
	TasksByStatus   map[TaskStatus]int   `json:"tasks_by_status"`
	OverdueTasks    int                  `json:"overdue_tasks"`
	PipelineOpen    float64              `json:"pipeline_open_value"`
	PipelineWon     float64              `json:"pipeline_won_value"`
	ClientsByStatus map[ClientStatus]int `json:"clients_by_status"`
	MonthToDate     KPIMetrics           `json:"kpi_month_to_date"`
}

type CalendarDay struct {
	Date  Date    `json:"date"`
	Tasks []*Task `json:"tasks"`
}

type Calendar struct {
	From Date          `json:"from"`
	To   Date          `json:"to"`
	Days []CalendarDay `json:"days"`
}
