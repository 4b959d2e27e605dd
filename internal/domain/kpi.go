package domain

import "time"

// KPIMetrics são os contadores do funil comercial registrados por dia
type KPIMetrics struct {
	Leads         int     `json:"leads"`
	Sets          int     `json:"sets"`
	Shows         int     `json:"shows"`
	Closes        int     `json:"closes"`
	CashCollected float64 `json:"cash_collected"`
}

func (m *KPIMetrics) Add(other KPIMetrics) {
	m.Leads += other.Leads
	m.Sets += other.Sets
	m.Shows += other.Shows
	m.Closes += other.Closes
	m.CashCollected += other.CashCollected
}

type KPIDailyLog struct {
	ID      string `json:"id"`
	LogDate Date   `json:"log_date"`
	KPIMetrics
	CreatedAt time.Time `json:"created_at"`
}

type RepPerformance struct {
	ID      string `json:"id"`
	RepName string `json:"rep_name"`
	LogDate Date   `json:"log_date"`
	KPIMetrics
	CreatedAt time.Time `json:"created_at"`
}

type KPILogRequest struct {
	ID      string `json:"-"`
	LogDate *Date  `json:"log_date"`
	KPIMetrics
}

type RepPerformanceRequest struct {
	ID      string `json:"-"`
	RepName string `json:"rep_name"`
	LogDate *Date  `json:"log_date"`
	KPIMetrics
}

type KPIRates struct {
	SetRate   float64 `json:"set_rate"`
	ShowRate  float64 `json:"show_rate"`
	CloseRate float64 `json:"close_rate"`
}

type RepSummary struct {
	RepName string `json:"rep_name"`
	KPIMetrics
	KPIRates
}

type KPIReport struct {
	From   Date         `json:"from"`
	To     Date         `json:"to"`
	Totals KPIMetrics   `json:"totals"`
	Rates  KPIRates     `json:"rates"`
	Days   int          `json:"days"`
	Reps   []RepSummary `json:"reps"`
}
