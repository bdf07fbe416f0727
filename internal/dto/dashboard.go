package dto

// DashboardSummary backs the landing page counters.
type DashboardSummary struct {
	StudentCount    int    `json:"student_count"`
	TodayAttendance int    `json:"today_attendance"`
	Date            string `json:"date"`
}
