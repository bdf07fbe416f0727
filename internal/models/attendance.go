package models

import "time"

// Attendance is one scan event. The pair (StudentID, Date) is unique: at most
// one record per student per calendar day. Records are never mutated.
type Attendance struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	ScanTime  time.Time `db:"scan_time" json:"scan_time"`
	Date      time.Time `db:"date" json:"date"`
}

// AttendanceRecord extends a scan with the joined student columns for reports.
type AttendanceRecord struct {
	Attendance
	StudentName string `db:"student_name" json:"student_name"`
	RegNo       string `db:"reg_no" json:"reg_no"`
	Email       string `db:"email" json:"email"`
}

// ReportFilter narrows and pages the attendance report listing.
type ReportFilter struct {
	Date     *time.Time
	Page     int
	PageSize int
}
