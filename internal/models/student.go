package models

import "time"

// Student is a roster entry. RegNo is the natural key for upserts; RegNo and
// Email are each globally unique.
type Student struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	RegNo      string    `db:"reg_no" json:"reg_no"`
	Email      string    `db:"email" json:"email"`
	QRCodePath string    `db:"qr_code_path" json:"qr_code_path"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RosterRow is one normalized row from an uploaded spreadsheet.
type RosterRow struct {
	Name  string `json:"name"`
	RegNo string `json:"reg_no"`
	Email string `json:"email"`
}

// StudentUpsert pairs a roster row with its generated identifier image path.
type StudentUpsert struct {
	RosterRow
	QRCodePath string
}

// UpsertSummary reports the outcome of one upload batch.
type UpsertSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
