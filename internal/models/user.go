package models

import "database/sql"

// User is a row of the users table.
type User struct {
	UserID        string         `db:"user_id"`
	Username      string         `db:"username"`
	Email         string         `db:"email"`
	FirstName     string         `db:"first_name"`
	LastName      string         `db:"last_name"`
	Contact       sql.NullString `db:"contact"`
	PasswordHash  sql.NullString `db:"password_hash"`
	GoogleSubject sql.NullString `db:"google_subject"`
	AuditFields
}
