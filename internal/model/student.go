package model

import "time"

// Role names stored in the students.role column and embedded in JWT claims.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// Student represents a registered account as stored in the `students`
// table. Students book seats; admins manage movies, halls and schedules.
// The PasswordHash field holds a bcrypt digest and must never be exposed
// in API responses.
//
// Fields:
//  ID           – primary key identifier.
//  StudentNo    – unique university student number (empty for admins).
//  FullName     – display name.
//  Email        – unique email address used for login.
//  PasswordHash – bcrypt hashed password.
//  Role         – STUDENT or ADMIN.
//  CreatedAt    – timestamp of registration.
//  UpdatedAt    – timestamp of last update.
type Student struct {
	ID           uint64    `json:"id"`
	StudentNo    string    `json:"student_no"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
