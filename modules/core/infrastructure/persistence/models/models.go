package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID        uint
	Username  string
	Phone     sql.NullString
	Password  sql.NullString
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Employee struct {
	ID            uint
	UserID        uint
	Enabled       bool
	LastDeptID    sql.NullInt64
	LastCompanyID sql.NullInt64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Org struct {
	ID        uint
	Type      string
	TreePath  sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Client struct {
	ID        string
	Secret    string
	Category  string
	Enabled   bool
	CreatedAt time.Time
}
