package models

// User is a dashboard account. The GORM tags only matter when the
// database-backed store is selected; the default memory store fills the
// same struct from the seeded list.
type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;default:warehouse" json:"role"`
}
