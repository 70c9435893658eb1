package models

// User represents a registered account. Users are created at registration
// and never deleted; the password hash is a bcrypt digest and is never
// serialized in responses.
type User struct {
	BaseModel
	Name         string `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex:idx_users_email;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string `json:"-" gorm:"not null;size:100"`

	// Relationships
	Memberships []TeamMembership `json:"memberships,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
