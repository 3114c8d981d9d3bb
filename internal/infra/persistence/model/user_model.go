package model

// UserModel mirrors the 'users' table. Username and email are unique among live rows only.
type UserModel struct {
	BaseModel

	Username       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username,where:is_deleted = false"`
	Email          string `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_email,where:is_deleted = false"`
	PasswordHash   string `gorm:"type:varchar(255);not null"`
	FirstName      string `gorm:"type:varchar(50)"`
	LastName       string `gorm:"type:varchar(50)"`
	PhoneNumber    string `gorm:"type:varchar(20)"`
	EmailConfirmed bool   `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
