package model

// User roles.
const (
	RoleMember = "member"
	RoleLead   = "lead"
	RoleAdmin  = "admin"
)

// User — maps the users table.
type User struct {
	UserID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string      `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string      `gorm:"type:varchar(20);not null;default:'member'"     json:"role"` // member | lead | admin
	TechStacks   StringArray `gorm:"type:text[];not null;default:'{}'"              json:"tech_stacks"`
	SoftDeleteModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
