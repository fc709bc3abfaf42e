package domain

type Role string

const (
	RoleUser   Role = "USER"
	RoleOwner  Role = "OWNER"
	RoleTenant Role = "TENANT"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
