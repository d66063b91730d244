package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"_id" yaml:"id"`
	Username     string    `gorm:"not null" json:"username" yaml:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email" yaml:"email"`
	PasswordHash string    `gorm:"not null" json:"-" yaml:"-"`
	CreatedAt    time.Time `json:"createdAt,omitempty" yaml:"-"`
}

// DisplayName falls back to "User" the way the dashboard greeting does.
func (u *User) DisplayName() string {
	if u == nil || u.Username == "" {
		return "User"
	}
	return u.Username
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterForm is the sign-up form of the web front. Only the
// RegisterRequest part is sent to the task store.
type RegisterForm struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (f RegisterForm) Request() RegisterRequest {
	return RegisterRequest{Username: f.Username, Email: f.Email, Password: f.Password}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the body of a successful register or login: the bearer
// token next to the user fields.
type AuthResponse struct {
	Token    string `json:"token"`
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (r AuthResponse) User() *User {
	return &User{ID: r.ID, Username: r.Username, Email: r.Email}
}
