package models

import "time"

type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther, GenderUnspecified:
		return true
	}
	return false
}

// Account is the durable identity record. The password hash never leaves
// the process; responses use the public view.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Gender       Gender    `json:"gender"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	PhotoURL     string    `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicAccount is the subset of Account safe to return to clients.
type PublicAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   Gender `json:"gender"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photo,omitempty"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Age:      a.Age,
		Gender:   a.Gender,
		Phone:    a.Phone,
		PhotoURL: a.PhotoURL,
	}
}

type SignupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   Gender `json:"gender"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

// AccountPatch holds the optional fields of a partial profile update. Nil
// means "leave unchanged"; each field is applied explicitly, never through
// a generic setter.
type AccountPatch struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Phone *string `json:"phone"`
}

func (p AccountPatch) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Phone == nil
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthResponse is the body of successful signup and login responses.
type AuthResponse struct {
	Account PublicAccount `json:"account"`
	Tokens  TokenPair     `json:"tokens"`
}
