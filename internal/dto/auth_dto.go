package dto

type RegisterRequest struct {
	FirstName       string `form:"first_name" json:"first_name" validate:"required"`
	LastName        string `form:"last_name" json:"last_name" validate:"required"`
	Email           string `form:"email" json:"email" validate:"required,email"`
	Age             string `form:"age" json:"age" validate:"required"`
	Password        string `form:"password" json:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type MeResponse struct {
	Id        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	AgeGroup  string `json:"age_group"`
}
