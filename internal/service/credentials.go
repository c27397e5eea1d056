package service

import "strings"

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registrationInput struct {
	Username string `validate:"required,min=2,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func ValidateLogin(email, password string) error {
	return validateStruct(loginInput{Email: strings.TrimSpace(email), Password: password})
}

// ValidateRegistration mirrors the backend's own limits so obviously bad
// sign-ups fail without a round trip.
func ValidateRegistration(username, email, password string) error {
	return validateStruct(registrationInput{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	})
}
