package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/redmonkez12/greennest-api/internal/validation"
)

// NewUser is the input of `user create`.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate trims the fields and checks them with the same rules as /signup.
func (u *NewUser) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)

	if err := validation.Struct(u); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Has("email", "email") {
			return fmt.Errorf("invalid email format")
		}
		return fmt.Errorf("name, email and password are required")
	}
	return nil
}

// RunUserForm asks for the fields of u that are still empty.
func RunUserForm(u *NewUser) error {
	var fields []huh.Field

	if strings.TrimSpace(u.Name) == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Value(&u.Name).
			Validate(required("name")))
	}
	if strings.TrimSpace(u.Email) == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("ana@example.com").
			Value(&u.Email).
			Validate(required("email")))
	}
	if u.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&u.Password).
			Validate(required("password")))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin()).Run()
}

// Confirm asks a yes/no question and defaults to no.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithTheme(huh.ThemeCatppuccin()).Run()
	return ok, err
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// PrintTitle prints a section heading.
func PrintTitle(msg string) {
	fmt.Println(titleStyle.Render(msg))
}

// PrintSuccess prints a success line with optional detail below it.
func PrintSuccess(msg string, details ...string) {
	fmt.Println(successStyle.Render(msg))
	for _, d := range details {
		fmt.Println(subtleStyle.Render("  " + d))
	}
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}
