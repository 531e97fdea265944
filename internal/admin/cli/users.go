package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aghannam/manassa/internal/models"
)

func (a *App) ListUsers(ctx context.Context) error {
	items, err := a.users.List(ctx)
	if err != nil {
		printlnFn("Listing failed:", err.Error())
		return err
	}

	for _, u := range items {
		state := "inactive"
		if u.Active {
			state = "active"
		}
		printlnFn(fmt.Sprintf("%-20s %-8s %-10s %-28s %s", u.ID, u.Role, state, u.Email, u.Name))
	}
	return nil
}

func (a *App) AddUser(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	role, err := GetOptionalText(a.reader, "Role (admin/editor/writer) [writer]", string(models.RoleWriter), os.Stdout)
	if err != nil {
		return err
	}

	u := &models.User{
		Name:   name,
		Email:  email,
		Role:   models.UserRole(role),
		Active: true,
	}
	if err := a.users.Create(ctx, u); err != nil {
		printValidation(err)
		return err
	}
	printlnFn("Created user", u.ID)
	return nil
}
