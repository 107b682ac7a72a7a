package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/jellydator/validation"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	accountUseCase "github.com/allisson/bookstore/internal/account/usecase"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// RunCreateAdmin creates the admin account, or promotes it and resets its password when
// it already exists. The password is read from io.Reader when empty.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAdmin(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	io IOTuple,
	username string,
	email string,
	password string,
) error {
	if password == "" {
		var err error
		password, err = promptPassword(io)
		if err != nil {
			return err
		}
	}

	input := &accountDomain.CreateAccountInput{
		Username: username,
		Email:    email,
		Name:     username,
		Password: password,
		IsAdmin:  true,
	}
	if err := validateAdminInput(input); err != nil {
		return fmt.Errorf("invalid admin account: %w", err)
	}

	created, err := accountUseCase.EnsureAdmin(ctx, input, true)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	if created {
		logger.Info("admin account created", slog.String("username", username))
		_, _ = fmt.Fprintf(io.Writer, "Admin account %q created.\n", username)
	} else {
		logger.Info("admin account updated", slog.String("username", username))
		_, _ = fmt.Fprintf(io.Writer, "Admin account %q already existed; password reset.\n", username)
	}
	return nil
}

func validateAdminInput(input *accountDomain.CreateAccountInput) error {
	return validation.ValidateStruct(input,
		validation.Field(&input.Username, validation.Required, customValidation.NotBlank, validation.Length(3, 50)),
		validation.Field(&input.Email, validation.Required, customValidation.Email),
		validation.Field(&input.Password, validation.Required, customValidation.StrongPassword),
	)
}

func promptPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Admin password: ")

	scanner := bufio.NewScanner(io.Reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("no password provided")
	}
	_, _ = fmt.Fprintln(io.Writer)

	return strings.TrimSpace(scanner.Text()), nil
}
