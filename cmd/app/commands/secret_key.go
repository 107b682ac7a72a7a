package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	cryptoService "github.com/allisson/bookstore/internal/crypto/service"
)

// RunCreateSecretKey generates a random 32-byte session secret key and prints it as
// SESSION_SECRET_KEY.
//
// When kmsKeyURI is set the key is encrypted with that KMS key first and the KMS
// settings are printed along with the ciphertext. kmsProvider and kmsKeyURI must be
// given together. For local development use kmsProvider="localsecrets" with
// kmsKeyURI="base64key://...".
func RunCreateSecretKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsProvider string,
	kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be used together")
	}

	secretKey := make([]byte, cryptoDomain.SecretKeySize)
	if _, err := rand.Read(secretKey); err != nil {
		return fmt.Errorf("failed to generate secret key: %w", err)
	}
	defer cryptoDomain.Zero(secretKey)

	if kmsKeyURI == "" {
		logger.Info("generated session secret key")
		_, _ = fmt.Fprintln(writer, "# Session secret key (plaintext mode)")
		_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintf(writer, "SESSION_SECRET_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(secretKey))
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, secretKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret key with KMS: %w", err)
	}

	logger.Info("generated session secret key", slog.String("kms_provider", kmsProvider))
	_, _ = fmt.Fprintln(writer, "# Session secret key (KMS mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "SESSION_SECRET_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))
	return nil
}
