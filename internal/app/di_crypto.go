package app

import (
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	cryptoService "github.com/allisson/bookstore/internal/crypto/service"
	sessionHTTP "github.com/allisson/bookstore/internal/session/http"
	sessionService "github.com/allisson/bookstore/internal/session/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// SecretKey returns the session secret key loaded from SESSION_SECRET_KEY.
func (c *Container) SecretKey() (*cryptoDomain.SecretKey, error) {
	var err error
	c.secretKeyInit.Do(func() {
		c.secretKey, err = c.initSecretKey()
		if err != nil {
			c.initErrors["secretKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretKey"]; exists {
		return nil, storedErr
	}
	return c.secretKey, nil
}

// Signer returns the keyed signer bound to the session secret key.
func (c *Container) Signer() (cryptoService.Signer, error) {
	var err error
	c.signerInit.Do(func() {
		c.signer, err = c.initSigner()
		if err != nil {
			c.initErrors["signer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signer"]; exists {
		return nil, storedErr
	}
	return c.signer, nil
}

// EnvelopeCipher returns the password envelope cipher configured from the KDF settings.
func (c *Container) EnvelopeCipher() (cryptoService.EnvelopeCipher, error) {
	var err error
	c.envelopeCipherInit.Do(func() {
		c.envelopeCipher, err = c.initEnvelopeCipher()
		if err != nil {
			c.initErrors["envelopeCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeCipher"]; exists {
		return nil, storedErr
	}
	return c.envelopeCipher, nil
}

// SessionManager returns the session token manager.
func (c *Container) SessionManager() (*sessionService.Manager, error) {
	var err error
	c.sessionManagerInit.Do(func() {
		c.sessionManager, err = c.initSessionManager()
		if err != nil {
			c.initErrors["sessionManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionManager"]; exists {
		return nil, storedErr
	}
	return c.sessionManager, nil
}

// SessionStore returns the gin session store.
func (c *Container) SessionStore() (*sessionHTTP.Store, error) {
	var err error
	c.sessionStoreInit.Do(func() {
		c.sessionStore, err = c.initSessionStore()
		if err != nil {
			c.initErrors["sessionStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionStore"]; exists {
		return nil, storedErr
	}
	return c.sessionStore, nil
}

// initSecretKey decodes the session secret key, decrypting it with the configured KMS
// key first when KMS_KEY_URI is set.
func (c *Container) initSecretKey() (*cryptoDomain.SecretKey, error) {
	if c.config.KMSKeyURI == "" {
		key, err := cryptoDomain.LoadSecretKey(c.ctx, c.config.SessionSecretKey, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load session secret key: %w", err)
		}
		return key, nil
	}

	keeper, err := c.KMSService().OpenKeeper(c.ctx, c.config.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			c.Logger().Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	key, err := cryptoDomain.LoadSecretKey(c.ctx, c.config.SessionSecretKey, keeper)
	if err != nil {
		return nil, fmt.Errorf("failed to load session secret key: %w", err)
	}

	c.Logger().Info("session secret key decrypted with KMS",
		slog.String("kms_provider", c.config.KMSProvider))
	return key, nil
}

func (c *Container) initSigner() (cryptoService.Signer, error) {
	key, err := c.SecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key for signer: %w", err)
	}
	signer, err := cryptoService.NewSigner(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}
	return signer, nil
}

func (c *Container) initEnvelopeCipher() (cryptoService.EnvelopeCipher, error) {
	params := cryptoDomain.KDFParams{
		N:         c.config.KDFCostN,
		R:         c.config.KDFBlockSizeR,
		P:         c.config.KDFParallelismP,
		KeyLength: c.config.KDFKeyLength,
		TagLength: c.config.AEADTagLength,
		Algorithm: cryptoDomain.Algorithm(c.config.AEADAlgorithm),
	}
	envelopeCipher, err := cryptoService.NewEnvelopeCipher(params, c.AEADManager())
	if err != nil {
		return nil, fmt.Errorf("invalid password envelope parameters: %w", err)
	}
	return envelopeCipher, nil
}

func (c *Container) initSessionManager() (*sessionService.Manager, error) {
	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for session manager: %w", err)
	}
	return sessionService.NewManager(signer, c.config.SessionTTL), nil
}

func (c *Container) initSessionStore() (*sessionHTTP.Store, error) {
	manager, err := c.SessionManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get session manager for session store: %w", err)
	}

	accountUseCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for session store: %w", err)
	}

	cookies := sessionHTTP.CookieConfig{
		Name:   c.config.SessionCookieName,
		Secure: c.config.SessionCookieSecure,
	}
	return sessionHTTP.NewStore(manager, accountUseCase, cookies, c.Logger()), nil
}
