package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/port"
)

// LoginUseCase exchanges operator credentials for a bearer token.
type LoginUseCase struct {
	verifier port.CredentialVerifier
	issuer   port.TokenIssuer
	logger   *slog.Logger
}

// NewLoginUseCase wires dependencies.
func NewLoginUseCase(verifier port.CredentialVerifier, issuer port.TokenIssuer, logger *slog.Logger) *LoginUseCase {
	return &LoginUseCase{verifier: verifier, issuer: issuer, logger: logger}
}

// Execute verifies the credentials and issues a token. A mismatch returns an
// error wrapping model.ErrInvalidCredentials.
func (uc *LoginUseCase) Execute(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	user, err := uc.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		uc.logger.InfoContext(ctx, "login rejected", "username", req.Username)
		return dto.LoginResponse{}, fmt.Errorf("verify credentials: %w", err)
	}

	token, expiresAt, err := uc.issuer.GenerateToken(user)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}

	uc.logger.InfoContext(ctx, "login succeeded", "username", user.Username)

	return dto.LoginResponse{
		Token:       token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Roles:       user.Roles,
	}, nil
}
