package credentials

import (
	"time"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/pkg/auth"
)

// JWTIssuer adapts auth.JWTService to port.TokenIssuer.
type JWTIssuer struct {
	jwt *auth.JWTService
}

func NewJWTIssuer(jwt *auth.JWTService) *JWTIssuer {
	return &JWTIssuer{jwt: jwt}
}

func (i *JWTIssuer) GenerateToken(user model.User) (string, time.Time, error) {
	return i.jwt.GenerateToken(user.Username, user.DisplayName, user.Roles)
}
