package usecase

import (
	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer token to the caller and the side of the booking they act for.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, booking.ActorRole, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, booking.ActorRole, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role, err := booking.NewActorRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}

	return claims.UserID, role, nil
}
