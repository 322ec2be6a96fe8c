package token

import (
	"wordsrecord/internal/platform/middleware"
)

// ServiceAdapter bridges the token service to the auth middleware's
// validator contract.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{
		EditorID: claims.Subject,
		Role:     claims.Role,
	}, nil
}
