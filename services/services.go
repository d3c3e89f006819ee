package services

import (
	"github.com/blogem/weblog/repositories"
)

// Services holds all service instances
type Services struct {
	WebLog WebLogService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, cacheSize int) (*Services, error) {
	webLog, err := NewWebLogService(repos.WebLog, cacheSize)
	if err != nil {
		return nil, err
	}

	return &Services{
		WebLog: webLog,
	}, nil
}
