package config

import "time"

type ClientConfig interface {
	GetRequestTimeout() time.Duration
	GetOTPResendCooldown() time.Duration
	GetLocationMaxAge() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

// GetRequestTimeout bounds every API call, including token refreshes.
func (Client) GetRequestTimeout() time.Duration {
	return 15 * time.Second
}

func (Client) GetOTPResendCooldown() time.Duration {
	return 60 * time.Second
}

func (Client) GetLocationMaxAge() time.Duration {
	return 1 * time.Second
}
