package config

import "time"

type FakeAPIConfig interface {
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenLength() int
	GetSigningSecret() string
	GetOTPLength() int
}

type FakeAPI struct{}

var _ FakeAPIConfig = FakeAPI{}

func (FakeAPI) GetAccessTokenExpiry() time.Duration {
	return 15 * time.Minute
}

func (FakeAPI) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

func (FakeAPI) GetSigningSecret() string {
	return GetEnv("FAKEAPI_SECRET", "local-development-secret")
}

func (FakeAPI) GetOTPLength() int {
	return 6
}
