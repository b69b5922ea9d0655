package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

// UserInfo is the identity assertion extracted from the provider: a stable
// subject id plus the primary email.
type UserInfo struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
}

type Provider interface {
	ConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
	Name() string
}

func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
