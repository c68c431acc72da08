package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/minseo-cho/gomall/internal/config"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{TokenSecret: "top-secret"}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}
