package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"ecell/config"
)

func testConfig(cost int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: cost}

	return cfg
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(testConfig(bcrypt.MinCost))

	password := "correct horse battery"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(testConfig(bcrypt.MinCost))
	password := "correct horse battery"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong horse battery", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasher(testConfig(customCost))

	hash, err := hasher.Hash("correct horse battery")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the configured cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	hash, err := hasher.Hash("correct horse battery")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
