package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPin(t *testing.T) {
	hash := HashPin("1234")
	// SHA-256 十六进制截断到 16 位
	assert.Len(t, hash, 16)
	assert.NotEqual(t, "1234", hash)

	// 同 PIN 同哈希，不同 PIN 不同哈希
	assert.Equal(t, hash, HashPin("1234"))
	assert.NotEqual(t, hash, HashPin("4321"))
}

func TestUser_CheckPin(t *testing.T) {
	hash := HashPin("1234")
	user := User{PinHash: &hash}

	assert.True(t, user.HasPin())
	assert.True(t, user.CheckPin("1234"))
	assert.False(t, user.CheckPin("9999"))

	var none User
	assert.False(t, none.HasPin())
	assert.False(t, none.CheckPin("1234"))
}

func TestUser_Currency(t *testing.T) {
	var user User
	assert.Equal(t, "$", user.Currency())

	user.CurrencySymbol = "€"
	assert.Equal(t, "€", user.Currency())
}
