package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"spendbot/config"
)

var jwtSecret []byte

// Claims 会话令牌载荷，PIN 校验通过后签发
type Claims struct {
	OwnerID string `json:"owner_id"`
	jwt.RegisteredClaims
}

// InitJWT 初始化签名密钥，必须在签发/解析之前调用
func InitJWT(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWT.Secret)
}

// GenerateSessionToken 为指定用户签发会话令牌
func GenerateSessionToken(ownerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "spendbot",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseSessionToken 解析并校验会话令牌
func ParseSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非法的签名算法")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的会话令牌")
	}
	return claims, nil
}
