package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredencialClaims son los claims del token de la app. Empresa y rol viajan
// en el token para que el middleware RBAC y el aislamiento por tenant no
// consulten la DB en cada petición.
type CredencialClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"uid"`
	CompanyID string `json:"empresa"`
	Role      string `json:"rol"` // "ADMIN" | "COBRADOR" | "SUPER_ADMIN"
}

// Generate emite el token de sesión firmado con HS256. El rol puede venir
// vacío; el middleware lo rechaza al autorizar, no al emitir.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := CredencialClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve usuario, empresa y rol.
// Solo se acepta HS256: un token con otro alg es inválido de plano.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &CredencialClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*CredencialClaims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}
