package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidDocumentToken = errors.New("invalid document token")

// DocumentClaims identify one stored document. The token is what clients
// send back as documentId; the expiry matches the stored document's.
type DocumentClaims struct {
	DocumentID string `json:"doc"`
	jwt.RegisteredClaims
}

type DocumentTokenSigner struct {
	secret []byte
}

func NewDocumentTokenSigner(secret string) *DocumentTokenSigner {
	return &DocumentTokenSigner{secret: []byte(secret)}
}

func (s *DocumentTokenSigner) Generate(documentID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := DocumentClaims{
		DocumentID: documentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Subject:   documentID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates the signature and expiry and returns the document id.
func (s *DocumentTokenSigner) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DocumentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Join(ErrInvalidDocumentToken, err)
	}
	claims, ok := token.Claims.(*DocumentClaims)
	if !ok || !token.Valid || claims.DocumentID == "" {
		return "", ErrInvalidDocumentToken
	}
	return claims.DocumentID, nil
}

// RandomSecret returns a 32 byte hex secret for signing when none is configured.
func RandomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
