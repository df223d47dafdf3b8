package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSigningUnavailable is returned by GenerateToken when only a public key is configured.
var ErrSigningUnavailable = errors.New("auth: no signing key configured")

// JWTConfig holds JWT configuration. Exactly one key source is used, in the order
// PrivateKeyPEM, PublicKeyPEM, Secret.
type JWTConfig struct {
	PrivateKeyPEM string
	PublicKeyPEM  string
	// Secret enables HS256 for development setups without a key pair.
	Secret string

	Issuer     string
	Expiration time.Duration
}

// JWTService signs and validates tokens.
type JWTService struct {
	issuer     string
	expiration time.Duration

	method  jwt.SigningMethod
	signKey any
	verKey  any
}

// NewJWTService creates a JWTService from cfg.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{issuer: cfg.Issuer, expiration: cfg.Expiration}

	switch {
	case cfg.PrivateKeyPEM != "":
		priv, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse RSA private key: %w", err)
		}
		svc.method = jwt.SigningMethodRS256
		svc.signKey = priv
		svc.verKey = &priv.PublicKey

	case cfg.PublicKeyPEM != "":
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		svc.method = jwt.SigningMethodRS256
		svc.verKey = pub

	case cfg.Secret != "":
		svc.method = jwt.SigningMethodHS256
		svc.signKey = []byte(cfg.Secret)
		svc.verKey = []byte(cfg.Secret)

	default:
		return nil, errors.New("jwt configuration requires PrivateKeyPEM, PublicKeyPEM, or Secret")
	}

	return svc, nil
}

// GenerateToken issues a token for subject acting on behalf of organisationID.
func (s *JWTService) GenerateToken(subject string, organisationID uuid.UUID, roles []string) (string, error) {
	if s.signKey == nil {
		return "", ErrSigningUnavailable
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		OrganisationID: organisationID,
		Roles:          roles,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and checks its signature, lifetime and issuer.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{s.method.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.verKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file %q: %w", path, err)
	}
	return data, nil
}

// GenerateKeyPair returns a fresh 2048-bit RSA key pair as PEM. Intended for local setups and tests.
func GenerateKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("generate RSA key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal public key: %w", err)
	}

	privateKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privateKeyPEM, publicKeyPEM, nil
}
