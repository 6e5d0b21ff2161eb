package jwt

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/presales-crm/pkg/config"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Subject es el emp_id del empleado autenticado.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	RoleType string `json:"role_type"`
}

// EmpID devuelve el emp_id (claim sub).
func (c *Claims) EmpID() string {
	return c.Subject
}

// Options parámetros del Manager. Con PrivateKeyPEM/PublicKeyPEM se usa RS256; si no, HS256 con Secret.
type Options struct {
	Secret        string
	PrivateKeyPEM []byte
	PublicKeyPEM  []byte
	Issuer        string
	Audience      string
	ExpMinutes    int
}

// Manager emite y valida tokens de acceso.
type Manager struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	issuer    string
	audience  string
	ttl       time.Duration
}

// NewManager construye el Manager a partir de las opciones.
func NewManager(opts Options) (*Manager, error) {
	m := &Manager{
		issuer:   opts.Issuer,
		audience: opts.Audience,
		ttl:      time.Duration(opts.ExpMinutes) * time.Minute,
	}

	if len(opts.PrivateKeyPEM) > 0 || len(opts.PublicKeyPEM) > 0 {
		var priv *rsa.PrivateKey
		var err error
		if len(opts.PrivateKeyPEM) > 0 {
			priv, err = jwt.ParseRSAPrivateKeyFromPEM(opts.PrivateKeyPEM)
			if err != nil {
				return nil, fmt.Errorf("jwt: llave privada: %w", err)
			}
		}
		pub, err := jwt.ParseRSAPublicKeyFromPEM(opts.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("jwt: llave pública: %w", err)
		}
		m.method = jwt.SigningMethodRS256
		m.verifyKey = pub
		if priv != nil {
			m.signKey = priv
		}
		return m, nil
	}

	if opts.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	m.method = jwt.SigningMethodHS256
	m.signKey = []byte(opts.Secret)
	m.verifyKey = []byte(opts.Secret)
	return m, nil
}

// FromConfig lee las llaves PEM (si están configuradas) y construye el Manager.
func FromConfig(cfg config.JWTConfig) (*Manager, error) {
	opts := Options{
		Secret:     cfg.Secret,
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		ExpMinutes: cfg.Expiration,
	}
	if cfg.UsesRSA() {
		priv, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("jwt: leer llave privada: %w", err)
		}
		pub, err := os.ReadFile(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("jwt: leer llave pública: %w", err)
		}
		opts.PrivateKeyPEM = priv
		opts.PublicKeyPEM = pub
	}
	return NewManager(opts)
}

// Generate genera un token firmado para el empleado indicado.
func (m *Manager) Generate(empID, username, roleType string) (string, error) {
	if m.signKey == nil {
		return "", fmt.Errorf("jwt: no hay llave de firma configurada")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   empID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
		RoleType: roleType,
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}
	return jwt.NewWithClaims(m.method, claims).SignedString(m.signKey)
}

// Parse valida firma, algoritmo, expiración y (si están configurados) issuer y audience.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return m.verifyKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("claim sub vacío")
	}
	return claims, nil
}
