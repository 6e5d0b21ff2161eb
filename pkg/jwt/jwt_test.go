package jwt_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/presales-crm/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testEmpID    = "EMP004"
	testUsername = "asha"
	testRole     = "ROLE_SALES"
)

func newHMAC(t *testing.T, expMin int) *pkgjwt.Manager {
	t.Helper()
	m, err := pkgjwt.NewManager(pkgjwt.Options{Secret: testSecret, Issuer: "crm", Audience: "crm-web", ExpMinutes: expMin})
	require.NoError(t, err)
	return m
}

func rsaPEM(t *testing.T) (priv, pub []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	priv = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pub = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return priv, pub
}

func TestHS256_GenerateAndParse(t *testing.T) {
	m := newHMAC(t, 60)
	tok, err := m.Generate(testEmpID, testUsername, testRole)
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, testEmpID, claims.EmpID())
	assert.Equal(t, testUsername, claims.Username)
	assert.Equal(t, testRole, claims.RoleType)
}

func TestHS256_TokenExpirado_RetornaError(t *testing.T) {
	m := newHMAC(t, -1)
	tok, err := m.Generate(testEmpID, testUsername, testRole)
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestHS256_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := newHMAC(t, 60).Generate(testEmpID, testUsername, testRole)
	require.NoError(t, err)

	otro, err := pkgjwt.NewManager(pkgjwt.Options{Secret: "otro-secret", Issuer: "crm", Audience: "crm-web", ExpMinutes: 60})
	require.NoError(t, err)
	_, err = otro.Parse(tok)
	assert.Error(t, err)
}

func TestAudienceDistinta_RetornaError(t *testing.T) {
	tok, err := newHMAC(t, 60).Generate(testEmpID, testUsername, testRole)
	require.NoError(t, err)

	otro, err := pkgjwt.NewManager(pkgjwt.Options{Secret: testSecret, Issuer: "crm", Audience: "otra-app", ExpMinutes: 60})
	require.NoError(t, err)
	_, err = otro.Parse(tok)
	assert.Error(t, err)
}

func TestSinSecret_Error(t *testing.T) {
	_, err := pkgjwt.NewManager(pkgjwt.Options{})
	assert.Error(t, err)
}

func TestRS256_GenerateAndParse(t *testing.T) {
	priv, pub := rsaPEM(t)
	m, err := pkgjwt.NewManager(pkgjwt.Options{PrivateKeyPEM: priv, PublicKeyPEM: pub, Issuer: "crm", ExpMinutes: 120})
	require.NoError(t, err)

	tok, err := m.Generate(testEmpID, testUsername, testRole)
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, testEmpID, claims.EmpID())
}

func TestRS256_RechazaTokenHS256(t *testing.T) {
	priv, pub := rsaPEM(t)
	rsaManager, err := pkgjwt.NewManager(pkgjwt.Options{PrivateKeyPEM: priv, PublicKeyPEM: pub, Issuer: "crm", Audience: "crm-web", ExpMinutes: 60})
	require.NoError(t, err)

	tok, err := newHMAC(t, 60).Generate(testEmpID, testUsername, testRole)
	require.NoError(t, err)

	_, err = rsaManager.Parse(tok)
	assert.Error(t, err, "un token HS256 no debe validar contra RS256")
}

func TestRS256_SoloLlavePublica_NoFirma(t *testing.T) {
	_, pub := rsaPEM(t)
	m, err := pkgjwt.NewManager(pkgjwt.Options{PublicKeyPEM: pub, ExpMinutes: 60})
	require.NoError(t, err)

	_, err = m.Generate(testEmpID, testUsername, testRole)
	assert.Error(t, err)
}
