package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
)

// Service issues and verifies the bearer tokens used by the API. The subject
// claim carries the admin username or the employee mobile number; downstream
// code resolves it through the respective directory.
type Service interface {
	GenerateAccessToken(subject string, role auth.Role) (token string, expiresAt int64, err error)
	ExtractSubject(tokenString string) (subject string, role auth.Role, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey           string
	accessExpirationStr string
	tokenAuth           *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpiration string) Service {
	return &JWTService{
		secretKey:           secretKey,
		accessExpirationStr: accessExpiration,
		tokenAuth:           jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(subject string, role auth.Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessExpirationStr)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"subject": subject,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// ExtractSubject decodes and validates a raw token string. The HTTP layer
// normally goes through jwtauth middleware instead; this is for callers that
// hold a bare credential.
func (j *JWTService) ExtractSubject(tokenString string) (string, auth.Role, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}

	if err := jwt.Validate(token); err != nil {
		return "", "", auth.ErrInvalidToken
	}

	subjectVal, ok := token.Get("subject")
	if !ok {
		return "", "", auth.ErrInvalidToken
	}
	subject, ok := subjectVal.(string)
	if !ok || subject == "" {
		return "", "", auth.ErrInvalidToken
	}

	roleVal, ok := token.Get("role")
	if !ok {
		return "", "", auth.ErrInvalidToken
	}
	roleStr, ok := roleVal.(string)
	if !ok {
		return "", "", auth.ErrInvalidToken
	}

	return subject, auth.Role(roleStr), nil
}
