package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Role is the coarse authorization split carried in token claims.
// Account provisioning itself lives outside this service.
type Role string

const (
	RoleAgent   Role = "agent"
	RoleManager Role = "manager"
)

type Service interface {
	// GenerateAccessToken mints an access token for an agent or manager.
	GenerateAccessToken(agentID string, teamID string, role Role) (token string, expiresAt int64, err error)

	// GenerateStreamToken mints a short-lived token for SSE connections,
	// which cannot carry an Authorization header from EventSource.
	GenerateStreamToken(agentID string, teamID string) (token string, expiresIn int, err error)

	// ValidateStreamToken validates a stream token and returns the agent
	// and team IDs.
	ValidateStreamToken(tokenString string) (agentID string, teamID string, err error)

	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey            string
	accessExpirationTime string
	tokenAuth            *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpirationTime string) Service {
	return &JWTService{
		secretKey:            secretKey,
		accessExpirationTime: accessExpirationTime,
		tokenAuth:            jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(agentID string, teamID string, role Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"agent_id": agentID,
		"team_id":  teamID,
		"role":     string(role),
		"type":     "access",
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateStreamToken(agentID string, teamID string) (string, int, error) {
	expiresIn := 300 // 5 minutes
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"agent_id": agentID,
		"team_id":  teamID,
		"type":     "stream",
		"exp":      expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

func (j *JWTService) ValidateStreamToken(tokenString string) (string, string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "stream" {
		return "", "", jwt.ErrInvalidJWT()
	}

	agentID, err := stringClaim(token, "agent_id")
	if err != nil {
		return "", "", err
	}
	teamID, err := stringClaim(token, "team_id")
	if err != nil {
		return "", "", err
	}

	return agentID, teamID, nil
}

func stringClaim(token jwt.Token, name string) (string, error) {
	val, ok := token.Get(name)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	s, ok := val.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	return s, nil
}
