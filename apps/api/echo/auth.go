package echoapi

import (
	"encoding/json"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
)

const contextTokenKey = "userToken"

// flexString accepts both JSON strings and numbers; ids issued by the auth service may be either.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = flexString(n.String())
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	*s = flexString(str)
	return nil
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	ID       flexString `json:"id" validate:"required"`
	Role     string     `json:"role" validate:"required,oneof=student teacher hod principal"`
	Table    string     `json:"table,omitempty" validate:"omitempty,identifier"`
	Branch   string     `json:"branch,omitempty" validate:"omitempty,identifier"`
	Year     string     `json:"year,omitempty"`
	RollNo   flexString `json:"roll_no,omitempty"`
	Username string     `json:"username,omitempty"`
}

// Session turns the claims into the chat session they describe.
func (c Claims) Session() chat.Session {
	return chat.Session{
		ID:       string(c.ID),
		Role:     chat.Role(c.Role),
		Table:    c.Table,
		Branch:   c.Branch,
		Year:     c.Year,
		RollNo:   string(c.RollNo),
		Username: c.Username,
	}
}

type authenticator struct {
	secretKey []byte
}

func newAuthenticator(conf *core.Config) authenticator {
	return authenticator{secretKey: []byte(conf.SecretKey)}
}

func (a authenticator) jwtConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    a.secretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// NewSessionClaims builds the claims of a token identifying sess.
func NewSessionClaims(sess chat.Session, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   sess.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		ID:       flexString(sess.ID),
		Role:     string(sess.Role),
		Table:    sess.Table,
		Branch:   sess.Branch,
		Year:     sess.Year,
		RollNo:   flexString(sess.RollNo),
		Username: sess.Username,
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(claims *Claims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)

	ss, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// getContextClaims returns the verified claims and the raw token of the request.
func getContextClaims(ctx echo.Context) (Claims, string, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, token.Raw, nil
		}
	}
	return Claims{}, "", errUnauthorized
}

func contextHasAnyRole(ctx echo.Context, roles []chat.Role) bool {
	if len(roles) == 0 {
		return true
	}
	if claims, _, err := getContextClaims(ctx); err == nil {
		for _, role := range roles {
			if chat.Role(claims.Role) == role {
				return true
			}
		}
	}
	return false
}
