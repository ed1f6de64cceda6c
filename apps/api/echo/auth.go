package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"edupro/core"
	"edupro/core/user"
)

var (
	appName                   string
	secretKey                 []byte
	jwtExpirationDelta        time.Duration
	jwtRefreshExpirationDelta time.Duration

	// appJWTConfig is the default JWT auth middleware config; set up by initAuth.
	appJWTConfig   middleware.JWTConfig
	contextUserKey = "user"
)

// Claims represents the authorization claims transmitted via a JWT.
// The embedded user snapshot is advisory; access decisions always run
// against the live store (see getContextUser).
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64       `json:"oriat,omitempty"`
	Username     string      `json:"username,omitempty"`
	FullName     string      `json:"fullName,omitempty"`
	Role         user.Role   `json:"role,omitempty"`
	Status       user.Status `json:"status,omitempty"`
}

func initAuth(conf *core.Config) echo.MiddlewareFunc {
	appName = conf.AppName
	secretKey = []byte(conf.SecretKey)
	jwtExpirationDelta = conf.Server.JWTExpirationDelta
	jwtRefreshExpirationDelta = conf.Server.JWTRefreshExpirationDelta

	appJWTConfig = middleware.JWTConfig{
		SigningKey:    secretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
	return middleware.JWTWithConfig(appJWTConfig)
}

func GetUserClaims(usr user.User, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    appName,
			Subject:   usr.ID,
			Audience:  "EduPro",
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Username:     usr.Username,
		FullName:     usr.FullName,
		Role:         usr.Role,
		Status:       usr.Status,
	}
}

// authenticate logs the user in by username only. Account status is not
// checked here; a Pending user gets a session and hits the access gate
// on every protected route instead.
func authenticate(uname string, svc user.Service) (user.User, *Claims, error) {
	usr, err := svc.Login(uname)
	if err != nil {
		if errors.Cause(err) == user.ErrInvalidCredentials {
			return user.User{}, nil, errAuthenticationFailed
		}
		return user.User{}, nil, errors.Wrap(err, "logging user in")
	}
	return usr, GetUserClaims(usr), nil
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(secretKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextUser re-derives the live user from the store on every request;
// the token's embedded snapshot never short-circuits this lookup so that
// an approval or a deletion takes effect immediately.
func getContextUser(ctx echo.Context, svc user.Service, clms ...Claims) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return user.User{}, errors.Wrap(err, "getting context claims")
		}
	}

	usr, err := svc.GetByID(claims.Subject)
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}

// parseHeaderClaims parses the Authorization header without the JWT
// middleware; for routes where auth is optional.
func parseHeaderClaims(ctx echo.Context) (Claims, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return Claims{}, errUnauthorized
	}

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errUnauthorized
	}
	return *claims, nil
}

func refreshToken(ctx echo.Context, svc user.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	// the user must still exist; a deleted account cannot refresh
	usr, err := getContextUser(ctx, svc, claims)
	if err != nil {
		return "", errors.Wrap(err, "getting context user")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(jwtRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetUserClaims(usr, claims.OrigIssuedAt)
	token, err := GenerateToken(newClaims)
	return token, errors.Wrap(err, "generating token")
}
