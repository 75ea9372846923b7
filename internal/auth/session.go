package auth

import (
	"time"

	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// BackOfficeAudience is the audience claim of tokens issued by the JSON login
// surface, as opposed to tokens issued at the OAuth token endpoint, which
// carry their client id.
const BackOfficeAudience = "cardapio-backoffice"

// SessionTTL is how long a back-office login stays valid.
const SessionTTL = 2 * time.Hour

// SignAdminToken signs a back-office session token for an administrator. It
// carries the same claim set the token endpoint produces so the middleware
// treats both the same way.
func SignAdminToken(secret []byte, admin models.Administrator, now time.Time) (string, int64, error) {
	claims := jwt.MapClaims{
		"aud":   BackOfficeAudience,
		"iat":   now.Unix(),
		"exp":   now.Add(SessionTTL).Unix(),
		"uid":   admin.ID,
		"email": admin.Email,
		"role":  "admin",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	if err != nil {
		return "", 0, err
	}
	return token, int64(SessionTTL.Seconds()), nil
}
