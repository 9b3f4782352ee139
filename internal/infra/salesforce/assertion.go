package salesforce

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const assertionTTL = 300 * time.Second

// assertion signs the JWT-bearer grant assertion with the connected app's
// RS256 key. It never touches the network.
func (s *Session) assertion() (string, error) {
	pemKey := s.cfg.PrivateKeyPEM()
	if strings.TrimSpace(pemKey) == "" {
		return "", ErrInvalidPrivateKey
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pemKey))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}

	claims := jwt.MapClaims{
		"iss": s.cfg.ConsumerKey,
		"sub": s.cfg.Username,
		"aud": s.cfg.Audience,
		"exp": s.now().Add(assertionTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	return signed, nil
}

func (s *Session) grantForm() (url.Values, error) {
	assertion, err := s.assertion()
	if err != nil {
		return nil, err
	}

	return url.Values{
		"grant_type": {s.cfg.GrantType},
		"assertion":  {assertion},
	}, nil
}
