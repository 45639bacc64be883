package cognito

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"cat-care-diary/internal/platform/httpclient"
	"cat-care-diary/internal/platform/logger"
	"cat-care-diary/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrUnknownKey     = errors.New("unknown signing key")
	ErrNotConfigured  = errors.New("cognito verifier not configured")
	ErrClaimsMismatch = errors.New("token claims mismatch")
)

// jwksTTL: cada cuánto se refresca el set de claves aunque no falte
// ningún kid.
const jwksTTL = time.Hour

// Verifier valida access tokens de Cognito contra el JWKS del issuer.
// Audience no se exige (los access tokens de Cognito no traen aud);
// si clientID está seteado se compara contra el claim client_id.
type Verifier struct {
	issuer   string
	clientID string
	http     *httpclient.Client
	log      logger.Logger

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func NewVerifier(issuer, clientID string, client *httpclient.Client, log logger.Logger) *Verifier {
	if client == nil {
		client = httpclient.New(0)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Verifier{
		issuer:   strings.TrimRight(strings.TrimSpace(issuer), "/"),
		clientID: strings.TrimSpace(clientID),
		http:     client,
		log:      log,
		keys:     map[string]*rsa.PublicKey{},
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.issuer == "" {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrUnknownKey
		}
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("cognito verify failed: %w", err)
	}

	// client_id: match opcional, solo si está configurado
	if v.clientID != "" {
		if cid, _ := claims["client_id"].(string); cid != "" && cid != v.clientID {
			return auth.Claims{}, ErrClaimsMismatch
		}
	}

	sub, _ := claims["sub"].(string)
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, errors.New("cognito token missing sub")
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	return auth.Claims{
		UserID:   sub,
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
	}, nil
}

// key devuelve la clave del kid, refrescando el JWKS si no la tiene o
// si el cache está viejo.
func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	k, ok := v.keys[kid]
	fresh := time.Since(v.fetchedAt) < jwksTTL
	v.mu.RUnlock()

	if ok && fresh {
		return k, nil
	}

	if err := v.refresh(ctx); err != nil {
		// si tenemos una clave vieja para el kid, la usamos igual
		if ok {
			return k, nil
		}
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	k, ok = v.keys[kid]
	if !ok {
		return nil, ErrUnknownKey
	}
	return k, nil
}

type jwksDocument struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *Verifier) refresh(ctx context.Context) error {
	var doc jwksDocument
	url := v.issuer + "/.well-known/jwks.json"
	if err := v.http.GetJSON(ctx, url, nil, &doc); err != nil {
		v.log.Error("jwks fetch failed", map[string]any{"err": err.Error()})
		return fmt.Errorf("cognito jwks fetch: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := parseRSAKey(k.N, k.E)
		if err != nil {
			v.log.Warn("skipping malformed jwk", map[string]any{"kid": k.Kid, "err": err.Error()})
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("cognito jwks: no usable keys")
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()
	return nil
}

func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}

	exp := 0
	for _, b := range eb {
		exp = exp<<8 | int(b)
	}
	if exp <= 0 {
		return nil, errors.New("invalid exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: exp,
	}, nil
}
