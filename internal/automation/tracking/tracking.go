package tracking

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid unsubscribe token")
	ErrInvalidSignature = errors.New("invalid click signature")
)

const unsubscribeTokenTTL = 365 * 24 * time.Hour

// Recipient identifies who an instrumented email goes to.
type Recipient struct {
	ExecutionID    uuid.UUID
	OrganizationID uuid.UUID
	ContactID      uuid.UUID
	Email          string
}

// Instrumented is an email body with tracking in place.
type Instrumented struct {
	HTML           string
	UnsubscribeURL string
}

// UnsubscribeClaims are carried by the token in every unsubscribe link.
type UnsubscribeClaims struct {
	OrganizationID string `json:"org"`
	ContactID      string `json:"cid,omitempty"`
	ExecutionID    string `json:"eid,omitempty"`
	Email          string `json:"email"`
	jwt.RegisteredClaims
}

// Service builds and verifies tracking URLs served under baseURL.
type Service struct {
	baseURL string
	secret  []byte
	now     func() time.Time
}

func New(baseURL, secret string) *Service {
	return &Service{
		baseURL: baseURL,
		secret:  []byte(secret),
		now:     time.Now,
	}
}

// Instrument rewrites links, then appends the unsubscribe footer and the open pixel.
func (s *Service) Instrument(body string, r Recipient) (Instrumented, error) {
	rewritten, err := rewriteLinks(body, func(href, linkType string, index int) string {
		return s.ClickURL(r.ExecutionID, href, linkType, index)
	})
	if err != nil {
		return Instrumented{}, err
	}

	token, err := s.UnsubscribeToken(r)
	if err != nil {
		return Instrumented{}, err
	}
	unsubscribeURL := s.UnsubscribeURL(token)

	footer := fmt.Sprintf(
		`<div style="margin-top:24px;font-size:12px;color:#6b7280;text-align:center">`+
			`Don't want these emails? <a href="%s" style="color:#6b7280">Unsubscribe</a></div>`,
		html.EscapeString(unsubscribeURL),
	)
	pixel := fmt.Sprintf(
		`<img src="%s" width="1" height="1" alt="" style="display:none;border:0;width:1px;height:1px" />`,
		html.EscapeString(s.PixelURL(r.ExecutionID)),
	)

	out := insertBeforeBodyClose(rewritten, footer)
	out = insertBeforeBodyClose(out, pixel)
	return Instrumented{HTML: out, UnsubscribeURL: unsubscribeURL}, nil
}

func (s *Service) PixelURL(executionID uuid.UUID) string {
	return s.baseURL + "/t/o/" + executionID.String()
}

func (s *Service) ClickURL(executionID uuid.UUID, target, linkType string, index int) string {
	q := url.Values{}
	q.Set("u", target)
	q.Set("k", linkType)
	q.Set("i", strconv.Itoa(index))
	q.Set("s", s.sign(executionID, target))
	return s.baseURL + "/t/c/" + executionID.String() + "?" + q.Encode()
}

// VerifyClick checks that target was signed for executionID.
func (s *Service) VerifyClick(executionID uuid.UUID, target, signature string) error {
	want := s.sign(executionID, target)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (s *Service) sign(executionID uuid.UUID, target string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(executionID.String()))
	mac.Write([]byte{0})
	mac.Write([]byte(target))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}

func (s *Service) UnsubscribeURL(token string) string {
	return s.baseURL + "/unsubscribe?token=" + url.QueryEscape(token)
}

func (s *Service) UnsubscribeToken(r Recipient) (string, error) {
	now := s.now()
	claims := UnsubscribeClaims{
		OrganizationID: r.OrganizationID.String(),
		Email:          r.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(unsubscribeTokenTTL)),
		},
	}
	if r.ContactID != uuid.Nil {
		claims.ContactID = r.ContactID.String()
	}
	if r.ExecutionID != uuid.Nil {
		claims.ExecutionID = r.ExecutionID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign unsubscribe token: %w", err)
	}
	return signed, nil
}

func (s *Service) ParseUnsubscribeToken(token string) (UnsubscribeClaims, error) {
	var claims UnsubscribeClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return UnsubscribeClaims{}, ErrInvalidToken
	}
	if claims.Email == "" || claims.OrganizationID == "" {
		return UnsubscribeClaims{}, ErrInvalidToken
	}
	return claims, nil
}

// Pixel is a transparent 1x1 GIF.
var Pixel = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}
