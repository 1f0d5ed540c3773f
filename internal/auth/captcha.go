package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stellar-admin/stellar-admin/internal/shared"
)

const captchaKeyPrefix = "captcha:img:"

// Characters easily confused with each other are excluded.
const captchaCharset = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// Captcha is the challenge returned to a client before login.
type Captcha struct {
	ID  string `json:"id"`
	Img string `json:"img"`
}

// CaptchaStore issues short-lived image challenges and checks answers.
// A challenge is strictly single-use: checking it consumes it.
type CaptchaStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCaptchaStore constructs a CaptchaStore.
func NewCaptchaStore(client *redis.Client, ttl time.Duration) *CaptchaStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CaptchaStore{client: client, ttl: ttl}
}

// Create generates a 4-character challenge, stores the expected code and
// returns the rendered image as an inline SVG data URI.
func (s *CaptchaStore) Create(ctx context.Context, width, height int) (*Captcha, error) {
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 50
	}
	code, err := randomCode(4)
	if err != nil {
		return nil, fmt.Errorf("auth: generate captcha: %w", err)
	}
	id := uuid.NewString()
	if err := s.client.Set(ctx, captchaKeyPrefix+id, code, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("auth: store captcha: %w", err)
	}
	svg := renderCaptchaSVG(code, width, height)
	return &Captcha{
		ID:  id,
		Img: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg)),
	}, nil
}

// Check consumes the challenge and compares the answer case-insensitively.
// A missing, expired or already-used challenge fails the same way as a
// wrong answer.
func (s *CaptchaStore) Check(ctx context.Context, id, answer string) error {
	expected, err := s.client.GetDel(ctx, captchaKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return shared.ErrCaptchaInvalid
		}
		return fmt.Errorf("auth: check captcha: %w", err)
	}
	if !strings.EqualFold(expected, answer) {
		return shared.ErrCaptchaInvalid
	}
	return nil
}

func randomCode(n int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(captchaCharset)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(captchaCharset[idx.Int64()])
	}
	return b.String(), nil
}

// renderCaptchaSVG draws the code as rotated glyphs on a solid background.
// The visual noise is deliberately mild; this is a back-office, not a
// public signup form.
func renderCaptchaSVG(code string, width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#1f6feb"/>`, width, height)
	colors := []string{"#ffffff", "#ffd866", "#a9dc76", "#78dce8"}
	step := width / (len(code) + 1)
	for i, ch := range code {
		x := step * (i + 1)
		y := height/2 + 8
		rotate := (i%2)*20 - 10
		fmt.Fprintf(&b,
			`<text x="%d" y="%d" font-size="%d" font-family="monospace" fill="%s" transform="rotate(%d %d %d)">%c</text>`,
			x, y, height/2, colors[i%len(colors)], rotate, x, y, ch)
	}
	fmt.Fprintf(&b, `<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#ffffff55" stroke-width="2"/>`, height/3, width, 2*height/3)
	b.WriteString("</svg>")
	return b.String()
}
