// Package userdir — клиент внешнего каталога пользователей.
package userdir

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/ctxmeta"
	"resty.dev/v3"
)

var _ ports.UserDirectory = (*Client)(nil)

const userPath = "/api/v1/users/{id}"

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// Client — HTTP-клиент каталога пользователей (GET /api/v1/users/{id}).
type Client struct {
	http *resty.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("userdir: base url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.RetryCount > 0 {
		wait := cfg.RetryWaitTime
		if wait <= 0 {
			wait = 100 * time.Millisecond
		}
		rc.SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(10 * wait)
		// Повторяем только сетевые ошибки и 5xx: 404 — окончательный ответ.
		rc.AddRetryConditions(func(res *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			code := res.StatusCode()
			return code >= 500 && code != http.StatusNotImplemented
		})
	}

	return &Client{http: rc}, nil
}

// GetUserByID — domain.NotFound(KindUser, id) на 404.
func (c *Client) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.InvalidArgument("user_id", id)
	}

	var u domain.User
	req := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&u)
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		req.SetHeader("X-Request-ID", rid)
	}

	resp, err := req.Get(userPath)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		return nil, domain.NotFound(domain.KindUser, id)
	case code < 200 || code >= 300:
		return nil, fmt.Errorf("get user %s: unexpected status %d", id, code)
	}
	if u.ID == "" {
		u.ID = id
	}
	return &u, nil
}

func (c *Client) Close() error {
	c.http.Close()
	return nil
}
