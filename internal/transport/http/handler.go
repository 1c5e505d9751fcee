package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/internal/usecase"
	"github.com/Gunvolt24/jobboard/pkg/validate"
	"github.com/gin-gonic/gin"
)

const (
	maxBodySize  = 1 << 20
	maxAssetSize = 5 << 20 // предел размера загружаемого изображения
)

// Services — прикладные сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Categories    ports.CategoryService
	Jobs          ports.JobService
	Adverts       ports.AdvertService
	Offers        ports.OfferService
	Notifications ports.NotificationService
	Sessions      ports.SessionService
}

type Handler struct {
	svc     Services
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — handlerTimeout <= 0 отключает ограничение времени обработки запроса.
func NewHandler(svc Services, log ports.Logger, handlerTimeout time.Duration) *Handler {
	return &Handler{svc: svc, log: log, timeout: handlerTimeout}
}

// statusOf — HTTP-статус и текст ответа для ошибки сервиса.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrReferenced):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, usecase.ErrAssetStorageDisabled):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timeout"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// fail — пишет ошибку в ответ и прерывает цепочку обработчиков.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	status, msg := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorf(c.Request.Context(), "%s failed: %v", op, err)
	} else {
		h.log.Warnf(c.Request.Context(), "%s rejected status=%d: %v", op, status, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// readPayload — тело запроса в dst: JSON либо multipart/form-data
// с JSON в поле "payload" и необязательным файлом "image".
func readPayload(c *gin.Context, dst any) (*domain.Asset, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return nil, validate.DecodeStrict(raw, dst)
	}

	if err := validate.DecodeStrict([]byte(c.PostForm("payload")), dst); err != nil {
		return nil, err
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.InvalidArgument("image", err.Error())
	}
	if fh.Size > maxAssetSize {
		return nil, domain.InvalidArgument("image", fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &domain.Asset{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
