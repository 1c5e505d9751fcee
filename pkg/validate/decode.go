package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

// DecodeStrict — JSON без неизвестных полей и без данных после объекта.
// Ошибка разбора оборачивает domain.ErrInvalidArgument.
func DecodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %w", domain.ErrInvalidArgument, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("%w: invalid json: trailing data", domain.ErrInvalidArgument)
	}
	return nil
}

// FromJSON — строгий разбор и проверка значения через check (check может быть nil).
func FromJSON[T any](raw []byte, check func(*T) error) (*T, error) {
	var v T
	if err := DecodeStrict(raw, &v); err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(&v); err != nil {
			return nil, err
		}
	}
	return &v, nil
}
