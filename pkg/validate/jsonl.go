package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// StreamResult — статистика обработки потока записей.
type StreamResult struct {
	Valid   int
	Invalid int
}

func (r StreamResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid)
}

// ReadJSONLStream — читает JSONL, разбирает и проверяет каждую строку, валидные записи передаёт в sink.
// Невалидные строки считаются и пропускаются, ошибка sink прерывает чтение.
// Пустые строки пропускаются.
func ReadJSONLStream[T any](ctx context.Context, r io.Reader, check func(*T) error,
	sink func(context.Context, *T) error) (StreamResult, error) {
	var res StreamResult

	scanner := bufio.NewScanner(r)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		v, err := FromJSON(line, check)
		if err != nil {
			res.Invalid++
			continue
		}
		if err := sink(ctx, v); err != nil {
			return res, fmt.Errorf("line %d: %w", res.Valid+res.Invalid+1, err)
		}
		res.Valid++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
