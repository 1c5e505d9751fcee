package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// DetectFormat — формат по расширению файла; по умолчанию JSON.
func DetectFormat(path string) InputFormat {
	if strings.ToLower(filepath.Ext(path)) == ".jsonl" {
		return FormatJSONL
	}
	return FormatJSON
}

// ReadFile — читает файл как JSON (объект или массив объектов) или JSONL
// и передаёт каждую валидную запись в sink.
func ReadFile[T any](ctx context.Context, path string, format InputFormat, check func(*T) error,
	sink func(context.Context, *T) error) (StreamResult, error) {
	if format == FormatAuto {
		format = DetectFormat(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return StreamResult{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return StreamResult{}, fmt.Errorf("read file: %w", err)
		}
		return readJSON(ctx, raw, check, sink)
	case FormatJSONL:
		return ReadJSONLStream(ctx, file, check, sink)
	default:
		return StreamResult{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// readJSON — массив разбирается поэлементно: одна плохая запись не отменяет остальные.
func readJSON[T any](ctx context.Context, raw []byte, check func(*T) error,
	sink func(context.Context, *T) error) (StreamResult, error) {
	var res StreamResult

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		v, err := FromJSON(trimmed, check)
		if err != nil {
			return StreamResult{Invalid: 1}, err
		}
		if err := sink(ctx, v); err != nil {
			return res, err
		}
		return StreamResult{Valid: 1}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return res, fmt.Errorf("invalid json array: %w", err)
	}
	for i, item := range items {
		v, err := FromJSON(item, check)
		if err != nil {
			res.Invalid++
			continue
		}
		if err := sink(ctx, v); err != nil {
			return res, fmt.Errorf("item %d: %w", i, err)
		}
		res.Valid++
	}
	return res, nil
}
