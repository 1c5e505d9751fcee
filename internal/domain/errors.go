package domain

import (
	"errors"
	"fmt"
)

// Базовые ошибки домена; проверяются через errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrReferenced      = errors.New("referential integrity violation")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError — сущность kind с идентификатором ID отсутствует.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound — конструктор NotFoundError.
func NotFound(kind Kind, id string) error { return &NotFoundError{Kind: kind, ID: id} }

// ConflictError — конкурентное изменение сущности отклонено.
type ConflictError struct {
	Kind Kind
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent %s update, %s-id: %s", e.Kind, e.Kind, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflict — конструктор ConflictError.
func Conflict(kind Kind, id string) error { return &ConflictError{Kind: kind, ID: id} }

// ReferenceError — нарушена ссылочная целостность: при удалении на запись ещё ссылаются
// другие, при записи она ссылается на отсутствующую.
type ReferenceError struct {
	Kind       Kind
	ID         string
	Constraint string
	OnDelete   bool
}

func (e *ReferenceError) Error() string {
	if e.OnDelete {
		return fmt.Sprintf("%s %q is still referenced (%s)", e.Kind, e.ID, e.Constraint)
	}
	return fmt.Sprintf("%s %q references a missing record (%s)", e.Kind, e.ID, e.Constraint)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReferenced }

// InvalidArgument — ошибка входных данных по полю field.
func InvalidArgument(field, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidArgument, field, value)
}
