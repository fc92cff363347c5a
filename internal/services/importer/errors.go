package importer

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoStatuses — в базе нет ни одного статуса: импорт прерывается
	// до обработки первой строки.
	ErrNoStatuses = errors.New("no statuses configured, create statuses first")

	// ErrForbidden — вызывающий не администратор.
	ErrForbidden = errors.New("admin role required")

	errMissingTrackNumber = errors.New("missing track number")
)

// fieldError привязывает ошибку строки к конкретному полю.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return e.field + ": " + e.err.Error() }
func (e *fieldError) Unwrap() error { return e.err }

// RowError — ошибка одной строки импорта. Row — человекочитаемый номер
// строки листа (данные начинаются со 2-й строки, после заголовка).
// В строку сериализуется только на границе итоговой сводки.
type RowError struct {
	Row   int
	Field string
	Cause error
}

func newRowError(sheetRow int, cause error) *RowError {
	e := &RowError{Row: sheetRow, Cause: cause}
	var fe *fieldError
	if errors.As(cause, &fe) {
		e.Field = fe.field
		e.Cause = fe.err
	}
	return e
}

func (e *RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("Row %d: %s: %v", e.Row, e.Field, e.Cause)
	}
	return fmt.Sprintf("Row %d: %v", e.Row, e.Cause)
}

func (e *RowError) Unwrap() error { return e.Cause }
