package service

import "errors"

// Классы ошибок сервиса. Контроллер сопоставляет их HTTP статусам
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// Error ошибка сервиса: класс для маппинга на статус плюс сообщение для клиента
type Error struct {
	Kind error  // ErrValidation, ErrNotFound или ErrStorage
	Msg  string // сообщение, безопасное для ответа клиенту
	Err  error  // исходная причина, может быть nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Message возвращает клиентское сообщение ошибки. Для storage ошибок
// детали не раскрываются
func Message(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && !errors.Is(err, ErrStorage) {
		return svcErr.Msg
	}
	return "internal server error"
}

func validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func storage(msg string, err error) error {
	return &Error{Kind: ErrStorage, Msg: msg, Err: err}
}
