package errors

import "fmt"

var (
	// Авторизация
	ErrEmptyAuthHeader   = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidToken      = fmt.Errorf("недопустимый токен")
	ErrTokenExpired      = fmt.Errorf("срок действия токена истёк")
	ErrUnauthorized      = fmt.Errorf("неавторизован")
	ErrForbidden         = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrBusinessIDNotFoundInContext = fmt.Errorf("BusinessID не найден в контексте запроса")
	ErrDriverIDNotFoundInContext   = fmt.Errorf("DriverID не найден в контексте запроса")

	// Общие.
	// ErrNotFound намеренно покрывает и случай "запись изменена конкурентно":
	// проигравший CAS-запрос не должен отличать чужое изменение от отсутствия записи.
	ErrNotFound   = fmt.Errorf("запись не найдена или находится в неожиданном состоянии")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Бизнес-правила заказа
	ErrInvalidTransition    = fmt.Errorf("недопустимый переход статуса заказа")
	ErrOrderTerminal        = fmt.Errorf("заказ находится в финальном статусе")
	ErrDriverNotAvailable   = fmt.Errorf("водитель не найден или неактивен")
	ErrPaymentExceedsTotal  = fmt.Errorf("сумма оплаты превышает сумму заказа")
	ErrOrderNumberExhausted = fmt.Errorf("не удалось сгенерировать уникальный номер заказа")
	ErrItemNotAtWorkshop    = fmt.Errorf("вещь не находится в цехе")
)

// InvalidInputError — ошибка валидации входных данных на границе.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError несет HTTP-код вместе с сообщением для клиента.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}
