package directory

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady операция вызвана до завершения Bootstrap
	ErrNotReady = errors.New("directory is not ready")
	// ErrAlreadyBootstrapped повторный Bootstrap
	ErrAlreadyBootstrapped = errors.New("directory already bootstrapped")
	// ErrOwnerNotFound студент не проиндексирован
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrHolderNotFound учителя нет в хранилище
	ErrHolderNotFound = errors.New("holder not found")
	// ErrNotFound заявки нет в хранилище
	ErrNotFound = errors.New("request not found")
	// ErrStoreUnavailable ошибка ввода-вывода хранилища
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDegradedOwner история студента не загрузилась
	ErrDegradedOwner = errors.New("owner history not loaded")
	// ErrInvalidDraft черновик или обновление не прошли валидацию
	ErrInvalidDraft = errors.New("invalid request data")
	// ErrConsistency хранилище подтвердило запись, но её нельзя положить в память
	ErrConsistency = errors.New("cache consistency violation")
)

// DegradedOwner студент, чья история не загрузилась при Bootstrap или ReloadOwner.
// Чтение по нему возвращает пустое окно, а не ошибку.
type DegradedOwner struct {
	StudentID string
	Err       error
}

func (d *DegradedOwner) Error() string {
	return fmt.Sprintf("owner %s: %v: %v", d.StudentID, ErrDegradedOwner, d.Err)
}

func (d *DegradedOwner) Unwrap() []error {
	return []error{ErrDegradedOwner, d.Err}
}

// storeError оборачивает ошибку хранилища в ErrStoreUnavailable с сохранением причины
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
