package dispatcher

import (
	"errors"
	"fmt"
)

var (
	// ErrOffline базовая ошибка для отказов без сети
	ErrOffline = errors.New("offline")

	// ErrOfflineNoCache чтение без сети, для ключа нет сохраненного ответа
	ErrOfflineNoCache = fmt.Errorf("%w: no cached data available", ErrOffline)

	// ErrOfflineWrite запись без сети отклонена
	ErrOfflineWrite = fmt.Errorf("%w: cannot modify data while offline", ErrOffline)
)
