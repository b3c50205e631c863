package sender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxBodyLen = 1024

var ErrTransport = errors.New("ошибка соединения")

// StatusError сервер ответил кодом, отличным от ожидаемого
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("неожиданный код ответа %d: %s", e.Code, e.Body)
}

// Record то, что можно отправить: сериализуется в JSON
type Record interface {
	ToBytes() ([]byte, error)
}

// HTTP отправляет записи POST-запросом на фиксированный адрес, без повторов
type HTTP struct {
	url            string
	expectedStatus int
	client         *http.Client
}

func NewHTTP(url string, expectedStatus int, timeout time.Duration) *HTTP {
	return &HTTP{
		url:            url,
		expectedStatus: expectedStatus,
		client:         &http.Client{Timeout: timeout},
	}
}

func (h *HTTP) URL() string {
	return h.url
}

// Send возвращает nil, только если сервер ответил ожидаемым кодом
func (h *HTTP) Send(ctx context.Context, rec Record) error {
	body, err := rec.ToBytes()
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка формирования запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLen))
	// дочитываем остаток, чтобы соединение вернулось в пул
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != h.expectedStatus {
		return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
