// Package client — типизированные клиенты REST-ресурсов. Единственный
// сигнал отказа — не-2xx статус ответа; тело ошибки не разбирается.
// Каждая операция выполняется ровно один раз, повторов нет: отказ
// возвращается вызывающему коду как есть.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Транспортные ошибки. Вызывающий код обязан перехватывать их и
// переводить в состояние интерфейса, а не давать им распространяться.
var (
	ErrFetch    = errors.New("failed to fetch records")
	ErrNotFound = errors.New("record not found")
	ErrSave     = errors.New("failed to save record")
	ErrDelete   = errors.New("failed to delete record")
)

type resource[T any] struct {
	base string
	http *http.Client
}

func newResource[T any](baseURL, path string, httpClient *http.Client) resource[T] {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return resource[T]{
		base: strings.TrimRight(baseURL, "/") + path,
		http: httpClient,
	}
}

func (r resource[T]) fetchAll(ctx context.Context) ([]T, error) {
	res, err := r.do(ctx, http.MethodGet, r.base, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer res.Body.Close()

	if !success(res.StatusCode) {
		return nil, fmt.Errorf("%w: %s", ErrFetch, res.Status)
	}

	var records []T
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return records, nil
}

func (r resource[T]) fetchOne(ctx context.Context, key string) (T, error) {
	var record T

	res, err := r.do(ctx, http.MethodGet, r.base+"/"+key, nil)
	if err != nil {
		return record, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer res.Body.Close()

	if !success(res.StatusCode) {
		return record, fmt.Errorf("%w: %s", ErrNotFound, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(&record); err != nil {
		return record, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return record, nil
}

func (r resource[T]) create(ctx context.Context, payload any) error {
	return r.write(ctx, http.MethodPost, r.base, payload)
}

func (r resource[T]) update(ctx context.Context, key string, payload any) error {
	return r.write(ctx, http.MethodPut, r.base+"/"+key, payload)
}

func (r resource[T]) write(ctx context.Context, method, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}

	res, err := r.do(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	defer res.Body.Close()

	if !success(res.StatusCode) {
		return fmt.Errorf("%w: %s", ErrSave, res.Status)
	}
	return nil
}

func (r resource[T]) remove(ctx context.Context, key string) error {
	res, err := r.do(ctx, http.MethodDelete, r.base+"/"+key, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	defer res.Body.Close()

	if !success(res.StatusCode) {
		return fmt.Errorf("%w: %s", ErrDelete, res.Status)
	}
	return nil
}

func (r resource[T]) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return r.http.Do(req)
}

func success(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
