// Package itemsclient реализует HTTP-клиент REST API списка покупок.
package itemsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dforst25/week9-docker/internal/models"
)

const itemsPath = "/items/"

type CreateItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CreateItemResponse struct {
	Message string      `json:"message"`
	Item    models.Item `json:"item"`
}

// APIError описывает неуспешный ответ сервиса.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("items api: %d: %s", e.StatusCode, e.Detail)
}

type Client interface {
	// List Получить весь список покупок; записи приходят в том виде, в каком хранятся
	List(ctx context.Context) ([]models.Record, error)
	// Create Добавить запись в список
	Create(ctx context.Context, req CreateItemRequest) (CreateItemResponse, error)
}

type httpClient struct {
	baseURL string
	c       *http.Client
}

// New создаёт HTTP-клиент для сервиса по адресу baseURL.
func New(baseURL string) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		c:       &http.Client{Timeout: 10 * time.Second},
	}
}

// List запрашивает коллекцию целиком.
func (h *httpClient) List(ctx context.Context) ([]models.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+itemsPath, nil)
	if err != nil {
		return nil, err
	}

	var out []models.Record
	if err := h.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create отправляет новую запись; id назначает сервер.
func (h *httpClient) Create(ctx context.Context, in CreateItemRequest) (CreateItemResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return CreateItemResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+itemsPath, bytes.NewReader(body))
	if err != nil {
		return CreateItemResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out CreateItemResponse
	if err := h.do(req, &out); err != nil {
		return CreateItemResponse{}, err
	}
	return out, nil
}

func (h *httpClient) do(req *http.Request, out any) error {
	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(b, &e) == nil && e.Detail != "" {
			apiErr.Detail = e.Detail
		} else {
			apiErr.Detail = strings.TrimSpace(string(b))
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
