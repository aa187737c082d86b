package models

// Item описывает запись списка покупок в том виде, в котором она хранится и отдаётся клиентам.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// NewItem содержит провалидированные поля для создания записи; id назначает сервер.
type NewItem struct {
	Name     string
	Quantity int
}
