// internal/service/product/domain/events.go
package domain

// SalesStatus 是销售确认的最终结果。
type SalesStatus string

const (
	StatusApproved SalesStatus = "APPROVED"
	StatusRejected SalesStatus = "REJECTED"
)

// ProductQuantity 是预留请求中的一行：商品 + 请求数量。
type ProductQuantity struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// ProductStockEvent 是 sales-api 通过 Kafka 发来的库存预留请求。
// 只在单条消息的处理周期内存在，从不落库。
type ProductStockEvent struct {
	SalesID       string            `json:"salesId"`
	TransactionID string            `json:"transactionid"`
	Products      []ProductQuantity `json:"products"`
}

// StockCheckRequest 是同步 check-stock 接口的请求体，不携带 salesId。
type StockCheckRequest struct {
	Products []ProductQuantity `json:"products"`
}

// SalesConfirmationEvent 是对一条预留请求的唯一应答。
// 每条被接受处理的消息恰好产生一条确认（不多不少），
// 并原样带回 transactionid 以保持跨进程的关联标识。
type SalesConfirmationEvent struct {
	SalesID       string      `json:"salesId"`
	Status        SalesStatus `json:"status"`
	TransactionID string      `json:"transactionid"`
}
