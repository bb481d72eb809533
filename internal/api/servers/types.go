// Package servers holds the HTTP contract of the order service: the request and
// response models, the ServerInterface implemented by the http adapter and the
// embedded OpenAPI document they are written against.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for Actor.
const (
	ActorAdmin    Actor = "admin"
	ActorCustomer Actor = "customer"
	ActorVendor   Actor = "vendor"
)

// Defines values for PartKind.
const (
	PartKindAdmin  PartKind = "admin"
	PartKindVendor PartKind = "vendor"
)

// Defines values for AdvancePartRequestStatus.
const (
	Delivered  AdvancePartRequestStatus = "delivered"
	Processing AdvancePartRequestStatus = "processing"
	Shipped    AdvancePartRequestStatus = "shipped"
)

// Actor defines model for Actor.
type Actor string

// PartKind defines model for PartKind.
type PartKind string

// AdvancePartRequestStatus defines model for AdvancePartRequest.Status.
type AdvancePartRequestStatus string

// AdvancePartRequest defines model for AdvancePartRequest.
type AdvancePartRequest struct {
	Actor    Actor                    `json:"actor"`
	Status   AdvancePartRequestStatus `json:"status"`
	VendorId *openapi_types.UUID      `json:"vendorId,omitempty"`
}

// AdvancePartResult defines model for AdvancePartResult.
type AdvancePartResult struct {
	OrderId openapi_types.UUID `json:"orderId"`
	PartId  openapi_types.UUID `json:"partId"`

	// Status Unified order status after the change.
	Status string `json:"status"`
}

// CancelOrderRequest defines model for CancelOrderRequest.
type CancelOrderRequest struct {
	Actor    Actor               `json:"actor"`
	PartId   *openapi_types.UUID `json:"partId,omitempty"`
	Reason   *string             `json:"reason,omitempty"`
	VendorId *openapi_types.UUID `json:"vendorId,omitempty"`
}

// CancelOrderResult defines model for CancelOrderResult.
type CancelOrderResult struct {
	AnyCommissionReversalRequired bool                  `json:"anyCommissionReversalRequired"`
	CommissionTotal               string                `json:"commissionTotal"`
	OrderId                       openapi_types.UUID    `json:"orderId"`
	Outcomes                      []CancellationOutcome `json:"outcomes"`
	RefundTotal                   string                `json:"refundTotal"`
	Status                        string                `json:"status"`
}

// CancellationOutcome defines model for CancellationOutcome.
type CancellationOutcome struct {
	CommissionAmount           string              `json:"commissionAmount"`
	CommissionReversalRequired bool                `json:"commissionReversalRequired"`
	Kind                       PartKind            `json:"kind"`
	Message                    string              `json:"message"`
	NewStatus                  string              `json:"newStatus"`
	PartId                     openapi_types.UUID  `json:"partId"`
	PriorStatus                string              `json:"priorStatus"`
	RefundAmount               string              `json:"refundAmount"`
	VendorId                   *openapi_types.UUID `json:"vendorId,omitempty"`
}

// CommissionReversal defines model for CommissionReversal.
type CommissionReversal struct {
	Amount   string             `json:"amount"`
	PartId   openapi_types.UUID `json:"partId"`
	VendorId openapi_types.UUID `json:"vendorId"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewLineItem defines model for NewLineItem.
type NewLineItem struct {
	Id        *openapi_types.UUID `json:"id,omitempty"`
	Quantity  int                 `json:"quantity"`
	Sku       string              `json:"sku"`
	UnitPrice string              `json:"unitPrice"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerId openapi_types.UUID  `json:"customerId"`
	Id         *openapi_types.UUID `json:"id,omitempty"`
	Parts      []NewOrderPart      `json:"parts"`
}

// NewOrderPart defines model for NewOrderPart.
type NewOrderPart struct {
	CommissionRate *string             `json:"commissionRate,omitempty"`
	Id             *openapi_types.UUID `json:"id,omitempty"`
	Items          []NewLineItem       `json:"items"`

	// VendorId Omitted for the platform-fulfilled part.
	VendorId *openapi_types.UUID `json:"vendorId,omitempty"`
}

// OpenOrder defines model for OpenOrder.
type OpenOrder struct {
	CreatedAt    time.Time          `json:"createdAt"`
	CustomerId   openapi_types.UUID `json:"customerId"`
	Id           openapi_types.UUID `json:"id"`
	PartStatuses []string           `json:"partStatuses"`
	Status       string             `json:"status"`
}

// OrderCreated defines model for OrderCreated.
type OrderCreated struct {
	Id openapi_types.UUID `json:"id"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus struct {
	Cancellable bool                 `json:"cancellable"`
	CustomerId  openapi_types.UUID   `json:"customerId"`
	Id          openapi_types.UUID   `json:"id"`
	Parts       []PartStatus         `json:"parts"`
	Reversals   []CommissionReversal `json:"reversals"`
	Status      string               `json:"status"`
	Total       string               `json:"total"`
	Version     int64                `json:"version"`
}

// PartStatus defines model for PartStatus.
type PartStatus struct {
	Cancellable bool                `json:"cancellable"`
	Id          openapi_types.UUID  `json:"id"`
	Kind        PartKind            `json:"kind"`
	Status      string              `json:"status"`
	Subtotal    string              `json:"subtotal"`
	VendorId    *openapi_types.UUID `json:"vendorId,omitempty"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// GetOpenOrdersParams defines parameters for GetOpenOrders.
type GetOpenOrdersParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// CancelOrderJSONRequestBody defines body for CancelOrder for application/json ContentType.
type CancelOrderJSONRequestBody = CancelOrderRequest

// AdvancePartJSONRequestBody defines body for AdvancePart for application/json ContentType.
type AdvancePartJSONRequestBody = AdvancePartRequest
