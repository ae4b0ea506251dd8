package notify

import (
	"encoding/json"

	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/logger"

	"go.uber.org/zap"
)

// Alert is one stock notification. Kind distinguishes plain stock changes
// from low-stock warnings.
type Alert struct {
	Kind        string `json:"kind"` // stock_update | low_stock
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	MinStock    int    `json:"min_stock"`
	Message     string `json:"message"`
}

// Notifier accepts alerts without blocking and without surfacing errors;
// a dropped alert is an accepted loss.
type Notifier interface {
	Notify(alert Alert)
}

// Dispatcher queues alerts on a buffered channel consumed by one worker
// goroutine. Enqueueing drops the alert when the queue is full so the
// request path can never stall on a slow sink.
type Dispatcher struct {
	queue chan Alert
	line  *LineClient
	hub   *ws.Hub
}

func NewDispatcher(line *LineClient, hub *ws.Hub) *Dispatcher {
	return &Dispatcher{
		queue: make(chan Alert, 256),
		line:  line,
		hub:   hub,
	}
}

func (d *Dispatcher) Notify(alert Alert) {
	select {
	case d.queue <- alert:
	default:
		logger.Get().Warn("notification queue full, alert dropped",
			zap.String("product", alert.ProductName))
	}
}

// Run consumes the queue. Sink failures are logged and swallowed.
func (d *Dispatcher) Run() {
	for alert := range d.queue {
		if d.hub != nil {
			if payload, err := json.Marshal(alert); err == nil {
				select {
				case d.hub.Broadcast <- payload:
				default:
				}
			}
		}
		if d.line != nil && alert.Kind == "low_stock" {
			d.line.Send(alert.Message)
		}
	}
}

// Close stops the worker once the queue drains.
func (d *Dispatcher) Close() {
	close(d.queue)
}
