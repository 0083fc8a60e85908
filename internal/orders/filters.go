package orders

import (
	"strings"

	"github.com/angelmondragon/storefront-sync/internal/api"
)

// ByPaymentMethod keeps orders paid with the given method (e.g. "cash",
// "card"). An empty method keeps everything.
func ByPaymentMethod(orders []api.Order, method string) []api.Order {
	if method == "" {
		return append([]api.Order(nil), orders...)
	}
	matched := make([]api.Order, 0, len(orders))
	for _, order := range orders {
		if strings.EqualFold(order.PaymentMethodType, method) {
			matched = append(matched, order)
		}
	}
	return matched
}

// ByDeliveryStatus keeps orders with the given delivery state.
func ByDeliveryStatus(orders []api.Order, delivered bool) []api.Order {
	matched := make([]api.Order, 0, len(orders))
	for _, order := range orders {
		if order.IsDelivered == delivered {
			matched = append(matched, order)
		}
	}
	return matched
}

// Search keeps orders whose customer name, order id, or line-item product
// title or brand name contains the query, case-insensitively. An empty
// query keeps everything.
func Search(orders []api.Order, query string) []api.Order {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]api.Order(nil), orders...)
	}
	matched := make([]api.Order, 0, len(orders))
	for _, order := range orders {
		if matchesQuery(order, query) {
			matched = append(matched, order)
		}
	}
	return matched
}

func matchesQuery(order api.Order, query string) bool {
	if strings.Contains(strings.ToLower(order.User.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(order.ID), query) {
		return true
	}
	for _, item := range order.CartItems {
		if strings.Contains(strings.ToLower(item.Product.Title), query) {
			return true
		}
		if strings.Contains(strings.ToLower(item.Product.Brand.Name), query) {
			return true
		}
	}
	return false
}
