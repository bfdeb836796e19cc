package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/janhq/jan-assistant/internal/domain/pizza"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

type orderPizzaArgs struct {
	PizzaType           string `json:"pizza_type" validate:"required"`
	Size                string `json:"size"`
	Quantity            int    `json:"quantity" validate:"gte=1"`
	Restaurant          string `json:"restaurant"`
	CustomerName        string `json:"customer_name"`
	CustomerPhone       string `json:"customer_phone"`
	DeliveryAddress     string `json:"delivery_address"`
	SpecialInstructions string `json:"special_instructions"`
}

type orderIDArgs struct {
	OrderID tool.ID `json:"order_id" validate:"required"`
}

type noArgs struct{}

func pizzaTools(orders *pizza.OrderBook) []binding {
	catalogue := orders.Catalogue()
	return []binding{
		{
			spec: tool.Spec{
				Name:        "get_pizza_menu",
				Description: "Show the pizza menu with prices.",
				Action:      "getting pizza menu",
			},
			handler: bound(func(context.Context, noArgs) (string, error) {
				return pizza.FormatMenu(catalogue), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "get_restaurants",
				Description: "List the pizza restaurants that deliver.",
				Action:      "getting restaurants",
			},
			handler: bound(func(context.Context, noArgs) (string, error) {
				return pizza.FormatRestaurants(catalogue), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "order_pizza",
				Description: "Order pizza for delivery. Sizes are small, medium, large and extra_large.",
				Action:      "ordering pizza",
				Params: []tool.Param{
					{Name: "pizza_type", Type: tool.TypeString, Description: "Pizza ID from the menu, e.g. margherita", Required: true},
					{Name: "size", Type: tool.TypeString, Description: "Pizza size (default large)", Default: pizza.DefaultSize},
					{Name: "quantity", Type: tool.TypeInteger, Description: "Number of pizzas (default 1)", Default: pizza.DefaultQuantity},
					{Name: "restaurant", Type: tool.TypeString, Description: "Restaurant ID (default dominos)", Default: pizza.DefaultRestaurant},
					{Name: "customer_name", Type: tool.TypeString, Description: "Name for the order", Default: pizza.DefaultCustomerName},
					{Name: "customer_phone", Type: tool.TypeString, Description: "Contact phone number"},
					{Name: "delivery_address", Type: tool.TypeString, Description: "Delivery address"},
					{Name: "special_instructions", Type: tool.TypeString, Description: "Notes for the restaurant"},
				},
			},
			handler: bound(func(_ context.Context, in orderPizzaArgs) (string, error) {
				order, err := orders.Place(pizza.OrderRequest{
					PizzaType:           strings.ToLower(strings.TrimSpace(in.PizzaType)),
					Size:                in.Size,
					Quantity:            in.Quantity,
					Restaurant:          strings.ToLower(strings.TrimSpace(in.Restaurant)),
					CustomerName:        in.CustomerName,
					CustomerPhone:       in.CustomerPhone,
					DeliveryAddress:     in.DeliveryAddress,
					SpecialInstructions: in.SpecialInstructions,
				})
				if errors.Is(err, pizza.ErrUnknownPizza) || errors.Is(err, pizza.ErrUnknownRestaurant) {
					return pizza.FormatLookupError(catalogue, err, in.PizzaType, in.Restaurant), nil
				}
				if err != nil {
					return "", err
				}
				return pizza.FormatConfirmation(*order), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "check_order_status",
				Description: "Check the status of a pizza order.",
				Action:      "checking order status",
				Params: []tool.Param{
					{Name: "order_id", Type: tool.TypeInteger, Description: "Order number", Required: true},
				},
			},
			handler: bound(func(_ context.Context, in orderIDArgs) (string, error) {
				id, ok := in.OrderID.Int()
				if !ok {
					return pizza.FormatNotFound(in.OrderID.String()), nil
				}
				order, err := orders.Get(id)
				if errors.Is(err, pizza.ErrOrderNotFound) {
					return pizza.FormatNotFound(in.OrderID.String()), nil
				}
				if err != nil {
					return "", err
				}
				return pizza.FormatStatus(*order), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "list_orders",
				Description: "List all pizza orders.",
				Action:      "listing orders",
			},
			handler: bound(func(context.Context, noArgs) (string, error) {
				return pizza.FormatOrders(orders.List()), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "cancel_order",
				Description: "Cancel a pizza order.",
				Action:      "cancelling order",
				Params: []tool.Param{
					{Name: "order_id", Type: tool.TypeInteger, Description: "Order number", Required: true},
				},
			},
			handler: bound(func(_ context.Context, in orderIDArgs) (string, error) {
				id, ok := in.OrderID.Int()
				if !ok {
					return pizza.FormatNotFound(in.OrderID.String()), nil
				}
				order, err := orders.Cancel(id)
				if errors.Is(err, pizza.ErrOrderNotFound) {
					return pizza.FormatNotFound(in.OrderID.String()), nil
				}
				if err != nil {
					return "", err
				}
				return pizza.FormatCancelled(*order), nil
			}),
		},
	}
}
