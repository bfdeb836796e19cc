package pizza

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatMenu renders the menu in catalogue order.
func FormatMenu(c *Catalogue) string {
	var sb strings.Builder
	sb.WriteString("🍕 Available Pizzas:\n\n")
	for _, p := range c.Pizzas {
		fmt.Fprintf(&sb, "• %s - %s\n", p.Name, money(p.Price))
		fmt.Fprintf(&sb, "  %s\n", p.Description)
		fmt.Fprintf(&sb, "  ID: %s\n\n", p.ID)
	}
	return sb.String()
}

// FormatRestaurants renders the restaurant table.
func FormatRestaurants(c *Catalogue) string {
	var sb strings.Builder
	sb.WriteString("🍕 Available Restaurants:\n\n")
	for _, r := range c.Restaurants {
		fmt.Fprintf(&sb, "• %s\n", r.Name)
		fmt.Fprintf(&sb, "  Phone: %s\n", r.Phone)
		fmt.Fprintf(&sb, "  Delivery Fee: %s\n", money(r.DeliveryFee))
		fmt.Fprintf(&sb, "  ID: %s\n\n", r.ID)
	}
	return sb.String()
}

// FormatConfirmation renders a placed order.
func FormatConfirmation(o Order) string {
	var sb strings.Builder
	sb.WriteString("🍕 Pizza Order Confirmed!\n\n")
	fmt.Fprintf(&sb, "Order ID: #%d\n", o.ID)
	fmt.Fprintf(&sb, "Pizza: %s (%s)\n", o.Pizza.Name, o.Size)
	fmt.Fprintf(&sb, "Quantity: %d\n", o.Quantity)
	fmt.Fprintf(&sb, "Restaurant: %s\n", o.Restaurant.Name)
	fmt.Fprintf(&sb, "Customer: %s\n", o.CustomerName)
	if o.CustomerPhone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", o.CustomerPhone)
	}
	if o.DeliveryAddress != "" {
		fmt.Fprintf(&sb, "Address: %s\n", o.DeliveryAddress)
	}
	if o.SpecialInstructions != "" {
		fmt.Fprintf(&sb, "Special Instructions: %s\n", o.SpecialInstructions)
	}
	sb.WriteString("\n💰 Pricing:\n")
	fmt.Fprintf(&sb, "Pizza Price: %s each\n", money(o.Quote.UnitPrice))
	fmt.Fprintf(&sb, "Subtotal: %s\n", money(o.Quote.Subtotal))
	fmt.Fprintf(&sb, "Delivery Fee: %s\n", money(o.Quote.DeliveryFee))
	fmt.Fprintf(&sb, "Total: %s\n\n", money(o.Quote.Total))
	fmt.Fprintf(&sb, "📞 To complete your order, call: %s\n", o.Restaurant.Phone)
	fmt.Fprintf(&sb, "Status: %s", o.Status)
	return sb.String()
}

// FormatStatus renders the detail view of one order.
func FormatStatus(o Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍕 Order #%d Status\n\n", o.ID)
	fmt.Fprintf(&sb, "Pizza: %s (%s)\n", o.Pizza.Name, o.Size)
	fmt.Fprintf(&sb, "Quantity: %d\n", o.Quantity)
	fmt.Fprintf(&sb, "Restaurant: %s\n", o.Restaurant.Name)
	fmt.Fprintf(&sb, "Customer: %s\n", o.CustomerName)
	fmt.Fprintf(&sb, "Total: %s\n", money(o.Quote.Total))
	fmt.Fprintf(&sb, "Status: %s\n", o.Status)
	fmt.Fprintf(&sb, "Order Time: %s\n", o.OrderedAt.Format(time.RFC3339))
	if o.DeliveryAddress != "" {
		fmt.Fprintf(&sb, "Delivery Address: %s\n", o.DeliveryAddress)
	}
	return sb.String()
}

// FormatOrders renders the order list.
func FormatOrders(orders []Order) string {
	if len(orders) == 0 {
		return "No pizza orders found."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍕 All Pizza Orders (%d total):\n\n", len(orders))
	for _, o := range orders {
		fmt.Fprintf(&sb, "Order #%d: %s - %s - %s\n", o.ID, o.Pizza.Name, money(o.Quote.Total), o.Status)
	}
	return sb.String()
}

// FormatCancelled renders a cancellation.
func FormatCancelled(o Order) string {
	return fmt.Sprintf("Order #%d (%s x%d from %s) has been cancelled.", o.ID, o.Pizza.Name, o.Quantity, o.Restaurant.Name)
}

// FormatNotFound renders the unknown order message.
func FormatNotFound(id string) string {
	return fmt.Sprintf("Order #%s not found.", id)
}

// FormatLookupError renders unknown pizza or restaurant ids with the valid choices.
func FormatLookupError(c *Catalogue, err error, pizzaType, restaurant string) string {
	switch {
	case errors.Is(err, ErrUnknownPizza):
		return fmt.Sprintf("Error: Pizza type '%s' not found. Available types: %s", pizzaType, strings.Join(c.PizzaIDs(), ", "))
	case errors.Is(err, ErrUnknownRestaurant):
		return fmt.Sprintf("Error: Restaurant '%s' not found. Available restaurants: %s", restaurant, strings.Join(c.RestaurantIDs(), ", "))
	default:
		return err.Error()
	}
}
