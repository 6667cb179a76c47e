package database

// Catalog queries
const (
	GetMenuItemsSQL = `
		SELECT id, name, category, base_price
		FROM menu_items
		ORDER BY name ASC`

	GetSizesForItemSQL = `
		SELECT id, name, price
		FROM menu_item_sizes
		WHERE menu_item_id = $1
		ORDER BY price ASC`

	GetCrustsForSizeSQL = `
		SELECT c.id, c.name, c.price
		FROM crusts c
		JOIN size_crusts sc ON sc.crust_id = c.id
		WHERE sc.size_id = $1
		ORDER BY c.name ASC`

	GetToppingsSQL = `
		SELECT id, name, is_veg, price_small, price_medium, price_large, price, available, sort_order
		FROM toppings
		ORDER BY sort_order ASC, name ASC`

	GetSaucesSQL = `
		SELECT id, name, price
		FROM sauces
		ORDER BY name ASC`

	GetCheesesSQL = `
		SELECT id, name, is_default
		FROM cheeses
		ORDER BY name ASC`

	GetFreeToppingsSQL = `
		SELECT name
		FROM free_toppings
		ORDER BY name ASC`

	GetDefaultToppingsForItemSQL = `
		SELECT topping_id, removable
		FROM item_default_toppings
		WHERE menu_item_id = $1`

	GetDefaultSaucesForItemSQL = `
		SELECT sauce_id
		FROM item_default_sauces
		WHERE menu_item_id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (number, customer_name, type, source, table_number, delivery_address,
			subtotal, tax, delivery_fee, total_amount, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (id, order_id, menu_item_id, name, quantity, price, total_price, customization)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, processed_by = $2, updated_at = NOW()
		WHERE number = $3`

	UpdateOrderCompletedSQL = `
		UPDATE orders SET status = $1, completed_at = NOW(), updated_at = NOW()
		WHERE number = $2`

	GetOrderByNumberSQL = `
		SELECT id, number, customer_name, type, source, table_number, delivery_address,
			   subtotal, tax, delivery_fee, total_amount, priority, status, processed_by,
			   created_at, updated_at, completed_at
		FROM orders WHERE number = $1`

	GetOrderLinesSQL = `
		SELECT id, menu_item_id, name, quantity, price, total_price, customization
		FROM order_lines
		WHERE order_id = $1
		ORDER BY created_at ASC`

	GetOrderLineSQL = `
		SELECT ol.id, ol.menu_item_id, ol.name, ol.quantity, ol.price, ol.total_price, ol.customization
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE o.number = $1 AND ol.id = $2`

	UpdateOrderLineSQL = `
		UPDATE order_lines SET price = $1, total_price = $2, customization = $3
		WHERE id = $4`

	UpdateOrderTotalsSQL = `
		UPDATE orders SET subtotal = $1, tax = $2, total_amount = $3, updated_at = NOW()
		WHERE id = $4`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = (SELECT id FROM orders WHERE number = $1)
		ORDER BY changed_at ASC`

	GetNextOrderSequenceSQL = `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 'ORD_[0-9]{8}_([0-9]{3})') AS INTEGER)), 0) + 1
		FROM orders
		WHERE number LIKE $1`
)

// Worker queries
const (
	InsertWorkerSQL = `
		INSERT INTO workers (name, type, status)
		VALUES ($1, $2, 'online')
		ON CONFLICT (name) DO UPDATE SET
			status = 'online',
			last_seen = NOW()
		RETURNING id`

	UpdateWorkerStatusSQL = `
		UPDATE workers SET status = $1, last_seen = NOW()
		WHERE name = $2`

	UpdateWorkerHeartbeatSQL = `
		UPDATE workers SET last_seen = NOW(), orders_processed = orders_processed + $1
		WHERE name = $2`

	CheckWorkerOnlineSQL = `
		SELECT COUNT(*) FROM workers WHERE name = $1 AND status = 'online'`
)
