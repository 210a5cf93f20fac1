package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// psql builds Postgres statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns     = `user_id, email, password_hash, role, email_verified, created_at`
	customerColumns = `customer_id, user_id, first_name, last_name, registration_date`
	supplierColumns = `supplier_id, user_id, name, contact_phone`
	productColumns  = `product_id, name, description, base_price, category_id, supplier_id, stock_quantity, media_paths, base_product_id`
	discountColumns = `discount_id, code, description, discount_value, discount_type, valid_from, valid_until, max_uses, times_used, product_id, category_id, min_quantity`
	reviewColumns   = `review_id, customer_id, product_id, rating, comment, created_at`
	orderColumns    = `order_id, customer_id, order_date, total_amount, status, shipping_address_id, payment_method_id, discount_id`
	paymentColumns  = `payment_method_id, customer_id, payment_type, bank_name, account_holder_name, card_number, card_expiration_date, iban, upi_id, bank_account_number, ifsc_code, card_type_id, is_default`
)

// users
const (
	createUser = `INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	updateUserPasswordHash = `UPDATE users SET password_hash = $2 WHERE user_id = $1;`

	setUserEmailVerified = `UPDATE users SET email_verified = TRUE WHERE user_id = $1;`
)

// customers and suppliers
const (
	createCustomer = `INSERT INTO customers (user_id, first_name, last_name)
    VALUES ($1, $2, $3)
    RETURNING ` + customerColumns + `;`

	findCustomerByUserID = `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1;`

	createSupplier = `INSERT INTO suppliers (user_id, name, contact_phone)
    VALUES ($1, $2, $3)
    RETURNING ` + supplierColumns + `;`

	findSupplierByUserID = `SELECT ` + supplierColumns + ` FROM suppliers WHERE user_id = $1;`
)

// products and categories
const (
	findProduct = `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	findProductOwnerForUpdate = `SELECT supplier_id FROM products WHERE product_id = $1 FOR UPDATE;`

	findProductOwner = `SELECT supplier_id FROM products WHERE product_id = $1;`

	createProduct = `INSERT INTO products (name, description, base_price, category_id, supplier_id, stock_quantity, media_paths, base_product_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + productColumns + `;`

	deleteProduct = `DELETE FROM products WHERE product_id = $1;`

	listCategories = `SELECT category_id, name, parent_category_id FROM categories ORDER BY category_id;`
)

// discounts
const (
	listDiscountsOnProduct = `SELECT ` + discountColumns + ` FROM discounts WHERE product_id = $1 ORDER BY discount_id;`

	findDiscountOwnerForUpdate = `SELECT p.supplier_id
    FROM discounts d
    JOIN products p ON p.product_id = d.product_id
    WHERE d.discount_id = $1
    FOR UPDATE OF d;`

	createDiscount = `INSERT INTO discounts (code, description, discount_value, discount_type, valid_from, valid_until, max_uses, product_id, category_id, min_quantity)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING ` + discountColumns + `;`

	deleteDiscount = `DELETE FROM discounts WHERE discount_id = $1;`
)

// reviews
const (
	customerOrderedProduct = `SELECT EXISTS (
        SELECT 1
        FROM orders o
        JOIN order_items oi ON oi.order_id = o.order_id
        WHERE o.customer_id = $1 AND oi.product_id = $2 AND o.status <> 'CANCELLED'
    );`

	createReview = `INSERT INTO reviews (customer_id, product_id, rating, comment)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + reviewColumns + `;`

	findReviewOwnerForUpdate = `SELECT customer_id FROM reviews WHERE review_id = $1 FOR UPDATE;`

	deleteReview = `DELETE FROM reviews WHERE review_id = $1;`
)

// orders
const (
	findDiscountByCodeForUpdate = `SELECT ` + discountColumns + ` FROM discounts WHERE code = $1 FOR UPDATE;`

	lockProductPrice = `SELECT base_price FROM products WHERE product_id = $1 FOR UPDATE;`

	incrementDiscountUsage = `UPDATE discounts SET times_used = times_used + 1 WHERE discount_id = $1;`

	createOrder = `INSERT INTO orders (customer_id, total_amount, status, shipping_address_id, payment_method_id, discount_id)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + orderColumns + `;`

	decrementStock = `UPDATE products
    SET stock_quantity = stock_quantity - $2
    WHERE product_id = $1 AND stock_quantity >= $2
    RETURNING base_price;`

	createOrderItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
    VALUES ($1, $2, $3, $4)
    RETURNING order_item_id;`

	lockOrder = `SELECT customer_id, status FROM orders WHERE order_id = $1 FOR UPDATE;`

	findOrder = `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	listOrderItems = `SELECT order_item_id, order_id, product_id, quantity, unit_price
    FROM order_items
    WHERE order_id = $1
    ORDER BY order_item_id;`

	restoreStock = `UPDATE products SET stock_quantity = stock_quantity + $2 WHERE product_id = $1;`

	setOrderStatus = `UPDATE orders SET status = $2 WHERE order_id = $1
    RETURNING ` + orderColumns + `;`
)

// addresses
const (
	listAddressesByUser = `SELECT a.address_id, a.customer_id, a.address_type_id, t.name, a.street, a.city, a.state, a.postal_code, a.country, a.is_default
    FROM users u
    JOIN customers c ON c.user_id = u.user_id
    JOIN addresses a ON a.customer_id = c.customer_id
    JOIN address_types t ON t.address_type_id = a.address_type_id
    WHERE u.user_id = $1
    ORDER BY a.address_id;`

	findAddress = `SELECT a.address_id, a.customer_id, a.address_type_id, t.name, a.street, a.city, a.state, a.postal_code, a.country, a.is_default
    FROM addresses a
    JOIN address_types t ON t.address_type_id = a.address_type_id
    WHERE a.address_id = $1;`

	lockDefaultAddress = `SELECT address_id FROM addresses WHERE customer_id = $1 AND is_default FOR UPDATE;`

	clearDefaultAddress = `UPDATE addresses SET is_default = FALSE WHERE address_id = $1;`

	findAddressTypeByName = `SELECT address_type_id FROM address_types WHERE name = $1;`

	findAddressType = `SELECT address_type_id, name FROM address_types WHERE address_type_id = $1;`

	createAddress = `INSERT INTO addresses (customer_id, address_type_id, street, city, state, postal_code, country, is_default)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING address_id;`

	lockAddress = `SELECT customer_id, is_default FROM addresses WHERE address_id = $1 FOR UPDATE;`

	deleteAddress = `DELETE FROM addresses WHERE address_id = $1;`

	customerUsesAddressType = `SELECT EXISTS (
        SELECT 1 FROM addresses WHERE customer_id = $1 AND address_type_id = $2
    );`

	renameAddressType = `UPDATE address_types SET name = $2 WHERE address_type_id = $1
    RETURNING address_type_id, name;`
)

// payment methods
const (
	listPaymentMethods = `SELECT ` + paymentColumns + ` FROM payment_methods WHERE customer_id = $1 ORDER BY payment_method_id;`

	findPaymentMethod = `SELECT ` + paymentColumns + ` FROM payment_methods WHERE payment_method_id = $1;`

	lockDefaultPaymentMethod = `SELECT payment_method_id FROM payment_methods WHERE customer_id = $1 AND is_default FOR UPDATE;`

	clearDefaultPaymentMethod = `UPDATE payment_methods SET is_default = FALSE WHERE payment_method_id = $1;`

	lockPaymentMethod = `SELECT customer_id FROM payment_methods WHERE payment_method_id = $1 FOR UPDATE;`

	createPaymentMethod = `INSERT INTO payment_methods (customer_id, payment_type, bank_name, account_holder_name, card_number, card_expiration_date, iban, upi_id, bank_account_number, ifsc_code, card_type_id, is_default)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    RETURNING ` + paymentColumns + `;`

	updatePaymentMethod = `UPDATE payment_methods
    SET bank_name = $2, account_holder_name = $3, card_number = $4, card_expiration_date = $5,
        iban = $6, upi_id = $7, bank_account_number = $8, ifsc_code = $9, card_type_id = $10, is_default = $11
    WHERE payment_method_id = $1
    RETURNING ` + paymentColumns + `;`

	findCardType = `SELECT card_type_id, name FROM card_types WHERE card_type_id = $1;`

	listCardTypes = `SELECT card_type_id, name FROM card_types ORDER BY card_type_id;`
)

// carts
const (
	listCartItems = `SELECT ci.cart_item_id, ci.cart_id, ci.product_id, p.name, p.base_price, ci.quantity
    FROM shopping_carts c
    JOIN cart_items ci ON ci.cart_id = c.cart_id
    JOIN products p ON p.product_id = ci.product_id
    WHERE c.customer_id = $1
    ORDER BY ci.cart_item_id;`

	upsertCart = `INSERT INTO shopping_carts (customer_id) VALUES ($1)
    ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
    RETURNING cart_id;`

	addCartItem = `INSERT INTO cart_items (cart_id, product_id, quantity)
    VALUES ($1, $2, $3)
    ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity;`

	updateCartItem = `UPDATE cart_items ci SET quantity = $3
    FROM shopping_carts c
    WHERE c.cart_id = ci.cart_id AND c.customer_id = $1 AND ci.product_id = $2;`

	removeCartItem = `DELETE FROM cart_items ci
    USING shopping_carts c
    WHERE c.cart_id = ci.cart_id AND c.customer_id = $1 AND ci.product_id = $2;`
)

// keyset applies "id > after ORDER BY id LIMIT limit+1" to a select. One
// extra row tells whether a next page exists.
func keyset(b sq.SelectBuilder, idColumn string, page models.PageRequest) sq.SelectBuilder {
	if page.After != nil {
		b = b.Where(sq.Gt{idColumn: *page.After})
	}
	return b.OrderBy(idColumn).Limit(uint64(page.Limit() + 1))
}

func buildListProductsQuery(ctx context.Context, filter models.ProductFilter, page models.PageRequest) (string, []any, error) {
	b := psql.Select(productColumns).From("products")

	switch {
	case filter.ProductID != nil:
		b = b.Where(sq.Eq{"product_id": *filter.ProductID})
	case filter.CategoryID != nil:
		b = b.Where(sq.Eq{"category_id": *filter.CategoryID})
	case filter.SupplierID != nil:
		b = b.Where(sq.Eq{"supplier_id": *filter.SupplierID})
	case filter.BaseProductID != nil:
		b = b.Where(sq.Eq{"base_product_id": *filter.BaseProductID})
	}

	return toSQL(ctx, "buildListProductsQuery", keyset(b, "product_id", page))
}

func buildSearchProductsQuery(ctx context.Context, name string, page models.PageRequest) (string, []any, error) {
	b := psql.Select(productColumns).
		From("products").
		Where(sq.ILike{"name": "%" + name + "%"})

	return toSQL(ctx, "buildSearchProductsQuery", keyset(b, "product_id", page))
}

func buildUpdateProductQuery(ctx context.Context, update models.UpdateProduct) (string, []any, error) {
	set := make(map[string]any, 7)
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.BasePrice != nil {
		set["base_price"] = *update.BasePrice
	}
	if update.CategoryID != nil {
		set["category_id"] = *update.CategoryID
	}
	if update.StockQuantity != nil {
		set["stock_quantity"] = *update.StockQuantity
	}
	if update.MediaPaths != nil {
		set["media_paths"] = *update.MediaPaths
	}
	if update.BaseProductID != nil {
		set["base_product_id"] = *update.BaseProductID
	}

	if len(set) == 0 {
		b := psql.Select(productColumns).From("products").Where(sq.Eq{"product_id": update.ProductID})
		return toSQL(ctx, "buildUpdateProductQuery", b)
	}

	b := psql.Update("products").
		SetMap(set).
		Where(sq.Eq{"product_id": update.ProductID}).
		Suffix("RETURNING " + productColumns)

	return toSQL(ctx, "buildUpdateProductQuery", b)
}

func buildListDiscountsQuery(ctx context.Context, page models.PageRequest) (string, []any, error) {
	b := psql.Select(discountColumns).From("discounts")
	return toSQL(ctx, "buildListDiscountsQuery", keyset(b, "discount_id", page))
}

func buildUpdateDiscountQuery(ctx context.Context, update models.UpdateDiscount) (string, []any, error) {
	set := make(map[string]any, 7)
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.DiscountValue != nil {
		set["discount_value"] = *update.DiscountValue
	}
	if update.DiscountType != nil {
		set["discount_type"] = string(*update.DiscountType)
	}
	if update.ValidFrom != nil {
		set["valid_from"] = *update.ValidFrom
	}
	if update.ValidUntil != nil {
		set["valid_until"] = *update.ValidUntil
	}
	if update.MaxUses != nil {
		set["max_uses"] = *update.MaxUses
	}
	if update.MinQuantity != nil {
		set["min_quantity"] = *update.MinQuantity
	}

	if len(set) == 0 {
		b := psql.Select(discountColumns).From("discounts").Where(sq.Eq{"discount_id": update.DiscountID})
		return toSQL(ctx, "buildUpdateDiscountQuery", b)
	}

	b := psql.Update("discounts").
		SetMap(set).
		Where(sq.Eq{"discount_id": update.DiscountID}).
		Suffix("RETURNING " + discountColumns)

	return toSQL(ctx, "buildUpdateDiscountQuery", b)
}

func buildListReviewsQuery(ctx context.Context, productID int64, page models.PageRequest) (string, []any, error) {
	b := psql.Select(reviewColumns).
		From("reviews").
		Where(sq.Eq{"product_id": productID})

	return toSQL(ctx, "buildListReviewsQuery", keyset(b, "review_id", page))
}

func buildUpdateReviewQuery(ctx context.Context, update models.UpdateReview) (string, []any, error) {
	b := psql.Update("reviews").Where(sq.Eq{"review_id": update.ReviewID})
	if update.Rating != nil {
		b = b.Set("rating", *update.Rating)
	}
	if update.Comment != nil {
		b = b.Set("comment", *update.Comment)
	}
	if update.Rating == nil && update.Comment == nil {
		b = b.Set("review_id", sq.Expr("review_id"))
	}

	return toSQL(ctx, "buildUpdateReviewQuery", b.Suffix("RETURNING "+reviewColumns))
}

func buildListOrdersQuery(ctx context.Context, customerID int64, page models.PageRequest) (string, []any, error) {
	b := psql.Select(orderColumns).
		From("orders").
		Where(sq.Eq{"customer_id": customerID})

	return toSQL(ctx, "buildListOrdersQuery", keyset(b, "order_id", page))
}

func buildUpdateAddressQuery(ctx context.Context, update models.UpdateAddress) (string, []any, error) {
	set := make(map[string]any, 6)
	for column, value := range map[string]*string{
		"street":      update.Street,
		"city":        update.City,
		"state":       update.State,
		"postal_code": update.PostalCode,
		"country":     update.Country,
	} {
		if value != nil {
			set[column] = *value
		}
	}
	if update.IsDefault != nil {
		set["is_default"] = *update.IsDefault
	}
	if len(set) == 0 {
		set["address_id"] = sq.Expr("address_id")
	}

	b := psql.Update("addresses").
		SetMap(set).
		Where(sq.Eq{"address_id": update.AddressID})

	return toSQL(ctx, "buildUpdateAddressQuery", b)
}

func toSQL(ctx context.Context, funcName string, b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to build query")
		return "", nil, err
	}
	return query, args, nil
}
