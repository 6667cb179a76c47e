package catalog

import (
	"context"
	"fmt"
	"sync"

	"pizzeria-system/internal/database"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
)

// Repository loads the menu catalog from PostgreSQL and serves it from
// an in-memory snapshot. The snapshot is immutable once built; Reload
// swaps it atomically so request handlers never see a half-loaded menu.
type Repository struct {
	db     *database.DB
	logger *logger.Logger

	mu      sync.RWMutex
	items   []models.MenuItem
	options map[string]*models.ItemOptions
}

// NewRepository creates a catalog repository and performs the initial load
func NewRepository(ctx context.Context, db *database.DB, log *logger.Logger) (*Repository, error) {
	r := &Repository{
		db:     db,
		logger: log,
	}

	if err := r.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return r, nil
}

// Items returns all menu items
func (r *Repository) Items() []models.MenuItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items
}

// ItemOptions returns the option bundle for one menu item
func (r *Repository) ItemOptions(itemID string) (*models.ItemOptions, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts, ok := r.options[itemID]
	if !ok {
		return nil, fmt.Errorf("menu item %s not found", itemID)
	}
	return opts, nil
}

// ItemCategory returns the category of a menu item
func (r *Repository) ItemCategory(itemID string) (models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == itemID {
			return item.Category, true
		}
	}
	return "", false
}

// Reload rebuilds the in-memory snapshot from the database
func (r *Repository) Reload(ctx context.Context) error {
	items, err := r.loadItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load menu items: %w", err)
	}

	toppings, err := r.loadToppings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load toppings: %w", err)
	}

	sauces, err := r.loadSauces(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sauces: %w", err)
	}

	cheeses, err := r.loadCheeses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cheeses: %w", err)
	}

	freeToppings, err := r.loadFreeToppings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load free toppings: %w", err)
	}

	options := make(map[string]*models.ItemOptions, len(items))
	for _, item := range items {
		opts, err := r.loadItemOptions(ctx, item, toppings, sauces, cheeses, freeToppings)
		if err != nil {
			return fmt.Errorf("failed to load options for item %s: %w", item.ID, err)
		}
		options[item.ID] = opts
	}

	r.mu.Lock()
	r.items = items
	r.options = options
	r.mu.Unlock()

	r.logger.Info("catalog_loaded", fmt.Sprintf("Loaded %d menu items", len(items)), "", map[string]interface{}{
		"items":    len(items),
		"toppings": len(toppings),
		"sauces":   len(sauces),
	})

	return nil
}

func (r *Repository) loadItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.GetMenuItemsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.BasePrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) loadToppings(ctx context.Context) ([]models.Topping, error) {
	rows, err := r.db.Query(ctx, database.GetToppingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var toppings []models.Topping
	for rows.Next() {
		var t models.Topping
		err := rows.Scan(&t.ID, &t.Name, &t.IsVeg, &t.PriceSmall, &t.PriceMedium, &t.PriceLarge,
			&t.Price, &t.Available, &t.SortOrder)
		if err != nil {
			return nil, err
		}
		toppings = append(toppings, t)
	}
	return toppings, rows.Err()
}

func (r *Repository) loadSauces(ctx context.Context) ([]models.Sauce, error) {
	rows, err := r.db.Query(ctx, database.GetSaucesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sauces []models.Sauce
	for rows.Next() {
		var s models.Sauce
		if err := rows.Scan(&s.ID, &s.Name, &s.Price); err != nil {
			return nil, err
		}
		sauces = append(sauces, s)
	}
	return sauces, rows.Err()
}

func (r *Repository) loadCheeses(ctx context.Context) ([]models.Cheese, error) {
	rows, err := r.db.Query(ctx, database.GetCheesesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cheeses []models.Cheese
	for rows.Next() {
		var c models.Cheese
		if err := rows.Scan(&c.ID, &c.Name, &c.IsDefault); err != nil {
			return nil, err
		}
		cheeses = append(cheeses, c)
	}
	return cheeses, rows.Err()
}

func (r *Repository) loadFreeToppings(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, database.GetFreeToppingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// loadItemOptions assembles the option bundle for one item. Size tiers
// are resolved here, once, so the rest of the system never inspects
// size display names.
func (r *Repository) loadItemOptions(ctx context.Context, item models.MenuItem,
	toppings []models.Topping, sauces []models.Sauce, cheeses []models.Cheese,
	freeToppings []string) (*models.ItemOptions, error) {

	sizeRows, err := r.db.Query(ctx, database.GetSizesForItemSQL, item.ID)
	if err != nil {
		return nil, err
	}
	defer sizeRows.Close()

	var sizes []models.Size
	for sizeRows.Next() {
		var s models.Size
		if err := sizeRows.Scan(&s.ID, &s.Name, &s.Price); err != nil {
			return nil, err
		}
		s.Tier = models.ResolveSizeTier(s.Name)
		sizes = append(sizes, s)
	}
	if err := sizeRows.Err(); err != nil {
		return nil, err
	}

	crustsBySize := make(map[string][]models.Crust, len(sizes))
	for _, size := range sizes {
		crusts, err := r.loadCrustsForSize(ctx, size.ID)
		if err != nil {
			return nil, err
		}
		crustsBySize[size.ID] = crusts
	}

	defaultToppings, err := r.loadDefaultToppings(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	defaultSauceIDs, err := r.loadDefaultSauceIDs(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	return &models.ItemOptions{
		Item:            item,
		Sizes:           sizes,
		CrustsBySize:    crustsBySize,
		Toppings:        toppings,
		Sauces:          sauces,
		Cheeses:         cheeses,
		FreeToppings:    freeToppings,
		DefaultToppings: defaultToppings,
		DefaultSauceIDs: defaultSauceIDs,
	}, nil
}

func (r *Repository) loadCrustsForSize(ctx context.Context, sizeID string) ([]models.Crust, error) {
	rows, err := r.db.Query(ctx, database.GetCrustsForSizeSQL, sizeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crusts []models.Crust
	for rows.Next() {
		var c models.Crust
		if err := rows.Scan(&c.ID, &c.Name, &c.Price); err != nil {
			return nil, err
		}
		crusts = append(crusts, c)
	}
	return crusts, rows.Err()
}

func (r *Repository) loadDefaultToppings(ctx context.Context, itemID string) ([]models.DefaultTopping, error) {
	rows, err := r.db.Query(ctx, database.GetDefaultToppingsForItemSQL, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defaults []models.DefaultTopping
	for rows.Next() {
		var dt models.DefaultTopping
		if err := rows.Scan(&dt.ToppingID, &dt.Removable); err != nil {
			return nil, err
		}
		defaults = append(defaults, dt)
	}
	return defaults, rows.Err()
}

func (r *Repository) loadDefaultSauceIDs(ctx context.Context, itemID string) ([]string, error) {
	rows, err := r.db.Query(ctx, database.GetDefaultSaucesForItemSQL, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
