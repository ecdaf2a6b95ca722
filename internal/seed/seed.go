package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Email     string
	FirstName string
	LastName  string
	Address   string
	Roles     string
	Member    bool
}

type productSeed struct {
	Key         string
	Name        string
	Description string
	Unit        string
	Amount      string
	PriceNet    string
	VATRate     string
	DepositNet  string
	DepositVAT  string
}

// Apply inserts demo data for manual testing. It is idempotent via ON
// CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	regionID, err := ensureRegion(ctx, pool, "uckermark", "Uckermark", "EUR")
	if err != nil {
		return fmt.Errorf("ensure region: %w", err)
	}
	if err := ensureSettings(ctx, pool, regionID); err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}

	users := []userSeed{
		{Email: "anna@demo.foodnet", FirstName: "Anna", LastName: "Berg", Address: "Farm Road 3, Prenzlau", Roles: "{seller}", Member: true},
		{Email: "bert@demo.foodnet", FirstName: "Bert", LastName: "Kralle", Address: "Main Street 1, Templin", Roles: "{buyer}", Member: false},
		{Email: "carla@demo.foodnet", FirstName: "Carla", LastName: "Duka", Address: "Depot 7, Angermünde", Roles: "{courier}", Member: true},
	}
	ids := make(map[string]string, len(users))
	for _, u := range users {
		id, err := ensureUser(ctx, pool, regionID, u)
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
		ids[u.Email] = id
	}

	sellerID := ids["anna@demo.foodnet"]
	products := []productSeed{
		{Key: "carrots-1kg", Name: "Carrots", Description: "Fresh from the field", Unit: "kg", Amount: "1", PriceNet: "2.50", VATRate: "7", DepositNet: "0", DepositVAT: "19"},
		{Key: "apple-juice-1l", Name: "Apple juice", Description: "Cloudy, cold pressed", Unit: "l", Amount: "1", PriceNet: "3.20", VATRate: "7", DepositNet: "0.15", DepositVAT: "19"},
		{Key: "goat-cheese-200g", Name: "Goat cheese", Unit: "g", Amount: "200", PriceNet: "4.80", VATRate: "7", DepositNet: "0", DepositVAT: "19"},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, regionID, sellerID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}

	options := []struct {
		Kind      string
		Name      string
		ChargeNet string
		VATRate   string
	}{
		{Kind: "buyer", Name: "Pickup at the farm", ChargeNet: "0", VATRate: "0"},
		{Kind: "seller", Name: "Farm van", ChargeNet: "4.00", VATRate: "19"},
		{Kind: "logistics", Name: "Regional courier", ChargeNet: "0", VATRate: "19"},
	}
	for _, o := range options {
		if err := upsertOption(ctx, pool, regionID, sellerID, o.Kind, o.Name, o.ChargeNet, o.VATRate); err != nil {
			return fmt.Errorf("upsert delivery option %s: %w", o.Name, err)
		}
	}

	return nil
}

func ensureRegion(ctx context.Context, pool *pgxpool.Pool, key, name, currency string) (string, error) {
	const q = `
INSERT INTO regions (key, name, currency)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, key, name, currency).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureSettings(ctx context.Context, pool *pgxpool.Pool, regionID string) error {
	const q = `
INSERT INTO region_settings (region_id, seller_fee_member_rate, seller_fee_rate, buyer_fee_rate, min_purchase_value, logistics_base_fee, logistics_per_km_rate, logistics_vat_rate)
VALUES ($1, 10, 12, 2, 15.00, 2.50, 0.30, 19)
ON CONFLICT (region_id) DO NOTHING
`
	_, err := pool.Exec(ctx, q, regionID)
	return err
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, regionID string, u userSeed) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO users (region_id, email, password_hash, first_name, last_name, address, roles, cooperative_member)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (region_id, email) DO UPDATE SET address = EXCLUDED.address
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, regionID, u.Email, string(hash), u.FirstName, u.LastName, u.Address, u.Roles, u.Member).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, regionID, sellerID string, p productSeed) error {
	const q = `
INSERT INTO products (region_id, seller_id, key, name, description, unit, amount, price_net, vat_rate, deposit_net, deposit_vat_rate)
VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9::numeric, $10::numeric, $11::numeric)
ON CONFLICT (region_id, key) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_net = EXCLUDED.price_net,
    vat_rate = EXCLUDED.vat_rate
`
	_, err := pool.Exec(ctx, q, regionID, sellerID, p.Key, p.Name, p.Description, p.Unit, p.Amount, p.PriceNet, p.VATRate, p.DepositNet, p.DepositVAT)
	return err
}

func upsertOption(ctx context.Context, pool *pgxpool.Pool, regionID, sellerID, kind, name, chargeNet, vatRate string) error {
	const q = `
INSERT INTO delivery_options (region_id, seller_id, kind, name, charge_net, vat_rate)
VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric)
ON CONFLICT (region_id, seller_id, name) DO UPDATE
SET charge_net = EXCLUDED.charge_net,
    vat_rate = EXCLUDED.vat_rate
`
	_, err := pool.Exec(ctx, q, regionID, sellerID, kind, name, chargeNet, vatRate)
	return err
}
