package migrate

import (
	"context"
	"fmt"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto для gen_random_uuid()
	CreateSequences        bool // последовательность номеров заказов
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateSequences:        true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

// OrderNumberStart: первый номер, который увидит клиент ("Pedido #1000").
const OrderNumberStart = 1000

type step struct {
	name string
	sql  string
}

func exec(ctx context.Context, db *gorm.DB, log *zap.Logger, steps []step) error {
	for _, s := range steps {
		if err := db.WithContext(ctx).Exec(s.sql).Error; err != nil {
			log.Error("Не удалось выполнить шаг миграции", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")

	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := exec(ctx, db, log, []step{
			{"pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
		}); err != nil {
			return err
		}
	}

	// Последовательность должна существовать до AutoMigrate: на неё ссылается DEFAULT колонки.
	if opt.CreateSequences {
		log.Info("Создание последовательности номеров заказов")
		if err := exec(ctx, db, log, []step{
			{"orders_order_number_seq", fmt.Sprintf(
				`CREATE SEQUENCE IF NOT EXISTS orders_order_number_seq START WITH %d MINVALUE %d`,
				OrderNumberStart, OrderNumberStart)},
		}); err != nil {
			return err
		}
	}

	log.Info("Создание таблиц")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Order{},
		&models.OrderEvent{},
		&models.OrderNote{},
		&models.Category{},
		&models.Product{},
		&models.Event{},
		&models.Service{},
		&models.Promo{},
		&models.FAQ{},
		&models.SiteConfig{},
		&models.AdminUser{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateSequences {
		if err := exec(ctx, db, log, []step{
			{"sequence owner", `ALTER SEQUENCE orders_order_number_seq OWNED BY orders.order_number`},
		}); err != nil {
			return err
		}
	}

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		steps := []step{{"set_updated_at", `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;`}}
		for _, table := range []string{"orders", "products", "categories", "events", "services", "promos", "faqs", "site_config", "admin_users"} {
			steps = append(steps, step{"trigger " + table, `
DROP TRIGGER IF EXISTS trg_` + table + `_updated ON ` + table + `;
CREATE TRIGGER trg_` + table + `_updated
BEFORE UPDATE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`})
		}
		if err := exec(ctx, db, log, steps); err != nil {
			return err
		}
		log.Info("Триггеры updated_at успешно созданы")
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := exec(ctx, db, log, []step{
			{"chk_orders_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','confirmed','preparing','ready','delivered','cancelled'));`},
			{"chk_order_events_status_allowed", `
ALTER TABLE order_events DROP CONSTRAINT IF EXISTS chk_order_events_status_allowed;
ALTER TABLE order_events ADD CONSTRAINT chk_order_events_status_allowed
  CHECK (status IN ('pending','confirmed','preparing','ready','delivered','cancelled'));`},
			{"chk_orders_delivery_type", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_delivery_type;
ALTER TABLE orders ADD CONSTRAINT chk_orders_delivery_type
  CHECK (delivery_type IN ('entrega','retiro'));`},
			{"chk_orders_payment_method", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_payment_method;
ALTER TABLE orders ADD CONSTRAINT chk_orders_payment_method
  CHECK (payment_method IN ('efectivo','tarjeta','transferencia','modo','mercado','billeteras-qr'));`},
			// Суммы заказа хранятся без масштаба, как их посчитал сервис. Базы со старым numeric(12,2) переводятся здесь.
			{"orders amounts unscaled", `
ALTER TABLE orders ALTER COLUMN subtotal TYPE numeric, ALTER COLUMN total TYPE numeric;`},
			{"chk_orders_amounts_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_amounts_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_amounts_non_negative
  CHECK (subtotal >= 0 AND total >= 0);`},
			{"chk_products_price_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_price_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_price_non_negative
  CHECK (price >= 0 AND discount_fixed >= 0 AND discount_percentage BETWEEN 0 AND 100);`},
			{"chk_products_images_max", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_images_max;
ALTER TABLE products ADD CONSTRAINT chk_products_images_max
  CHECK (jsonb_array_length(images) <= 5);`},
		}); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		if err := exec(ctx, db, log, []step{
			{"ix_orders_status_created", `CREATE INDEX IF NOT EXISTS ix_orders_status_created ON orders (status, created_at DESC)`},
			{"ix_order_events_order_created", `CREATE INDEX IF NOT EXISTS ix_order_events_order_created ON order_events (order_id, created_at)`},
			{"ix_order_notes_order_created", `CREATE INDEX IF NOT EXISTS ix_order_notes_order_created ON order_notes (order_id, created_at)`},
			{"ux_admin_users_email_lower", `CREATE UNIQUE INDEX IF NOT EXISTS ux_admin_users_email_lower ON admin_users (lower(email))`},
			{"ix_products_active_created", `CREATE INDEX IF NOT EXISTS ix_products_active_created ON products (is_active, created_at DESC)`},
		}); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := exec(ctx, db, log, []step{
			{"fk_order_events_order", `
ALTER TABLE order_events
  DROP CONSTRAINT IF EXISTS fk_order_events_order,
  ADD CONSTRAINT fk_order_events_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
			{"fk_order_notes_order", `
ALTER TABLE order_notes
  DROP CONSTRAINT IF EXISTS fk_order_notes_order,
  ADD CONSTRAINT fk_order_notes_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
		}); err != nil {
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
