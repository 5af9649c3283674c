// Package notify implementa el colaborador de notificaciones de stock bajo.
// La entrega siempre es best-effort: el ledger dispara y olvida.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/pkg/config"
)

var _ inventory.LowStockNotifier = (*RedisNotifier)(nil)

// RedisNotifier publica eventos de stock bajo en un canal pub/sub de Redis,
// donde los consume la capa de alertas (dashboard, email, lo que sea).
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier construye el notificador y verifica conectividad.
func NewRedisNotifier(ctx context.Context, cfg config.RedisConfig) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisNotifier{client: client, channel: cfg.Channel}, nil
}

// NotifyLowStock publica el evento como JSON en el canal configurado.
func (n *RedisNotifier) NotifyLowStock(ctx context.Context, ev inventory.LowStockEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal low-stock event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish low-stock event: %w", err)
	}
	return nil
}

// Close cierra la conexión a Redis.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
