package broker

import (
	"context"
	"log/slog"

	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/modules/console/infrastructure"
)

// StartKafkaConsumers runs one reader per registered topic until ctx is done.
// Without brokers the change feed is skipped.
func StartKafkaConsumers(ctx context.Context, registry *infrastructure.HandlerRegistry, brokers []string, groupID string) {
	if len(brokers) == 0 {
		slog.Info("kafka change feed disabled: no brokers configured")
		return
	}
	for _, topic := range registry.Topics() {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			if err := consumer.Consume(ctx, func(topic string, msg *domain.Message) error {
				return registry.Dispatch(ctx, topic, msg)
			}); err != nil && ctx.Err() == nil {
				slog.Warn("kafka consumer stopped", slog.String("topic", tp), slog.Any("error", err))
			}
		}(topic)
	}
	slog.Info("kafka change feed started", slog.Any("topics", registry.Topics()))
}
