package bootstrap

import (
	"workshop-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	RedisModule,
	components.PersistenceModule,
	components.UseCaseModule,
	AMQPModule,
	components.HandlerModule,
)
