package components

import (
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/config"
	"lendshare/internal/usecase/commands"
	"lendshare/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewUserUseCase,
		commands.NewItemUseCase,
		commands.NewBookingUseCase,
		commands.NewRequestUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewItemQueries,
		queries.NewRequestQueries,
		NewBookingQueries,
	),
)

// NewBookingQueries unpacks the owner-listing policy flag from config.
func NewBookingQueries(
	store queries.BookingReadStore,
	users queries.UserReadStore,
	items queries.ItemReadStore,
	clk clock.Clock,
	cfg config.Config,
) queries.BookingQueries {
	return queries.NewBookingQueries(store, users, items, clk, cfg.Policy.OwnerListRequiresItems)
}
