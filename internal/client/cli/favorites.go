package cli

import (
	"context"
	"fmt"
)

func (a *App) favorites(ctx context.Context) {
	flats, err := a.flats.Favorites(ctx)
	if err != nil {
		a.log.Error(ctx, "favorites fetch failed", "err", err)
		return
	}
	a.printFlats(flats)
}

func (a *App) addFavorite(ctx context.Context, args []string) {
	id, ok := a.requireArg(args, "Usage: fav <flat-id>")
	if !ok {
		return
	}
	if err := a.flats.AddFavorite(ctx, id); err != nil {
		a.log.Error(ctx, "add favorite failed", "err", err)
		return
	}
	fmt.Fprintln(a.out, "Added to favorites.")
}

func (a *App) removeFavorite(ctx context.Context, args []string) {
	id, ok := a.requireArg(args, "Usage: unfav <flat-id>")
	if !ok {
		return
	}
	if err := a.flats.RemoveFavorite(ctx, id); err != nil {
		a.log.Error(ctx, "remove favorite failed", "err", err)
		return
	}
	fmt.Fprintln(a.out, "Removed from favorites.")
}
