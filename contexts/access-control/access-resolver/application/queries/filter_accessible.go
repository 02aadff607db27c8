package queries

import (
	"context"

	"meridian/contexts/access-control/access-resolver/domain/entities"
)

// AccessItem identifies one (asset, type) point to screen.
type AccessItem struct {
	AssetID string
	TypeTag string
}

// FilterAccessibleQuery screens a candidate list down to the items the actor
// may view.
type FilterAccessibleQuery struct {
	ActorID string
	Items   []AccessItem
}

// FilterAccessibleUseCase applies the view check per item. Cost grows with
// items times the actor's grant count, not with the total grant population.
type FilterAccessibleUseCase struct {
	CanPerform CanPerformUseCase
}

// Execute returns the indices of query.Items the actor may view, in input
// order. Callers use the indices to retain their own item payloads.
func (u FilterAccessibleUseCase) Execute(ctx context.Context, query FilterAccessibleQuery) ([]int, error) {
	accessible := make([]int, 0, len(query.Items))
	for i, item := range query.Items {
		decision, err := u.CanPerform.Execute(ctx, CanPerformQuery{
			ActorID: query.ActorID,
			AssetID: item.AssetID,
			TypeTag: item.TypeTag,
			Action:  entities.ActionViewData,
		})
		if err != nil {
			return nil, err
		}
		if decision.Allowed {
			accessible = append(accessible, i)
		}
	}
	return accessible, nil
}
