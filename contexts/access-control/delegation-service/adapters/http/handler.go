package httpadapter

import (
	"context"
	"log/slog"

	application "meridian/contexts/access-control/delegation-service/application"
	"meridian/contexts/access-control/delegation-service/application/commands"
	"meridian/contexts/access-control/delegation-service/application/queries"
	"meridian/contexts/access-control/delegation-service/domain/entities"
	httptransport "meridian/contexts/access-control/delegation-service/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	Create    commands.CreateGrantUseCase
	Decide    commands.ApproveGrantUseCase
	Revoke    commands.RevokeGrantUseCase
	List      queries.ListGrantsUseCase
	Effective queries.EffectiveCapabilitiesUseCase
	Logger    *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, grantorID string, request httptransport.CreateGrantRequest) (httptransport.GrantResponse, error) {
	grant, err := h.Create.Execute(ctx, commands.CreateGrantCommand{
		GrantorID:    grantorID,
		GranteeID:    request.GranteeID,
		AssetScope:   scopeFromDTO(request.AssetScope),
		TypeScope:    scopeFromDTO(request.TypeScope),
		Capabilities: capabilitiesFromDTO(request.Capabilities),
		ValidFrom:    request.ValidFrom,
		ExpiresAt:    request.ExpiresAt,
	})
	if err != nil {
		return httptransport.GrantResponse{}, err
	}
	return toResponse(grant), nil
}

func (h Handler) DecideHandler(ctx context.Context, approverID string, grantID string, request httptransport.DecideGrantRequest) (httptransport.GrantResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	grant, err := h.Decide.Execute(ctx, commands.ApproveGrantCommand{
		ApproverID: approverID,
		GrantID:    grantID,
		Approve:    request.Approve,
	})
	if err != nil {
		logger.Warn("http grant decide failed",
			"event", "grant_http_decide_failed",
			"module", "access-control/delegation-service",
			"layer", "transport",
			"grant_id", grantID,
			"error", err.Error(),
		)
		return httptransport.GrantResponse{}, err
	}
	return toResponse(grant), nil
}

func (h Handler) RevokeHandler(ctx context.Context, actorID string, grantID string) (httptransport.GrantResponse, error) {
	grant, err := h.Revoke.Execute(ctx, commands.RevokeGrantCommand{
		ActorID: actorID,
		GrantID: grantID,
	})
	if err != nil {
		return httptransport.GrantResponse{}, err
	}
	return toResponse(grant), nil
}

func (h Handler) ListHandler(ctx context.Context, granteeID string, grantorID string, liveOnly bool) (httptransport.ListGrantsResponse, error) {
	items, err := h.List.Execute(ctx, queries.ListGrantsQuery{
		GranteeID: granteeID,
		GrantorID: grantorID,
		LiveOnly:  liveOnly,
	})
	if err != nil {
		return httptransport.ListGrantsResponse{}, err
	}
	responses := make([]httptransport.GrantResponse, 0, len(items))
	for _, grant := range items {
		responses = append(responses, toResponse(grant))
	}
	return httptransport.ListGrantsResponse{Grants: responses}, nil
}

func (h Handler) EffectiveHandler(ctx context.Context, grantID string, assetID string, typeTag string) (httptransport.EffectiveCapabilitiesResponse, error) {
	capabilities, err := h.Effective.Execute(ctx, queries.EffectiveCapabilitiesQuery{
		GrantID: grantID,
		AssetID: assetID,
		TypeTag: typeTag,
	})
	if err != nil {
		return httptransport.EffectiveCapabilitiesResponse{}, err
	}
	return httptransport.EffectiveCapabilitiesResponse{
		GrantID:      grantID,
		AssetID:      assetID,
		TypeTag:      typeTag,
		Capabilities: capabilitiesToDTO(capabilities),
	}, nil
}

func scopeFromDTO(dto httptransport.ScopeDTO) entities.Scope {
	if dto.All {
		return entities.AllScope()
	}
	return entities.SpecificScope(dto.IDs...)
}

func scopeToDTO(scope entities.Scope) httptransport.ScopeDTO {
	if scope.IsAll() {
		return httptransport.ScopeDTO{All: true}
	}
	return httptransport.ScopeDTO{IDs: scope.IDs()}
}

func capabilitiesFromDTO(dto httptransport.CapabilitiesDTO) entities.Capabilities {
	return entities.Capabilities{
		CanPublish:             dto.CanPublish,
		CanViewData:            dto.CanViewData,
		CanManageSubscriptions: dto.CanManageSubscriptions,
		CanApproveDelegations:  dto.CanApproveDelegations,
	}
}

func capabilitiesToDTO(capabilities entities.Capabilities) httptransport.CapabilitiesDTO {
	return httptransport.CapabilitiesDTO{
		CanPublish:             capabilities.CanPublish,
		CanViewData:            capabilities.CanViewData,
		CanManageSubscriptions: capabilities.CanManageSubscriptions,
		CanApproveDelegations:  capabilities.CanApproveDelegations,
	}
}

func toResponse(grant entities.AccessGrant) httptransport.GrantResponse {
	return httptransport.GrantResponse{
		GrantID:      grant.GrantID,
		GrantorID:    grant.GrantorID,
		GranteeID:    grant.GranteeID,
		AssetScope:   scopeToDTO(grant.AssetScope),
		TypeScope:    scopeToDTO(grant.TypeScope),
		Capabilities: capabilitiesToDTO(grant.Capabilities),
		Status:       string(grant.Status),
		ValidFrom:    grant.ValidFrom,
		ExpiresAt:    grant.ExpiresAt,
		CreatedAt:    grant.CreatedAt,
		ApprovedBy:   grant.ApprovedBy,
		ApprovedAt:   grant.ApprovedAt,
		RevokedAt:    grant.RevokedAt,
	}
}
