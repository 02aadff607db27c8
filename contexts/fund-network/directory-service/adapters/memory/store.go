package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"meridian/contexts/fund-network/directory-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/directory-service/domain/errors"
)

// Store is an in-memory directory implementing the Directory and Registry
// ports. It is intended for tests and local development wiring.
type Store struct {
	mu            sync.RWMutex
	organizations map[string]entities.Organization
	assets        map[string]entities.Asset
}

func NewStore() *Store {
	return &Store{
		organizations: make(map[string]entities.Organization),
		assets:        make(map[string]entities.Asset),
	}
}

func (s *Store) CreateOrganization(_ context.Context, organization entities.Organization) error {
	if strings.TrimSpace(organization.OrganizationID) == "" {
		return domainerrors.ErrInvalidOrganizationID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[organization.OrganizationID]; ok {
		return domainerrors.ErrOrganizationAlreadyExists
	}
	if organization.CreatedAt.IsZero() {
		organization.CreatedAt = time.Now().UTC()
	}
	organization.IsActive = true
	s.organizations[organization.OrganizationID] = organization
	return nil
}

func (s *Store) CreateAsset(_ context.Context, asset entities.Asset) error {
	if strings.TrimSpace(asset.AssetID) == "" {
		return domainerrors.ErrInvalidAssetID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[asset.AssetID]; ok {
		return domainerrors.ErrAssetAlreadyExists
	}
	if asset.ParentID != nil {
		seen := map[string]bool{asset.AssetID: true}
		parentID := *asset.ParentID
		for parentID != "" {
			if seen[parentID] {
				return domainerrors.ErrAssetParentCycle
			}
			seen[parentID] = true
			parent, ok := s.assets[parentID]
			if !ok || parent.ParentID == nil {
				break
			}
			parentID = *parent.ParentID
		}
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now().UTC()
	}
	asset.IsActive = true
	s.assets[asset.AssetID] = asset
	return nil
}

func (s *Store) DeactivateOrganization(_ context.Context, organizationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	organization, ok := s.organizations[organizationID]
	if !ok {
		return domainerrors.ErrOrganizationNotFound
	}
	organization.IsActive = false
	s.organizations[organizationID] = organization
	return nil
}

func (s *Store) DeactivateAsset(_ context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return domainerrors.ErrAssetNotFound
	}
	asset.IsActive = false
	s.assets[assetID] = asset
	return nil
}

func (s *Store) GetOrganization(_ context.Context, organizationID string) (entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	organization, ok := s.organizations[organizationID]
	if !ok {
		return entities.Organization{}, domainerrors.ErrOrganizationNotFound
	}
	return organization, nil
}

func (s *Store) GetAsset(_ context.Context, assetID string) (entities.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return entities.Asset{}, domainerrors.ErrAssetNotFound
	}
	return asset, nil
}

func (s *Store) ListAssetsManagedBy(_ context.Context, organizationID string) ([]entities.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Asset, 0)
	for _, asset := range s.assets {
		if asset.ManagerID == organizationID {
			items = append(items, asset)
		}
	}
	sortAssets(items)
	return items, nil
}

func (s *Store) ListAssets(_ context.Context) ([]entities.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		items = append(items, asset)
	}
	sortAssets(items)
	return items, nil
}

func sortAssets(items []entities.Asset) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].AssetID < items[j].AssetID
	})
}
