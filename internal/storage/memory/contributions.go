package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

var errContributionNotFound = errors.New("contribution not found")

type contributionBlob struct {
	data        []byte
	contentType string
}

type contributionsStorage struct {
	mu            sync.RWMutex
	contributions map[uuid.UUID]storage.FoodContribution
	blobs         map[uuid.UUID]contributionBlob
}

func newContributionsStorage() *contributionsStorage {
	return &contributionsStorage{
		contributions: make(map[uuid.UUID]storage.FoodContribution),
		blobs:         make(map[uuid.UUID]contributionBlob),
	}
}

func (s *contributionsStorage) CreateContribution(ctx context.Context, c *storage.FoodContribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()

	s.contributions[c.ID] = *c

	return nil
}

func (s *contributionsStorage) GetContribution(ctx context.Context, id uuid.UUID) (*storage.FoodContribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contributions[id]
	if !ok {
		return nil, errContributionNotFound
	}

	return &c, nil
}

func (s *contributionsStorage) ListContributions(ctx context.Context, ownerUserID string, limit int) ([]storage.FoodContribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contributions := make([]storage.FoodContribution, 0)
	for _, c := range s.contributions {
		if c.OwnerUserID == ownerUserID {
			contributions = append(contributions, c)
		}
	}

	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].CreatedAt.After(contributions[j].CreatedAt)
	})

	if limit > 0 && len(contributions) > limit {
		contributions = contributions[:limit]
	}

	return contributions, nil
}

func (s *contributionsStorage) SetContributionPhoto(ctx context.Context, id uuid.UUID, objectKey string, contentType string, sizeBytes int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contributions[id]
	if !ok {
		return errContributionNotFound
	}

	c.PhotoObjectKey = &objectKey
	c.PhotoContentType = &contentType
	c.PhotoSizeBytes = sizeBytes
	s.contributions[id] = c

	return nil
}

func (s *contributionsStorage) GetContributionPhotoBlob(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[id]
	if !ok {
		return nil, "", errContributionNotFound
	}

	return b.data, b.contentType, nil
}

func (s *contributionsStorage) PutContributionPhotoBlob(ctx context.Context, id uuid.UUID, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contributions[id]
	if !ok {
		return errContributionNotFound
	}

	s.blobs[id] = contributionBlob{data: data, contentType: contentType}
	c.PhotoContentType = &contentType
	c.PhotoSizeBytes = int64(len(data))
	s.contributions[id] = c

	return nil
}
