package foods

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaloria/coach-hub/internal/blob"
	"github.com/kaloria/coach-hub/internal/storage"
	"github.com/kaloria/coach-hub/internal/userctx"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrFileTooLarge         = errors.New("file too large")
	ErrUnsupportedMime      = errors.New("unsupported mime type")
	ErrPhotoNotFound        = errors.New("photo not found")
)

// ProfileStorageAdapter gives access to profile ownership checks.
type ProfileStorageAdapter interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error)
}

// Rewarder is the gamification hook fired on accepted contributions.
type Rewarder interface {
	RecordFoodContribution(ctx context.Context, ownerUserID string) error
}

// Service handles user recipes, the generic catalog and community contributions.
type Service struct {
	foods         storage.FoodsStorage
	contributions storage.ContributionsStorage
	profiles      ProfileStorageAdapter
	blobStore     blob.Store
	localMode     bool // true if no S3 configured
	maxUploadMB   int
	allowedMimes  []string
	rewards       Rewarder
	logger        *zap.Logger
}

// NewService creates a new foods service.
func NewService(
	foods storage.FoodsStorage,
	contributions storage.ContributionsStorage,
	profiles ProfileStorageAdapter,
	blobStore blob.Store,
	maxUploadMB int,
	allowedMimes string,
	rewards Rewarder,
	logger *zap.Logger,
) *Service {
	mimes := strings.Split(allowedMimes, ",")
	for i, m := range mimes {
		mimes[i] = strings.TrimSpace(m)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		foods:         foods,
		contributions: contributions,
		profiles:      profiles,
		blobStore:     blobStore,
		localMode:     blobStore == nil,
		maxUploadMB:   maxUploadMB,
		allowedMimes:  mimes,
		rewards:       rewards,
		logger:        logger,
	}
}

// ListUserFoods returns the profile's recipes, optionally filtered by name.
func (s *Service) ListUserFoods(ctx context.Context, profileID uuid.UUID, query string, limit int) ([]UserFoodDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 100
	}

	items, err := s.foods.ListUserFoods(ctx, ownerFromContext(ctx), profileID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user foods: %w", err)
	}

	dtos := make([]UserFoodDTO, len(items))
	for i, f := range items {
		dtos[i] = userFoodToDTO(f)
	}

	return dtos, nil
}

// CreateUserFood creates a recipe for a profile.
func (s *Service) CreateUserFood(ctx context.Context, req CreateUserFoodRequest) (*UserFoodDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.ensureProfileAccess(ctx, req.ProfileID); err != nil {
		return nil, err
	}

	food := &storage.UserFood{
		OwnerUserID:     ownerFromContext(ctx),
		ProfileID:       req.ProfileID,
		Name:            strings.TrimSpace(req.Name),
		KcalPer100g:     req.KcalPer100g,
		ProteinGPer100g: req.ProteinGPer100g,
		CarbsGPer100g:   req.CarbsGPer100g,
		FatGPer100g:     req.FatGPer100g,
		UnitLabel:       req.UnitLabel,
		GramsPerUnit:    req.GramsPerUnit,
	}

	if err := s.foods.CreateUserFood(ctx, food); err != nil {
		return nil, err
	}

	dto := userFoodToDTO(*food)
	return &dto, nil
}

// ListGeneric returns generic catalog items, filtered by tags when given.
func (s *Service) ListGeneric(ctx context.Context, tags []string, limit int) ([]GenericFoodDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var (
		items []storage.GenericFood
		err   error
	)

	if len(tags) > 0 {
		normalized := make([]string, 0, len(tags))
		for _, t := range tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				normalized = append(normalized, t)
			}
		}
		items, err = s.foods.SearchGenericByTags(ctx, normalized, limit)
	} else {
		items, err = s.foods.ListGeneric(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list generic foods: %w", err)
	}

	if len(items) > limit {
		items = items[:limit]
	}

	dtos := make([]GenericFoodDTO, len(items))
	for i, f := range items {
		dtos[i] = GenericFoodDTO{
			ID:              f.ID,
			Name:            f.Name,
			Tags:            f.Tags,
			KcalPer100g:     f.KcalPer100g,
			ProteinGPer100g: f.ProteinGPer100g,
			CarbsGPer100g:   f.CarbsGPer100g,
			FatGPer100g:     f.FatGPer100g,
			UnitLabel:       f.UnitLabel,
			GramsPerUnit:    f.GramsPerUnit,
		}
	}

	return dtos, nil
}

// CreateContribution stores a community contribution and awards XP.
func (s *Service) CreateContribution(ctx context.Context, req CreateContributionRequest) (*ContributionDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ownerUserID := ownerFromContext(ctx)

	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
	}

	contribution := &storage.FoodContribution{
		OwnerUserID:     ownerUserID,
		Name:            strings.TrimSpace(req.Name),
		Tags:            tags,
		KcalPer100g:     req.KcalPer100g,
		ProteinGPer100g: req.ProteinGPer100g,
		CarbsGPer100g:   req.CarbsGPer100g,
		FatGPer100g:     req.FatGPer100g,
	}

	if err := s.contributions.CreateContribution(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to create contribution: %w", err)
	}

	// The contribution is already saved; a gamification failure must not undo it.
	if s.rewards != nil {
		if err := s.rewards.RecordFoodContribution(ctx, ownerUserID); err != nil {
			s.logger.Warn("gamification reward failed",
				zap.String("owner_user_id", ownerUserID),
				zap.String("contribution_id", contribution.ID.String()),
				zap.Error(err))
		}
	}

	dto := contributionToDTO(*contribution)
	return &dto, nil
}

// ListContributions returns the user's contributions, newest first.
func (s *Service) ListContributions(ctx context.Context, limit int) ([]ContributionDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	items, err := s.contributions.ListContributions(ctx, ownerFromContext(ctx), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	dtos := make([]ContributionDTO, len(items))
	for i, c := range items {
		dtos[i] = contributionToDTO(c)
	}

	return dtos, nil
}

// UploadContributionPhoto attaches an uploaded photo to a contribution.
func (s *Service) UploadContributionPhoto(ctx context.Context, id uuid.UUID, fileHeader *multipart.FileHeader) error {
	contribution, err := s.contributions.GetContribution(ctx, id)
	if err != nil {
		return ErrContributionNotFound
	}
	if contribution.OwnerUserID != ownerFromContext(ctx) {
		return ErrContributionNotFound
	}

	maxBytes := int64(s.maxUploadMB) * 1024 * 1024
	if fileHeader.Size > maxBytes {
		return ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.isAllowedMime(contentType) {
		return ErrUnsupportedMime
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if s.localMode {
		return s.contributions.PutContributionPhotoBlob(ctx, id, data, contentType)
	}

	objectKey := fmt.Sprintf("contributions/%s", id.String())
	if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentType); err != nil {
		return fmt.Errorf("failed to upload photo: %w", err)
	}

	if err := s.contributions.SetContributionPhoto(ctx, id, objectKey, contentType, int64(len(data))); err != nil {
		_ = s.blobStore.DeleteObject(ctx, objectKey)
		return err
	}

	return nil
}

// GetContributionPhoto returns photo bytes and content type.
func (s *Service) GetContributionPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	contribution, err := s.contributions.GetContribution(ctx, id)
	if err != nil {
		return nil, "", ErrContributionNotFound
	}
	if contribution.OwnerUserID != ownerFromContext(ctx) {
		return nil, "", ErrContributionNotFound
	}

	if s.localMode {
		data, contentType, err := s.contributions.GetContributionPhotoBlob(ctx, id)
		if err != nil {
			return nil, "", ErrPhotoNotFound
		}
		return data, contentType, nil
	}

	if contribution.PhotoObjectKey == nil || *contribution.PhotoObjectKey == "" {
		return nil, "", ErrPhotoNotFound
	}

	data, err := s.blobStore.GetObject(ctx, *contribution.PhotoObjectKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get photo: %w", err)
	}

	contentType := "application/octet-stream"
	if contribution.PhotoContentType != nil {
		contentType = *contribution.PhotoContentType
	}

	return data, contentType, nil
}

func (s *Service) isAllowedMime(contentType string) bool {
	for _, allowed := range s.allowedMimes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}

func (s *Service) ensureProfileAccess(ctx context.Context, profileID uuid.UUID) error {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return ErrProfileNotFound
	}

	if profile.OwnerUserID != ownerFromContext(ctx) {
		return ErrProfileNotFound
	}

	return nil
}

func userFoodToDTO(f storage.UserFood) UserFoodDTO {
	return UserFoodDTO{
		ID:              f.ID,
		ProfileID:       f.ProfileID,
		Name:            f.Name,
		KcalPer100g:     f.KcalPer100g,
		ProteinGPer100g: f.ProteinGPer100g,
		CarbsGPer100g:   f.CarbsGPer100g,
		FatGPer100g:     f.FatGPer100g,
		UnitLabel:       f.UnitLabel,
		GramsPerUnit:    f.GramsPerUnit,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func contributionToDTO(c storage.FoodContribution) ContributionDTO {
	return ContributionDTO{
		ID:              c.ID,
		Name:            c.Name,
		Tags:            c.Tags,
		KcalPer100g:     c.KcalPer100g,
		ProteinGPer100g: c.ProteinGPer100g,
		CarbsGPer100g:   c.CarbsGPer100g,
		FatGPer100g:     c.FatGPer100g,
		HasPhoto:        c.PhotoObjectKey != nil || c.PhotoSizeBytes > 0,
		CreatedAt:       c.CreatedAt,
	}
}

func ownerFromContext(ctx context.Context) string {
	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return "default"
}
