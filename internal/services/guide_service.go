package services

import (
	"errors"
	"fmt"
	"time"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GuideService publishes and serves guides. Premium guides are listed for
// everyone but their body is withheld from readers without premium access.
type GuideService interface {
	Create(db *gorm.DB, authorID string, req *dto.CreateGuideRequest) (*dto.GuideResponse, error)
	Update(db *gorm.DB, guideID string, req *dto.UpdateGuideRequest) (*dto.GuideResponse, error)
	Delete(db *gorm.DB, guideID string) error
	GetBySlug(db *gorm.DB, slugStr string, reader *models.User) (*dto.GuideResponse, error)
	List(db *gorm.DB, criteria dto.GuideCriteria, includeUnpublished bool) (*dto.GuideListResponse, error)
}

type GuideServiceImpl struct {
	guideRepo repositories.GuideRepository
}

func NewGuideService(guideRepo repositories.GuideRepository) GuideService {
	return &GuideServiceImpl{guideRepo: guideRepo}
}

func (s *GuideServiceImpl) Create(db *gorm.DB, authorID string, req *dto.CreateGuideRequest) (*dto.GuideResponse, error) {
	guideSlug, err := s.uniqueSlug(db, req.Title)
	if err != nil {
		return nil, err
	}

	guide := &models.Guide{
		Title:     req.Title,
		Slug:      guideSlug,
		Summary:   req.Summary,
		Body:      req.Body,
		Tags:      req.Tags,
		CoverURL:  req.CoverURL,
		AuthorID:  authorID,
		IsPremium: req.IsPremium,
		Published: req.Published,
	}
	if req.Published {
		now := time.Now()
		guide.PublishedAt = &now
	}
	if err := s.guideRepo.Create(db, guide); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toGuideResponse(db, guide, true), nil
}

func (s *GuideServiceImpl) Update(db *gorm.DB, guideID string, req *dto.UpdateGuideRequest) (*dto.GuideResponse, error) {
	guide, err := s.guideRepo.FindByID(db, guideID)
	if err != nil {
		if errors.Is(err, repositories.ErrGuideNotFound) {
			return nil, apperrors.NewNotFoundError("guide", "guide not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil && *req.Title != guide.Title {
		guide.Title = *req.Title
		// The slug follows the title so links stay readable.
		if guide.Slug, err = s.uniqueSlug(db, guide.Title); err != nil {
			return nil, err
		}
	}
	if req.Summary != nil {
		guide.Summary = *req.Summary
	}
	if req.Body != nil {
		guide.Body = *req.Body
	}
	if req.Tags != nil {
		guide.Tags = *req.Tags
	}
	if req.CoverURL != nil {
		guide.CoverURL = *req.CoverURL
	}
	if req.IsPremium != nil {
		guide.IsPremium = *req.IsPremium
	}
	if req.Published != nil {
		if *req.Published && !guide.Published {
			now := time.Now()
			guide.PublishedAt = &now
		}
		guide.Published = *req.Published
	}

	if err := s.guideRepo.Save(db, guide); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toGuideResponse(db, guide, true), nil
}

func (s *GuideServiceImpl) Delete(db *gorm.DB, guideID string) error {
	err := s.guideRepo.Delete(db, guideID)
	if err != nil {
		if errors.Is(err, repositories.ErrGuideNotFound) {
			return apperrors.NewNotFoundError("guide", "guide not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *GuideServiceImpl) GetBySlug(db *gorm.DB, slugStr string, reader *models.User) (*dto.GuideResponse, error) {
	guide, err := s.guideRepo.FindBySlug(db, slugStr)
	if err != nil {
		if errors.Is(err, repositories.ErrGuideNotFound) {
			return nil, apperrors.NewNotFoundError("guide", "guide not found")
		}
		return nil, apperrors.InternalError(err)
	}

	isAdmin := reader != nil && reader.Role == models.UserRoleAdmin
	if !guide.Published && !isAdmin {
		return nil, apperrors.NewNotFoundError("guide", "guide not found")
	}

	if err := s.guideRepo.IncrementViews(db, guide.ID); err != nil {
		logger.WithError(err).Warn("failed to count guide view", "guide_id", guide.ID)
	}

	unlocked := !guide.IsPremium || isAdmin || (reader != nil && reader.IsPremium)
	return s.toGuideResponse(db, guide, unlocked), nil
}

func (s *GuideServiceImpl) List(db *gorm.DB, criteria dto.GuideCriteria, includeUnpublished bool) (*dto.GuideListResponse, error) {
	criteria.Page, criteria.PageSize = normalizePagination(criteria.Page, criteria.PageSize)

	guides, total, err := s.guideRepo.FindWithFilter(db, criteria, !includeUnpublished)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.GuideResponse, 0, len(guides))
	for i := range guides {
		// Listings never include the body, so locking is not a concern here.
		resp := s.toGuideResponse(db, &guides[i], false)
		resp.Body = ""
		result = append(result, resp)
	}
	return &dto.GuideListResponse{
		Guides:   result,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

func (s *GuideServiceImpl) uniqueSlug(db *gorm.DB, title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.guideRepo.SlugExists(db, candidate)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *GuideServiceImpl) toGuideResponse(db *gorm.DB, guide *models.Guide, unlocked bool) *dto.GuideResponse {
	avg, count, err := s.guideRepo.RatingAggregate(db, guide.ID)
	if err != nil {
		logger.WithError(err).Warn("failed to aggregate ratings", "guide_id", guide.ID)
	}

	resp := &dto.GuideResponse{
		ID:          guide.ID,
		Title:       guide.Title,
		Slug:        guide.Slug,
		Summary:     guide.Summary,
		Tags:        guide.Tags,
		CoverURL:    guide.CoverURL,
		IsPremium:   guide.IsPremium,
		Locked:      guide.IsPremium && !unlocked,
		Published:   guide.Published,
		ViewCount:   guide.ViewCount,
		AvgRating:   avg,
		RatingCount: count,
		PublishedAt: guide.PublishedAt,
		CreatedAt:   guide.CreatedAt,
	}
	if unlocked {
		resp.Body = guide.Body
	}
	return resp
}
