package services

import (
	"errors"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(db *gorm.DB, userID, guideID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(db *gorm.DB, commentID, userID string, isAdmin bool) error
	ListComments(db *gorm.DB, guideID string, page, pageSize int) (*dto.CommentListResponse, error)
	RateGuide(db *gorm.DB, userID, guideID string, req *dto.RateGuideRequest) error
}

type CommentServiceImpl struct {
	commentRepo repositories.CommentRepository
	guideRepo   repositories.GuideRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, guideRepo repositories.GuideRepository) CommentService {
	return &CommentServiceImpl{commentRepo: commentRepo, guideRepo: guideRepo}
}

func (s *CommentServiceImpl) AddComment(db *gorm.DB, userID, guideID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	guide, err := s.findPublishedGuide(db, guideID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		GuideID: guide.ID,
		UserID:  userID,
		Body:    req.Body,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toCommentResponse(comment), nil
}

func (s *CommentServiceImpl) DeleteComment(db *gorm.DB, commentID, userID string, isAdmin bool) error {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.NewNotFoundError("comment", "comment not found")
		}
		return apperrors.InternalError(err)
	}
	if comment.UserID != userID && !isAdmin {
		return apperrors.NewForbiddenError("you can only delete your own comments")
	}
	if err := s.commentRepo.Delete(db, commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CommentServiceImpl) ListComments(db *gorm.DB, guideID string, page, pageSize int) (*dto.CommentListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	comments, total, err := s.commentRepo.FindByGuide(db, guideID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, toCommentResponse(&comments[i]))
	}
	return &dto.CommentListResponse{
		Comments: result,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// RateGuide records a 1-5 rating. A second rating from the same user
// replaces the first.
func (s *CommentServiceImpl) RateGuide(db *gorm.DB, userID, guideID string, req *dto.RateGuideRequest) error {
	guide, err := s.findPublishedGuide(db, guideID)
	if err != nil {
		return err
	}

	rating := &models.Rating{
		GuideID: guide.ID,
		UserID:  userID,
		Value:   req.Value,
	}
	if err := s.commentRepo.UpsertRating(db, rating); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CommentServiceImpl) findPublishedGuide(db *gorm.DB, guideID string) (*models.Guide, error) {
	guide, err := s.guideRepo.FindByID(db, guideID)
	if err != nil {
		if errors.Is(err, repositories.ErrGuideNotFound) {
			return nil, apperrors.NewNotFoundError("guide", "guide not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if !guide.Published {
		return nil, apperrors.NewNotFoundError("guide", "guide not found")
	}
	return guide, nil
}

func toCommentResponse(comment *models.Comment) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		ID:        comment.ID,
		GuideID:   comment.GuideID,
		UserID:    comment.UserID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.AuthorName = comment.User.Name
	}
	return resp
}
