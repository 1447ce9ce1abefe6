package services

import (
	"context"
	"fmt"

	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// LessonService manages lessons and course materials. Write access follows
// course ownership; read access follows course visibility.
type LessonService interface {
	CreateLesson(ctx context.Context, actorID uint, actorRole models.Role, req *CreateLessonRequest) (*models.Lesson, error)
	GetLesson(ctx context.Context, actorID uint, actorRole models.Role, lessonID uint) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, actorID uint, actorRole models.Role, lessonID uint, req *UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, actorID uint, actorRole models.Role, lessonID uint) error
	ListLessons(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.Lesson, error)

	CreateMaterial(ctx context.Context, actorID uint, actorRole models.Role, req *CreateMaterialRequest) (*models.CourseMaterial, error)
	UpdateMaterial(ctx context.Context, actorID uint, actorRole models.Role, materialID uint, req *UpdateMaterialRequest) (*models.CourseMaterial, error)
	DeleteMaterial(ctx context.Context, actorID uint, actorRole models.Role, materialID uint) error
	ListMaterials(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.CourseMaterial, error)
}

type lessonService struct {
	repo      repositories.Repository
	courses   CourseService
	validator *validator.Validator
	logger    utils.Logger
}

func NewLessonService(repo repositories.Repository, courses CourseService, v *validator.Validator, logger utils.Logger) LessonService {
	return &lessonService{repo: repo, courses: courses, validator: v, logger: logger}
}

type CreateLessonRequest struct {
	CourseID    uint   `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	ContentType string `json:"content_type" validate:"required,oneof=text audio video"`

	TextContent *string `json:"text_content"`
	FilePath    *string `json:"file_path"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url"`

	SignLanguageVideoURL *string `json:"sign_language_video_url" validate:"omitempty,url"`
	AltText              *string `json:"alt_text"`
	Transcript           *string `json:"transcript"`
	Order                int     `json:"order" validate:"min=0"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ContentType *string `json:"content_type" validate:"omitempty,oneof=text audio video"`

	TextContent *string `json:"text_content"`
	FilePath    *string `json:"file_path"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url"`

	SignLanguageVideoURL *string `json:"sign_language_video_url" validate:"omitempty,url"`
	AltText              *string `json:"alt_text"`
	Transcript           *string `json:"transcript"`
	Order                *int    `json:"order" validate:"omitempty,min=0"`
}

type CreateMaterialRequest struct {
	CourseID     uint    `json:"course_id" validate:"required"`
	Title        string  `json:"title" validate:"required,min=1,max=200"`
	Description  *string `json:"description"`
	MaterialType string  `json:"material_type" validate:"required,oneof=video pdf notes presentation other"`

	FilePath *string `json:"file_path"`
	VideoURL *string `json:"video_url" validate:"omitempty,url"`
	Duration *string `json:"duration" validate:"omitempty,max=20"`

	SignLanguageVideoURL *string `json:"sign_language_video_url" validate:"omitempty,url"`
	Transcript           *string `json:"transcript"`
	AltDescription       *string `json:"alt_description"`

	FileSize       *string `json:"file_size" validate:"omitempty,max=50"`
	IsDownloadable *bool   `json:"is_downloadable"`
	Order          int     `json:"order" validate:"min=0"`
}

type UpdateMaterialRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	MaterialType *string `json:"material_type" validate:"omitempty,oneof=video pdf notes presentation other"`

	FilePath *string `json:"file_path"`
	VideoURL *string `json:"video_url" validate:"omitempty,url"`
	Duration *string `json:"duration" validate:"omitempty,max=20"`

	SignLanguageVideoURL *string `json:"sign_language_video_url" validate:"omitempty,url"`
	Transcript           *string `json:"transcript"`
	AltDescription       *string `json:"alt_description"`

	FileSize       *string `json:"file_size" validate:"omitempty,max=50"`
	IsDownloadable *bool   `json:"is_downloadable"`
	Order          *int    `json:"order" validate:"omitempty,min=0"`
}

// requireCourseOwnership loads the course and checks the actor may modify
// its content.
func (s *lessonService) requireCourseOwnership(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if actorRole == models.RoleAdmin {
		return course, nil
	}
	if actorRole == models.RoleTeacher && course.TeacherID == actorID {
		return course, nil
	}
	return nil, ErrCourseAccessDenied
}

// ===== LESSONS =====

func (s *lessonService) CreateLesson(ctx context.Context, actorID uint, actorRole models.Role, req *CreateLessonRequest) (*models.Lesson, error) {
	if !Can(actorRole, ActionManageLessons) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}
	if _, err := s.requireCourseOwnership(ctx, actorID, actorRole, req.CourseID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID:             req.CourseID,
		Title:                req.Title,
		Description:          req.Description,
		ContentType:          models.ContentType(req.ContentType),
		TextContent:          req.TextContent,
		FilePath:             req.FilePath,
		VideoURL:             req.VideoURL,
		SignLanguageVideoURL: req.SignLanguageVideoURL,
		HasSignLanguage:      req.SignLanguageVideoURL != nil,
		AltText:              req.AltText,
		Transcript:           req.Transcript,
		Order:                req.Order,
	}
	if err := s.repo.Lesson().Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.InfoContext(ctx, "lesson created",
		"lesson_id", lesson.ID, "course_id", lesson.CourseID)
	return lesson, nil
}

func (s *lessonService) GetLesson(ctx context.Context, actorID uint, actorRole models.Role, lessonID uint) (*models.Lesson, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, lessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	// Course visibility gates lesson reads.
	if _, err := s.courses.Get(ctx, actorID, actorRole, lesson.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) UpdateLesson(ctx context.Context, actorID uint, actorRole models.Role, lessonID uint, req *UpdateLessonRequest) (*models.Lesson, error) {
	if !Can(actorRole, ActionManageLessons) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, lessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if _, err := s.requireCourseOwnership(ctx, actorID, actorRole, lesson.CourseID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.ContentType != nil {
		lesson.ContentType = models.ContentType(*req.ContentType)
	}
	if req.TextContent != nil {
		lesson.TextContent = req.TextContent
	}
	if req.FilePath != nil {
		lesson.FilePath = req.FilePath
	}
	if req.VideoURL != nil {
		lesson.VideoURL = req.VideoURL
	}
	if req.SignLanguageVideoURL != nil {
		lesson.SignLanguageVideoURL = req.SignLanguageVideoURL
		lesson.HasSignLanguage = true
	}
	if req.AltText != nil {
		lesson.AltText = req.AltText
	}
	if req.Transcript != nil {
		lesson.Transcript = req.Transcript
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}

	if err := s.repo.Lesson().Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	return lesson, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, actorID uint, actorRole models.Role, lessonID uint) error {
	lesson, err := s.repo.Lesson().GetByID(ctx, lessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLessonNotFound
		}
		return fmt.Errorf("failed to load lesson: %w", err)
	}
	if _, err := s.requireCourseOwnership(ctx, actorID, actorRole, lesson.CourseID); err != nil {
		return err
	}
	if err := s.repo.Lesson().Delete(ctx, lessonID); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

func (s *lessonService) ListLessons(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.Lesson, error) {
	if _, err := s.courses.Get(ctx, actorID, actorRole, courseID); err != nil {
		return nil, err
	}
	return s.repo.Lesson().ListByCourse(ctx, courseID)
}

// ===== MATERIALS =====

func (s *lessonService) CreateMaterial(ctx context.Context, actorID uint, actorRole models.Role, req *CreateMaterialRequest) (*models.CourseMaterial, error) {
	if !Can(actorRole, ActionManageMaterials) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}
	if _, err := s.requireCourseOwnership(ctx, actorID, actorRole, req.CourseID); err != nil {
		return nil, err
	}

	material := &models.CourseMaterial{
		CourseID:             req.CourseID,
		Title:                req.Title,
		Description:          req.Description,
		MaterialType:         models.MaterialType(req.MaterialType),
		FilePath:             req.FilePath,
		VideoURL:             req.VideoURL,
		Duration:             req.Duration,
		SignLanguageVideoURL: req.SignLanguageVideoURL,
		HasSignLanguage:      req.SignLanguageVideoURL != nil,
		Transcript:           req.Transcript,
		AltDescription:       req.AltDescription,
		UploadedByID:         actorID,
		FileSize:             req.FileSize,
		IsDownloadable:       true,
		Order:                req.Order,
	}
	if req.IsDownloadable != nil {
		material.IsDownloadable = *req.IsDownloadable
	}

	if err := s.repo.Material().Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.InfoContext(ctx, "material created",
		"material_id", material.ID, "course_id", material.CourseID, "type", material.MaterialType)
	return material, nil
}

func (s *lessonService) UpdateMaterial(ctx context.Context, actorID uint, actorRole models.Role, materialID uint, req *UpdateMaterialRequest) (*models.CourseMaterial, error) {
	if !Can(actorRole, ActionManageMaterials) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	material, err := s.repo.Material().GetByID(ctx, materialID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to load material: %w", err)
	}
	if _, err := s.requireCourseOwnership(ctx, actorID, actorRole, material.CourseID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = req.Description
	}
	if req.MaterialType != nil {
		material.MaterialType = models.MaterialType(*req.MaterialType)
	}
	if req.FilePath != nil {
		material.FilePath = req.FilePath
	}
	if req.VideoURL != nil {
		material.VideoURL = req.VideoURL
	}
	if req.Duration != nil {
		material.Duration = req.Duration
	}
	if req.SignLanguageVideoURL != nil {
		material.SignLanguageVideoURL = req.SignLanguageVideoURL
		material.HasSignLanguage = true
	}
	if req.Transcript != nil {
		material.Transcript = req.Transcript
	}
	if req.AltDescription != nil {
		material.AltDescription = req.AltDescription
	}
	if req.FileSize != nil {
		material.FileSize = req.FileSize
	}
	if req.IsDownloadable != nil {
		material.IsDownloadable = *req.IsDownloadable
	}
	if req.Order != nil {
		material.Order = *req.Order
	}

	if err := s.repo.Material().Update(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}
	return material, nil
}

func (s *lessonService) DeleteMaterial(ctx context.Context, actorID uint, actorRole models.Role, materialID uint) error {
	material, err := s.repo.Material().GetByID(ctx, materialID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to load material: %w", err)
	}
	if _, err := s.requireCourseOwnership(ctx, actorID, actorRole, material.CourseID); err != nil {
		return err
	}
	if err := s.repo.Material().Delete(ctx, materialID); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

func (s *lessonService) ListMaterials(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.CourseMaterial, error) {
	if _, err := s.courses.Get(ctx, actorID, actorRole, courseID); err != nil {
		return nil, err
	}
	return s.repo.Material().ListByCourse(ctx, courseID)
}
