package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/michae1michae1/tennis-backend/models"
	"github.com/michae1michae1/tennis-backend/repositories"
	"github.com/michae1michae1/tennis-backend/storage"
)

type CreatePlayerInput struct {
	Name   string `json:"name"`
	Skill  int    `json:"skill"`
	UserID *int   `json:"user_id,omitempty"`
}

type UpdatePlayerInput struct {
	Name  *string `json:"name,omitempty"`
	Skill *int    `json:"skill,omitempty"`
}

type PlayerService interface {
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context, activeOnly bool) ([]models.Player, error)
	Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	UploadPhoto(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error)
	Deactivate(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

// NewPlayerService accepts a nil uploader, in which case photo uploads
// are rejected with ErrPhotoStorageUnavailable.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Skill < 0 {
		return nil, fmt.Errorf("%w: skill must not be negative", ErrValidationFailed)
	}

	player := &models.Player{
		Name:   name,
		Skill:  input.Skill,
		UserID: input.UserID,
		Active: true,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerUserInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.fillPhotoURL(player)
	return player, nil
}

func (s *playerService) List(ctx context.Context, activeOnly bool) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, repositories.ListPlayersFilter{ActiveOnly: activeOnly})
	if err != nil {
		return nil, err
	}
	for i := range players {
		s.fillPhotoURL(&players[i])
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		player.Name = name
	}
	if input.Skill != nil {
		if *input.Skill < 0 {
			return nil, fmt.Errorf("%w: skill must not be negative", ErrValidationFailed)
		}
		player.Skill = *input.Skill
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

func (s *playerService) UploadPhoto(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrPhotoStorageUnavailable
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	player, err := s.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	oldKey := player.PhotoKey
	key := fmt.Sprintf("players/%d/photo.%s", playerID, ext)

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload player photo: %w", err)
	}
	if err := s.playerRepo.UpdatePhotoKey(ctx, playerID, &result.Key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != result.Key {
		// Best effort, the new photo is already live.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	player.PhotoKey = &result.Key
	s.fillPhotoURL(player)
	return player, nil
}

func (s *playerService) Deactivate(ctx context.Context, id int) error {
	err := s.playerRepo.Deactivate(ctx, id)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

func (s *playerService) fillPhotoURL(p *models.Player) {
	if s.uploader == nil || p.PhotoKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*p.PhotoKey); url != "" {
		p.PhotoURL = &url
	}
}
