package service

import (
	"context"
	"strings"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/models"
)

// CharacterService 角色业务服务
type CharacterService struct {
	manager *data.Manager
}

// NewCharacterService 创建角色服务
func NewCharacterService(m *data.Manager) *CharacterService {
	return &CharacterService{manager: m}
}

// CharacterInput 创建/更新角色输入
type CharacterInput struct {
	Name        string
	Avatar      string
	Personality string
	Description string
	Background  string
}

// List 获取全部角色
func (s *CharacterService) List(ctx context.Context) ([]models.Character, error) {
	characters := []models.Character{}
	if _, err := s.manager.Load(ctx, data.CollectionCharacters, &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

// GetByID 根据 ID 获取角色
func (s *CharacterService) GetByID(ctx context.Context, id string) (*models.Character, error) {
	characters, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range characters {
		if characters[i].ID == id {
			return &characters[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create 创建角色
func (s *CharacterService) Create(ctx context.Context, input CharacterInput) (*models.Character, error) {
	character, err := buildCharacter(input)
	if err != nil {
		return nil, err
	}
	record, err := data.ToRecord(character)
	if err != nil {
		return nil, err
	}
	id, err := s.manager.AddItem(ctx, data.CollectionCharacters, record)
	if err != nil {
		return nil, err
	}
	character.ID = id
	return character, nil
}

// Update 更新角色
func (s *CharacterService) Update(ctx context.Context, id string, input CharacterInput) (*models.Character, error) {
	character, err := buildCharacter(input)
	if err != nil {
		return nil, err
	}
	patch, err := data.ToRecord(character)
	if err != nil {
		return nil, err
	}
	found, err := s.manager.UpdateItem(ctx, data.CollectionCharacters, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	character.ID = id
	return character, nil
}

// Delete 删除角色
func (s *CharacterService) Delete(ctx context.Context, id string) error {
	removed, err := s.manager.DeleteItem(ctx, data.CollectionCharacters, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func buildCharacter(input CharacterInput) (*models.Character, error) {
	name := strings.TrimSpace(input.Name)
	avatar := strings.TrimSpace(input.Avatar)
	description := strings.TrimSpace(input.Description)
	if name == "" {
		return nil, validationError("请填写角色名称")
	}
	if avatar == "" {
		return nil, validationError("请填写角色头像")
	}
	if description == "" {
		return nil, validationError("请填写角色介绍")
	}
	return &models.Character{
		Name:        name,
		Avatar:      avatar,
		Personality: strings.TrimSpace(input.Personality),
		Description: description,
		Background:  strings.TrimSpace(input.Background),
	}, nil
}
