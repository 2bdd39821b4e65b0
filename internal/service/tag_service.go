package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("标签不存在")

type TagService struct {
	tagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List 获取全部标签
func (s *TagService) List() ([]dto.TagInfo, error) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, err
	}

	items := make([]dto.TagInfo, 0, len(tags))
	for i := range tags {
		items = append(items, *toTagInfo(&tags[i]))
	}
	return items, nil
}

// Get 根据 ID 获取标签
func (s *TagService) Get(id int64) (*dto.TagInfo, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return toTagInfo(tag), nil
}

func toTagInfo(tag *model.Tag) *dto.TagInfo {
	return &dto.TagInfo{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}
