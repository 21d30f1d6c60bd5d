package repository

import (
	"errors"

	"casetrack/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	// Upsert creates the product on first sight of a UPC, or fills blank
	// fields on an existing one. Non-blank item type and description are
	// never overwritten.
	Upsert(tx *gorm.DB, upc string, description string, itemType model.ItemType, actor string) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Upsert(tx *gorm.DB, upc string, description string, itemType model.ItemType, actor string) (*model.Product, error) {
	var p model.Product
	err := tx.First(&p, "upc = ?", upc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = model.Product{UPC: upc, Description: description, ItemType: itemType}
		p.CreatedBy = actor
		p.UpdatedBy = actor
		if err := tx.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if description != "" && p.Description == "" {
		updates["description"] = description
		p.Description = description
	}
	if itemType != "" && p.ItemType == "" {
		updates["item_type"] = itemType
		p.ItemType = itemType
	}
	if len(updates) > 0 {
		updates["updated_by"] = actor
		if err := tx.Model(&model.Product{}).Where("upc = ?", upc).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}
