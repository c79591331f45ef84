package models

import (
	"time"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"gorm.io/gorm"
)

// FunnelPage is a checkout or funnel step whose body is a block tree.
type FunnelPage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title     string            `gorm:"size:200;not null" json:"title"`
	Slug      string            `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	PageType  string            `gorm:"size:32;not null;index" json:"page_type"`
	FunnelID  *uint             `gorm:"index" json:"funnel_id,omitempty"`
	Position  int               `gorm:"not null;default:0" json:"position"`
	Published bool              `gorm:"default:false" json:"published"`
	Blocks    blocks.PageBlocks `gorm:"type:jsonb" json:"blocks"`
}

type CreateFunnelPageRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Slug      string `json:"slug" binding:"omitempty,slug,max=220"`
	PageType  string `json:"page_type" binding:"required,page_type"`
	FunnelID  *uint  `json:"funnel_id"`
	Position  int    `json:"position" binding:"min=0"`
	Published bool   `json:"published"`
}

type UpdateFunnelPageBlocksRequest struct {
	Blocks []blocks.PageBlock `json:"blocks" binding:"required"`
}
