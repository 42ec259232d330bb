package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// DiscordProfile is the subset of the Discord user object we persist.
type DiscordProfile struct {
	ID            string
	Username      string
	Discriminator string
	Avatar        *string
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertDiscordUser creates the user on first login and refreshes the profile
// fields afterwards. The stored language is kept.
func (r *UserRepository) UpsertDiscordUser(ctx context.Context, p DiscordProfile, defaultLanguage string) (*gormModels.User, error) {
	user := gormModels.User{
		DiscordID:     p.ID,
		Username:      p.Username,
		Discriminator: p.Discriminator,
		Avatar:        p.Avatar,
		Language:      defaultLanguage,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "discriminator", "avatar", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return r.GetByDiscordID(ctx, p.ID)
}

func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID string) (*gormModels.User, error) {
	var user gormModels.User
	err := r.db.WithContext(ctx).Where("discord_id = ?", discordID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*gormModels.User, error) {
	var user gormModels.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, id uint, language string) error {
	res := r.db.WithContext(ctx).Model(&gormModels.User{}).Where("id = ?", id).Update("language", language)
	if res.Error != nil {
		return fmt.Errorf("failed to update language: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
