package database

import (
	"context"
)

// GetUserByUsername looks up a user by their username
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// CreateUser inserts a new user row
func (c *Client) CreateUser(ctx context.Context, user *User) error {
	if err := c.DB.WithContext(ctx).Create(user).Error; err != nil {
		c.logger.Errorf("failed to create user %s: %v", user.Username, err)
		return err
	}
	return nil
}
