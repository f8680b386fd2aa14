package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/platform/logger"
	"github.com/draftwise/draftwise-api/internal/store"
)

// PostgresSlackStore implements the store.SlackIntegrationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSlackStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSlackStore creates a new PostgreSQL implementation of the
// SlackIntegrationStore interface. If logger is nil, a default logger will be used.
func NewPostgresSlackStore(db store.DBTX, logger *slog.Logger) *PostgresSlackStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSlackStore{
		db:     db,
		logger: logger.With(slog.String("component", "slack_store")),
	}
}

// Ensure PostgresSlackStore implements store.SlackIntegrationStore interface
var _ store.SlackIntegrationStore = (*PostgresSlackStore)(nil)

// Upsert implements store.SlackIntegrationStore.Upsert
// Reconnecting a workspace replaces the previously stored tokens.
func (s *PostgresSlackStore) Upsert(ctx context.Context, integration *domain.SlackIntegration) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := integration.Validate(); err != nil {
		log.Warn("slack integration validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", integration.UserID.String()))
		return err
	}

	query := `
		INSERT INTO slack_integrations (
			user_id, slack_user_id, team_id, team_name, bot_user_id,
			access_token, refresh_token, scope, channel_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			slack_user_id = EXCLUDED.slack_user_id,
			team_id = EXCLUDED.team_id,
			team_name = EXCLUDED.team_name,
			bot_user_id = EXCLUDED.bot_user_id,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			scope = EXCLUDED.scope,
			channel_id = EXCLUDED.channel_id,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		integration.UserID,
		integration.SlackUserID,
		integration.TeamID,
		integration.TeamName,
		integration.BotUserID,
		integration.AccessToken,
		integration.RefreshToken,
		integration.Scope,
		integration.ChannelID,
		integration.CreatedAt,
		integration.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during slack integration upsert",
				slog.String("user_id", integration.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, integration.UserID)
		}

		log.Error("failed to upsert slack integration",
			slog.String("error", err.Error()),
			slog.String("user_id", integration.UserID.String()))
		return err
	}

	log.Info("slack integration saved",
		slog.String("user_id", integration.UserID.String()),
		slog.String("team_id", integration.TeamID))
	return nil
}

// GetByUserID implements store.SlackIntegrationStore.GetByUserID
// Returns store.ErrIntegrationNotFound if the user has no connected workspace.
func (s *PostgresSlackStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.SlackIntegration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, slack_user_id, team_id, team_name, bot_user_id,
			access_token, refresh_token, scope, channel_id, created_at, updated_at
		FROM slack_integrations
		WHERE user_id = $1
	`

	var integration domain.SlackIntegration
	var teamName, botUserID, refreshToken, scope, channelID sql.NullString

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&integration.UserID,
		&integration.SlackUserID,
		&integration.TeamID,
		&teamName,
		&botUserID,
		&integration.AccessToken,
		&refreshToken,
		&scope,
		&channelID,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("slack integration not found",
				slog.String("user_id", userID.String()))
			return nil, store.ErrIntegrationNotFound
		}
		log.Error("failed to get slack integration",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	integration.TeamName = teamName.String
	integration.BotUserID = botUserID.String
	integration.RefreshToken = refreshToken.String
	integration.Scope = scope.String
	integration.ChannelID = channelID.String

	return &integration, nil
}

// UpdateChannel implements store.SlackIntegrationStore.UpdateChannel
// Returns store.ErrIntegrationNotFound if the user has no connected workspace.
func (s *PostgresSlackStore) UpdateChannel(ctx context.Context, userID uuid.UUID, channelID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE slack_integrations
		SET channel_id = $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, channelID, time.Now().UTC(), userID)
	if err != nil {
		log.Error("failed to update slack channel",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "slack integration"); err != nil {
		log.Debug("slack integration not found for channel update",
			slog.String("user_id", userID.String()))
		return store.ErrIntegrationNotFound
	}

	log.Info("slack channel updated",
		slog.String("user_id", userID.String()),
		slog.String("channel_id", channelID))
	return nil
}

// Delete implements store.SlackIntegrationStore.Delete
// Returns store.ErrIntegrationNotFound if the user has no connected workspace.
func (s *PostgresSlackStore) Delete(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM slack_integrations WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete slack integration",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "slack integration"); err != nil {
		log.Debug("slack integration not found for delete",
			slog.String("user_id", userID.String()))
		return store.ErrIntegrationNotFound
	}

	log.Info("slack integration deleted",
		slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.SlackIntegrationStore.WithTx
func (s *PostgresSlackStore) WithTx(tx *sql.Tx) store.SlackIntegrationStore {
	return &PostgresSlackStore{
		db:     tx,
		logger: s.logger,
	}
}
