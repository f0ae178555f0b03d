// Package services contains the application services of the Openticket
// client. This file defines the authentication service: first-run setup,
// login, restoring a persisted session and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openticket/openticket/internal/client/client"
	"github.com/openticket/openticket/internal/client/models"
	"github.com/openticket/openticket/internal/client/repositories/metadata"
	"github.com/openticket/openticket/internal/common"
	"github.com/openticket/openticket/internal/dbx"
)

// AuthService defines the authentication operations used by the UI.
//
// Contract:
//   - Status: fetch the bootstrap snapshot (setup flag and current user),
//     forgetting a stored session the server no longer accepts.
//   - Setup: create the first administrator.
//   - Login: open a session, persist its token and return the signed in user.
//   - RestoreSession: load a token persisted for this server into the client.
//   - Logout: forget the session locally.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Status(ctx context.Context) (models.Status, error)
	Setup(ctx context.Context, form SetupForm) (models.Setup, error)
	Login(ctx context.Context, form LoginForm) (models.User, error)
	RestoreSession(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// local metadata database.
type authService struct {
	client    client.Client
	db        *sql.DB
	serverURL string
}

// NewAuthService constructs an AuthService. serverURL identifies the backend
// a persisted token belongs to.
func NewAuthService(client client.Client, db *sql.DB, serverURL string) AuthService {
	return &authService{client: client, db: db, serverURL: serverURL}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Status fetches the bootstrap snapshot. When the server rejects the
// session token, the local session is dropped and the snapshot is fetched
// once more without a token.
func (a *authService) Status(ctx context.Context) (models.Status, error) {
	status, err := a.client.Status(ctx)
	if err == nil || !errors.Is(err, client.ErrUnauthorized) || a.client.SessionToken() == "" {
		return status, err
	}

	if err := a.Logout(ctx); err != nil {
		return models.Status{}, fmt.Errorf("dropping rejected session: %w", err)
	}
	return a.client.Status(ctx)
}

// Setup validates the form and creates the administrator account. It does
// not log in.
func (a *authService) Setup(ctx context.Context, form SetupForm) (models.Setup, error) {
	if err := form.Validate(); err != nil {
		return models.Setup{}, err
	}
	setup, err := a.client.Setup(ctx, form.Request())
	if err != nil {
		return models.Setup{}, fmt.Errorf("setup error: %w", err)
	}
	return setup, nil
}

// Login authenticates against the server, saves the session locally and
// returns the user the server reports for the new session.
func (a *authService) Login(ctx context.Context, form LoginForm) (models.User, error) {
	if err := form.Validate(); err != nil {
		return models.User{}, err
	}

	login, err := a.client.Login(ctx, form.Request())
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}
	a.client.SetSessionToken(login.SessionToken)

	status, err := a.client.Status(ctx)
	if err != nil {
		a.client.SetSessionToken("")
		return models.User{}, fmt.Errorf("status error: %w", err)
	}
	if status.User == nil {
		a.client.SetSessionToken("")
		return models.User{}, fmt.Errorf("login error: %w", client.ErrUnauthorized)
	}

	if err := a.saveSession(ctx, login.SessionToken, status.User.Username); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	return *status.User, nil
}

// saveSession persists token, server URL and username in a single
// transaction.
func (a *authService) saveSession(ctx context.Context, token, username string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return a.getMetadataRepo(tx).Put(ctx, map[string]string{
			common.MetadataSessionToken: token,
			common.MetadataServerURL:    a.serverURL,
			common.MetadataUsername:     username,
		})
	})
}

// RestoreSession loads the persisted token into the client. It reports false
// when nothing usable is stored, including a token issued by another server.
func (a *authService) RestoreSession(ctx context.Context) (bool, error) {
	metadataRepo := a.getMetadataRepo(a.db)

	savedURL, err := metadataRepo.Get(ctx, common.MetadataServerURL)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	if savedURL != a.serverURL {
		return false, nil
	}

	token, err := metadataRepo.Get(ctx, common.MetadataSessionToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	if token == "" {
		return false, nil
	}

	a.client.SetSessionToken(token)
	return true, nil
}

// Logout drops the client token and wipes the persisted session.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetSessionToken("")
	return a.getMetadataRepo(a.db).Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}
